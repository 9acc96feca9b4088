package recording

// PathElement is a single element of a vector path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector path built from move/line/curve elements.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve to (x, y) with control (cx, cy).
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve to (x, y) with two control points.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// ClosePath closes the current subpath.
func (p *Path) ClosePath() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Clear removes all elements.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
}

// Elements returns the path elements. The returned slice must not be
// modified.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path contains no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// CurrentPoint returns the current pen position.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Clone returns an independent copy of the path.
func (p *Path) Clone() *Path {
	c := &Path{
		elements: make([]PathElement, len(p.elements)),
		start:    p.start,
		current:  p.current,
	}
	copy(c.elements, p.elements)
	return c
}

// Transform returns a copy of the path with every point mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	c := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			x, y := m.Apply(e.Point.X, e.Point.Y)
			c.elements = append(c.elements, MoveTo{Point: Pt(x, y)})
		case LineTo:
			x, y := m.Apply(e.Point.X, e.Point.Y)
			c.elements = append(c.elements, LineTo{Point: Pt(x, y)})
		case QuadTo:
			cx, cy := m.Apply(e.Control.X, e.Control.Y)
			x, y := m.Apply(e.Point.X, e.Point.Y)
			c.elements = append(c.elements, QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)})
		case CubicTo:
			c1x, c1y := m.Apply(e.Control1.X, e.Control1.Y)
			c2x, c2y := m.Apply(e.Control2.X, e.Control2.Y)
			x, y := m.Apply(e.Point.X, e.Point.Y)
			c.elements = append(c.elements, CubicTo{
				Control1: Pt(c1x, c1y),
				Control2: Pt(c2x, c2y),
				Point:    Pt(x, y),
			})
		case Close:
			c.elements = append(c.elements, Close{})
		}
	}
	return c
}
