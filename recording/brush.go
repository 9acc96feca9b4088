package recording

// Brush is a fill or stroke style. The interface is sealed: only types in
// this package implement it, so backends can switch exhaustively.
type Brush interface {
	brushMarker()
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color Color
}

func (SolidBrush) brushMarker() {}

// NewSolidBrush creates a solid color brush.
func NewSolidBrush(c Color) SolidBrush {
	return SolidBrush{Color: c}
}

// GradientStop is one color stop of a gradient, with Offset in [0, 1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// LinearGradientBrush paints a linear gradient from Start to End.
type LinearGradientBrush struct {
	Start Point
	End   Point
	Stops []GradientStop
}

func (LinearGradientBrush) brushMarker() {}

// NewLinearGradientBrush creates a linear gradient between two points.
func NewLinearGradientBrush(x0, y0, x1, y1 float64) *LinearGradientBrush {
	return &LinearGradientBrush{Start: Pt(x0, y0), End: Pt(x1, y1)}
}

// AddStop appends a color stop and returns the brush for chaining.
func (g *LinearGradientBrush) AddStop(offset float64, c Color) *LinearGradientBrush {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// BrushColor returns a representative solid color for a brush.
// Backends without gradient support use it as a flat substitute.
func BrushColor(b Brush) Color {
	switch br := b.(type) {
	case SolidBrush:
		return br.Color
	case *LinearGradientBrush:
		if len(br.Stops) > 0 {
			return br.Stops[0].Color
		}
	}
	return Black
}
