package recording

import (
	"image"
	"math"
)

// kappa approximates a quarter circle with one cubic Bezier segment.
const kappa = 0.5522847498307936

// Recorder captures drawing operations as commands. It mirrors an
// immediate-mode 2D context API but produces a display list instead of
// pixels. Snapshot returns an immutable Recording of everything drawn so
// far without disturbing the recorder, so the same canvas can keep
// receiving draws after being captured.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height float64
	commands      []Command
	resources     *ResourcePool

	path *Path

	fillBrush   Brush
	strokeBrush Brush
	stroke      Stroke
	fillRule    FillRule
	transform   Matrix

	fontFamily string
	fontSize   float64

	stack []recorderState
}

type recorderState struct {
	fillBrush   Brush
	strokeBrush Brush
	stroke      Stroke
	fillRule    FillRule
	transform   Matrix
	fontFamily  string
	fontSize    float64
}

// NewRecorder creates a Recorder with a canvas of the given size.
// The initial state is black fill and stroke, 1px lines, butt caps,
// miter joins, non-zero fill rule, identity transform.
func NewRecorder(width, height float64) *Recorder {
	black := NewSolidBrush(Black)
	return &Recorder{
		width:       width,
		height:      height,
		commands:    make([]Command, 0, 256),
		resources:   NewResourcePool(),
		path:        NewPath(),
		fillBrush:   black,
		strokeBrush: black,
		stroke:      DefaultStroke(),
		transform:   Identity(),
		fontFamily:  "sans-serif",
		fontSize:    12,
		stack:       make([]recorderState, 0, 8),
	}
}

// Width returns the canvas width in recording coordinates.
func (r *Recorder) Width() float64 { return r.width }

// Height returns the canvas height in recording coordinates.
func (r *Recorder) Height() float64 { return r.height }

// CommandCount returns the number of commands recorded so far.
func (r *Recorder) CommandCount() int { return len(r.commands) }

// IsEmpty reports whether nothing has been recorded yet.
func (r *Recorder) IsEmpty() bool { return len(r.commands) == 0 }

// Snapshot returns an immutable Recording of everything recorded so far.
// The recorder remains usable; later draws do not affect the snapshot.
func (r *Recorder) Snapshot() *Recording {
	cmds := make([]Command, len(r.commands))
	copy(cmds, r.commands)
	return &Recording{
		width:     r.width,
		height:    r.height,
		commands:  cmds,
		resources: r.resources.Clone(),
	}
}

// Reset discards all recorded commands and restores the initial state,
// keeping the canvas size. Used when the display is cleared for a new
// drawing.
func (r *Recorder) Reset() {
	black := NewSolidBrush(Black)
	r.commands = r.commands[:0]
	r.resources = NewResourcePool()
	r.path = NewPath()
	r.fillBrush = black
	r.strokeBrush = black
	r.stroke = DefaultStroke()
	r.fillRule = FillRuleNonZero
	r.transform = Identity()
	r.fontFamily = "sans-serif"
	r.fontSize = 12
	r.stack = r.stack[:0]
}

// Push saves the current graphics state.
func (r *Recorder) Push() {
	r.stack = append(r.stack, recorderState{
		fillBrush:   r.fillBrush,
		strokeBrush: r.strokeBrush,
		stroke:      r.stroke.Clone(),
		fillRule:    r.fillRule,
		transform:   r.transform,
		fontFamily:  r.fontFamily,
		fontSize:    r.fontSize,
	})
	r.commands = append(r.commands, SaveCommand{})
}

// Pop restores the most recently pushed state. No-op on an empty stack.
func (r *Recorder) Pop() {
	if len(r.stack) == 0 {
		return
	}
	s := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.fillBrush = s.fillBrush
	r.strokeBrush = s.strokeBrush
	r.stroke = s.stroke
	r.fillRule = s.fillRule
	r.transform = s.transform
	r.fontFamily = s.fontFamily
	r.fontSize = s.fontSize
	r.commands = append(r.commands, RestoreCommand{})
}

// SetRGB sets both fill and stroke to an opaque color.
func (r *Recorder) SetRGB(red, green, blue float64) {
	r.SetColor(RGB(red, green, blue))
}

// SetRGBA sets both fill and stroke to a color with alpha.
func (r *Recorder) SetRGBA(red, green, blue, alpha float64) {
	r.SetColor(RGBA(red, green, blue, alpha))
}

// SetColor sets both fill and stroke brushes to a solid color.
func (r *Recorder) SetColor(c Color) {
	b := NewSolidBrush(c)
	r.fillBrush = b
	r.strokeBrush = b
}

// SetFillBrush sets the fill brush.
func (r *Recorder) SetFillBrush(b Brush) { r.fillBrush = b }

// SetStrokeBrush sets the stroke brush.
func (r *Recorder) SetStrokeBrush(b Brush) { r.strokeBrush = b }

// SetFillRule sets the fill rule for subsequent fills and clips.
func (r *Recorder) SetFillRule(rule FillRule) { r.fillRule = rule }

// SetLineWidth sets the stroke width.
func (r *Recorder) SetLineWidth(w float64) { r.stroke.Width = w }

// SetLineCap sets the stroke cap style.
func (r *Recorder) SetLineCap(c LineCap) { r.stroke.Cap = c }

// SetLineJoin sets the stroke join style.
func (r *Recorder) SetLineJoin(j LineJoin) { r.stroke.Join = j }

// SetMiterLimit sets the miter limit for miter joins.
func (r *Recorder) SetMiterLimit(limit float64) { r.stroke.MiterLimit = limit }

// SetDash sets the dash pattern. No arguments means a solid line.
func (r *Recorder) SetDash(pattern ...float64) {
	if len(pattern) == 0 {
		r.stroke.DashPattern = nil
		return
	}
	r.stroke.DashPattern = append([]float64(nil), pattern...)
}

// SetDashOffset sets the starting offset into the dash pattern.
func (r *Recorder) SetDashOffset(offset float64) { r.stroke.DashOffset = offset }

// SetFont sets the font family and size for subsequent DrawString calls.
func (r *Recorder) SetFont(family string, size float64) {
	r.fontFamily = family
	r.fontSize = size
}

// Identity resets the current transformation.
func (r *Recorder) Identity() {
	r.transform = Identity()
	r.commands = append(r.commands, SetTransformCommand{Matrix: r.transform})
}

// Translate appends a translation to the current transformation.
func (r *Recorder) Translate(x, y float64) {
	r.transform = r.transform.Mul(Translate(x, y))
	r.commands = append(r.commands, SetTransformCommand{Matrix: r.transform})
}

// ScaleBy appends a scale to the current transformation.
func (r *Recorder) ScaleBy(sx, sy float64) {
	r.transform = r.transform.Mul(Scale(sx, sy))
	r.commands = append(r.commands, SetTransformCommand{Matrix: r.transform})
}

// Rotate appends a rotation (radians) to the current transformation.
func (r *Recorder) Rotate(angle float64) {
	r.transform = r.transform.Mul(Rotate(angle))
	r.commands = append(r.commands, SetTransformCommand{Matrix: r.transform})
}

// Transform returns the current transformation matrix.
func (r *Recorder) Transform() Matrix { return r.transform }

// MoveTo starts a new subpath at (x, y).
func (r *Recorder) MoveTo(x, y float64) { r.path.MoveTo(x, y) }

// LineTo draws a line from the current point to (x, y).
func (r *Recorder) LineTo(x, y float64) { r.path.LineTo(x, y) }

// QuadraticTo draws a quadratic Bezier curve to (x, y).
func (r *Recorder) QuadraticTo(cx, cy, x, y float64) { r.path.QuadraticTo(cx, cy, x, y) }

// CubicTo draws a cubic Bezier curve to (x, y).
func (r *Recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

// ClosePath closes the current subpath.
func (r *Recorder) ClosePath() { r.path.ClosePath() }

// ClearPath discards the current path without drawing it.
func (r *Recorder) ClearPath() { r.path.Clear() }

// DrawLine adds a line segment as a new subpath.
func (r *Recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.path.MoveTo(x1, y1)
	r.path.LineTo(x2, y2)
}

// DrawRectangle adds a rectangle as a new closed subpath.
func (r *Recorder) DrawRectangle(x, y, w, h float64) {
	r.path.MoveTo(x, y)
	r.path.LineTo(x+w, y)
	r.path.LineTo(x+w, y+h)
	r.path.LineTo(x, y+h)
	r.path.ClosePath()
}

// DrawEllipse adds an ellipse centered at (cx, cy) as a new closed subpath.
func (r *Recorder) DrawEllipse(cx, cy, rx, ry float64) {
	ox := rx * kappa
	oy := ry * kappa
	r.path.MoveTo(cx+rx, cy)
	r.path.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	r.path.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	r.path.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	r.path.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	r.path.ClosePath()
}

// DrawCircle adds a circle as a new closed subpath.
func (r *Recorder) DrawCircle(cx, cy, radius float64) {
	r.DrawEllipse(cx, cy, radius, radius)
}

// DrawArc adds a circular arc from angle1 to angle2 (radians).
func (r *Recorder) DrawArc(cx, cy, radius, angle1, angle2 float64) {
	const segs = 16
	for i := 0; i <= segs; i++ {
		t := angle1 + (angle2-angle1)*float64(i)/segs
		x := cx + radius*math.Cos(t)
		y := cy + radius*math.Sin(t)
		if i == 0 {
			r.path.MoveTo(x, y)
		} else {
			r.path.LineTo(x, y)
		}
	}
}

// Fill fills the current path and clears it.
func (r *Recorder) Fill() {
	r.FillPreserve()
	r.path.Clear()
}

// FillPreserve fills the current path, keeping it for further use.
func (r *Recorder) FillPreserve() {
	if r.path.IsEmpty() {
		return
	}
	pathRef := r.resources.AddPath(r.path)
	brushRef := r.resources.AddBrush(r.fillBrush)
	r.commands = append(r.commands, FillPathCommand{
		Path:  pathRef,
		Brush: brushRef,
		Rule:  r.fillRule,
	})
}

// Stroke strokes the current path and clears it.
func (r *Recorder) Stroke() {
	r.StrokePreserve()
	r.path.Clear()
}

// StrokePreserve strokes the current path, keeping it for further use.
func (r *Recorder) StrokePreserve() {
	if r.path.IsEmpty() {
		return
	}
	pathRef := r.resources.AddPath(r.path)
	brushRef := r.resources.AddBrush(r.strokeBrush)
	r.commands = append(r.commands, StrokePathCommand{
		Path:   pathRef,
		Brush:  brushRef,
		Stroke: r.stroke.Clone(),
	})
}

// FillRect fills an axis-aligned rectangle without touching the current path.
func (r *Recorder) FillRect(x, y, w, h float64) {
	brushRef := r.resources.AddBrush(r.fillBrush)
	r.commands = append(r.commands, FillRectCommand{
		Rect:  NewRect(x, y, w, h),
		Brush: brushRef,
	})
}

// Clip intersects the clip region with the current path and clears it.
func (r *Recorder) Clip() {
	if r.path.IsEmpty() {
		return
	}
	pathRef := r.resources.AddPath(r.path)
	r.commands = append(r.commands, SetClipCommand{Path: pathRef, Rule: r.fillRule})
	r.path.Clear()
}

// ResetClip restores the clip region to the full canvas.
func (r *Recorder) ResetClip() {
	r.commands = append(r.commands, ClearClipCommand{})
}

// Clear fills the whole canvas with a background color, ignoring
// transform and clip.
func (r *Recorder) Clear(c Color) {
	r.commands = append(r.commands, ClearCommand{Color: c})
}

// DrawString draws text with its baseline starting at (x, y), using the
// current font and fill brush.
func (r *Recorder) DrawString(s string, x, y float64) {
	brushRef := r.resources.AddBrush(r.fillBrush)
	r.commands = append(r.commands, DrawTextCommand{
		Text:       s,
		X:          x,
		Y:          y,
		FontFamily: r.fontFamily,
		FontSize:   r.fontSize,
		Brush:      brushRef,
	})
}

// DrawImage draws an image scaled into the destination rectangle.
func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	imgRef := r.resources.AddImage(img)
	r.commands = append(r.commands, DrawImageCommand{
		Image:   imgRef,
		DstRect: NewRect(x, y, w, h),
	})
}
