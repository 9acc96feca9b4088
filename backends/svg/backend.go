// Package svg renders recordings to Scalable Vector Graphics.
//
// The emitted document is inch-addressed: the svg element carries the
// physical width and height in inches while the viewBox spans the
// recording canvas, so geometry stays in recording coordinates and the
// viewer scales it. Transforms are baked into the emitted coordinates
// rather than written as transform attributes, which keeps the output
// free of nested coordinate systems.
//
// Gradient brushes emit as their first stop color with a
// recording.Warning; text renders as native SVG text elements.
package svg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	svgo "github.com/ajstarks/svgo/float"

	"github.com/gogpu/plotrec/recording"
)

func init() {
	recording.Register("svg", func() recording.Backend {
		return New()
	})
}

// Backend replays recordings into an SVG document.
type Backend struct {
	buf    bytes.Buffer
	canvas *svgo.SVG
	surf   recording.Surface
	ctm    recording.Matrix
	stack  []svgState
	// groups counts currently open <g> clip scopes.
	groups int
	clipID int
	begun  bool
	ended  bool
}

type svgState struct {
	ctm    recording.Matrix
	groups int
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
)

// New creates an SVG backend. Begin must be called before drawing.
func New() *Backend {
	return &Backend{}
}

// Begin implements recording.Backend.
func (b *Backend) Begin(s recording.Surface) error {
	if s.CanvasWidth <= 0 || s.CanvasHeight <= 0 {
		return fmt.Errorf("svg: invalid canvas size %gx%g", s.CanvasWidth, s.CanvasHeight)
	}
	if s.PhysWidth <= 0 || s.PhysHeight <= 0 {
		return fmt.Errorf("svg: invalid physical size %gx%g", s.PhysWidth, s.PhysHeight)
	}
	b.buf.Reset()
	b.canvas = svgo.New(&b.buf)
	b.surf = s
	b.ctm = recording.Identity()
	b.stack = b.stack[:0]
	b.groups = 0
	b.clipID = 0
	b.begun = true
	b.ended = false

	b.canvas.Startraw(fmt.Sprintf(`width="%gin" height="%gin" viewBox="0 0 %g %g"`,
		s.PhysWidth, s.PhysHeight, s.CanvasWidth, s.CanvasHeight))
	// White background, matching a fresh plot surface.
	b.canvas.Path(rectPathData(0, 0, s.CanvasWidth, s.CanvasHeight), `fill="white" stroke="none"`)
	return nil
}

// End implements recording.Backend.
func (b *Backend) End() error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if b.ended {
		return nil
	}
	b.closeGroups(0)
	b.canvas.End()
	b.ended = true
	return nil
}

// Save implements recording.Backend.
func (b *Backend) Save() {
	b.stack = append(b.stack, svgState{ctm: b.ctm, groups: b.groups})
}

// Restore implements recording.Backend.
func (b *Backend) Restore() {
	if len(b.stack) == 0 {
		return
	}
	s := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.ctm = s.ctm
	b.closeGroups(s.groups)
}

// SetTransform implements recording.Backend.
func (b *Backend) SetTransform(m recording.Matrix) {
	b.ctm = m
}

// SetClip implements recording.Backend. The clip path is emitted as a
// clipPath definition and subsequent drawing is wrapped in a group that
// references it.
func (b *Backend) SetClip(path *recording.Path, rule recording.FillRule) {
	if !b.begun || path == nil || path.IsEmpty() {
		return
	}
	b.clipID++
	id := fmt.Sprintf("clip%d", b.clipID)
	b.canvas.ClipPath(`id="` + id + `"`)
	b.canvas.Path(pathData(path.Transform(b.ctm)), clipRuleAttr(rule))
	b.canvas.ClipEnd()
	b.canvas.Group(`clip-path="url(#` + id + `)"`)
	b.groups++
}

// ResetClip implements recording.Backend.
func (b *Backend) ResetClip() {
	b.closeGroups(0)
}

// Clear implements recording.Backend.
func (b *Backend) Clear(c recording.Color) {
	if !b.begun {
		return
	}
	b.canvas.Path(rectPathData(0, 0, b.surf.CanvasWidth, b.surf.CanvasHeight),
		fmt.Sprintf(`fill="%s" stroke="none"`, cssColor(c)))
}

// FillPath implements recording.Backend.
func (b *Backend) FillPath(path *recording.Path, brush recording.Brush, rule recording.FillRule) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if path == nil || path.IsEmpty() {
		return recording.Warnf("fill", "empty path")
	}
	c := recording.BrushColor(brush)
	attrs := []string{fmt.Sprintf(`fill="%s"`, cssColor(c)), `stroke="none"`}
	if a := fillOpacityAttr(c); a != "" {
		attrs = append(attrs, a)
	}
	if a := fillRuleAttr(rule); a != "" {
		attrs = append(attrs, a)
	}
	b.canvas.Path(pathData(path.Transform(b.ctm)), strings.Join(attrs, " "))
	if _, ok := brush.(recording.SolidBrush); !ok && brush != nil {
		return recording.Warnf("fill", "gradient brush rendered as solid color")
	}
	return nil
}

// StrokePath implements recording.Backend.
func (b *Backend) StrokePath(path *recording.Path, brush recording.Brush, stroke recording.Stroke) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if path == nil || path.IsEmpty() {
		return recording.Warnf("stroke", "empty path")
	}
	scale := b.ctm.ScaleFactor()
	c := recording.BrushColor(brush)

	var sb strings.Builder
	fmt.Fprintf(&sb, `fill="none" stroke="%s" stroke-width="%g"`, cssColor(c), stroke.Width*scale)
	if c.A < 1 {
		fmt.Fprintf(&sb, ` stroke-opacity="%g"`, c.A)
	}
	if lc := capName(stroke.Cap); lc != "butt" {
		fmt.Fprintf(&sb, ` stroke-linecap="%s"`, lc)
	}
	if join := joinName(stroke.Join); join != "miter" {
		fmt.Fprintf(&sb, ` stroke-linejoin="%s"`, join)
	}
	if len(stroke.DashPattern) > 0 {
		dashes := make([]string, len(stroke.DashPattern))
		for i, d := range stroke.DashPattern {
			dashes[i] = fmt.Sprintf("%g", d*scale)
		}
		fmt.Fprintf(&sb, ` stroke-dasharray="%s"`, strings.Join(dashes, ","))
		if stroke.DashOffset != 0 {
			fmt.Fprintf(&sb, ` stroke-dashoffset="%g"`, stroke.DashOffset*scale)
		}
	}
	b.canvas.Path(pathData(path.Transform(b.ctm)), sb.String())
	return nil
}

// FillRect implements recording.Backend.
func (b *Backend) FillRect(r recording.Rect, brush recording.Brush) error {
	if r.IsEmpty() {
		return recording.Warnf("fillrect", "empty rectangle")
	}
	return b.FillPath(r.Path(), brush, recording.FillRuleNonZero)
}

// DrawImage implements recording.Backend. The image embeds as a PNG
// data URI.
func (b *Backend) DrawImage(img image.Image, dst recording.Rect) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if img == nil {
		return recording.Warnf("image", "nil image")
	}
	var enc bytes.Buffer
	if err := png.Encode(&enc, img); err != nil {
		return fmt.Errorf("svg: encoding embedded image: %w", err)
	}
	link := "data:image/png;base64," + base64.StdEncoding.EncodeToString(enc.Bytes())

	x, y := b.ctm.Apply(dst.MinX, dst.MinY)
	x1, y1 := b.ctm.Apply(dst.MaxX, dst.MaxY)
	// The svgo float API takes the placement as float64 but the
	// extents as int.
	b.canvas.Image(x, y, int(x1-x+0.5), int(y1-y+0.5), link)
	return nil
}

// DrawText implements recording.Backend.
func (b *Backend) DrawText(text string, x, y float64, family string, size float64, brush recording.Brush) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if text == "" {
		return recording.Warnf("text", "empty string")
	}
	px, py := b.ctm.Apply(x, y)
	style := fmt.Sprintf(`font-family="%s" font-size="%g" fill="%s"`,
		family, size*b.ctm.ScaleFactor(), cssColor(recording.BrushColor(brush)))
	b.canvas.Text(px, py, text, style)
	return nil
}

// WriteTo implements recording.WriterBackend.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.ended {
		return 0, recording.ErrNotBegun
	}
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveTo implements recording.FileBackend.
func (b *Backend) SaveTo(path string) error {
	if !b.ended {
		return recording.ErrNotBegun
	}
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}

func (b *Backend) closeGroups(downTo int) {
	for b.groups > downTo {
		b.canvas.Gend()
		b.groups--
	}
}

// pathData converts a path to an SVG path data string.
func pathData(p *recording.Path) string {
	var sb strings.Builder
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case recording.MoveTo:
			fmt.Fprintf(&sb, "M%g %g", e.Point.X, e.Point.Y)
		case recording.LineTo:
			fmt.Fprintf(&sb, "L%g %g", e.Point.X, e.Point.Y)
		case recording.QuadTo:
			fmt.Fprintf(&sb, "Q%g %g %g %g", e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case recording.CubicTo:
			fmt.Fprintf(&sb, "C%g %g %g %g %g %g",
				e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case recording.Close:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

func rectPathData(x, y, w, h float64) string {
	return fmt.Sprintf("M%g %gL%g %gL%g %gL%g %gZ", x, y, x+w, y, x+w, y+h, x, y+h)
}

func cssColor(c recording.Color) string {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func fillOpacityAttr(c recording.Color) string {
	if c.A >= 1 {
		return ""
	}
	return fmt.Sprintf(`fill-opacity="%g"`, c.A)
}

func fillRuleAttr(rule recording.FillRule) string {
	if rule == recording.FillRuleEvenOdd {
		return `fill-rule="evenodd"`
	}
	return ""
}

func clipRuleAttr(rule recording.FillRule) string {
	if rule == recording.FillRuleEvenOdd {
		return `clip-rule="evenodd"`
	}
	return ""
}

func capName(c recording.LineCap) string {
	switch c {
	case recording.LineCapRound:
		return "round"
	case recording.LineCapSquare:
		return "square"
	}
	return "butt"
}

func joinName(j recording.LineJoin) string {
	switch j {
	case recording.LineJoinRound:
		return "round"
	case recording.LineJoinBevel:
		return "bevel"
	}
	return "miter"
}
