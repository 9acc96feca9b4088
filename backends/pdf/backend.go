// Package pdf renders recordings to PDF documents.
//
// Pages are sized in points from the physical surface dimensions, so a
// recording rendered at 4x3 inches produces a 288x216 point page
// regardless of the recording's canvas size. Geometry is transformed
// into page space before it is written.
//
// Text uses the built-in core fonts (Helvetica, Times, Courier) mapped
// from the requested family; gradient brushes emit as their first stop
// color with a recording.Warning.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/gogpu/plotrec/recording"
)

// pointsPerInch is the PDF user-space unit density.
const pointsPerInch = 72

func init() {
	recording.Register("pdf", func() recording.Backend {
		return New()
	})
}

// Backend replays recordings into a PDF document.
type Backend struct {
	doc   *fpdf.Fpdf
	surf  recording.Surface
	base  recording.Matrix
	ctm   recording.Matrix
	stack []pdfState
	// clips counts currently active clip regions.
	clips  int
	images int
	begun  bool
}

type pdfState struct {
	ctm   recording.Matrix
	clips int
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
)

// New creates a PDF backend. Begin must be called before drawing.
func New() *Backend {
	return &Backend{}
}

// Begin implements recording.Backend.
func (b *Backend) Begin(s recording.Surface) error {
	if s.CanvasWidth <= 0 || s.CanvasHeight <= 0 {
		return fmt.Errorf("pdf: invalid canvas size %gx%g", s.CanvasWidth, s.CanvasHeight)
	}
	if s.PhysWidth <= 0 || s.PhysHeight <= 0 {
		return fmt.Errorf("pdf: invalid physical size %gx%g", s.PhysWidth, s.PhysHeight)
	}
	pageW := s.PhysWidth * pointsPerInch
	pageH := s.PhysHeight * pointsPerInch

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)

	b.doc = doc
	b.surf = s
	// Canvas coordinates map onto the page in points.
	b.base = recording.Scale(pageW/s.CanvasWidth, pageH/s.CanvasHeight)
	b.ctm = b.base
	b.stack = b.stack[:0]
	b.clips = 0
	b.images = 0
	b.begun = true
	return b.err()
}

// End implements recording.Backend.
func (b *Backend) End() error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	b.closeClips(0)
	return b.err()
}

// Save implements recording.Backend.
func (b *Backend) Save() {
	b.stack = append(b.stack, pdfState{ctm: b.ctm, clips: b.clips})
}

// Restore implements recording.Backend.
func (b *Backend) Restore() {
	if len(b.stack) == 0 {
		return
	}
	s := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.ctm = s.ctm
	b.closeClips(s.clips)
}

// SetTransform implements recording.Backend.
func (b *Backend) SetTransform(m recording.Matrix) {
	b.ctm = b.base.Mul(m)
}

// SetClip implements recording.Backend. The clip region is the flattened
// outline of the transformed path; replacing an existing clip at the same
// save depth closes the previous region first.
func (b *Backend) SetClip(path *recording.Path, rule recording.FillRule) {
	if !b.begun || path == nil || path.IsEmpty() {
		return
	}
	floor := 0
	if len(b.stack) > 0 {
		floor = b.stack[len(b.stack)-1].clips
	}
	b.closeClips(floor)
	pts := flattenToPoints(path.Transform(b.ctm))
	if len(pts) < 3 {
		return
	}
	b.doc.ClipPolygon(pts, false)
	b.clips++
}

// ResetClip implements recording.Backend.
func (b *Backend) ResetClip() {
	b.closeClips(0)
}

// Clear implements recording.Backend.
func (b *Backend) Clear(c recording.Color) {
	if !b.begun {
		return
	}
	r, g, bl, _ := c.RGBA8()
	b.doc.SetFillColor(int(r), int(g), int(bl))
	b.doc.SetAlpha(c.A, "Normal")
	b.doc.Rect(0, 0, b.surf.PhysWidth*pointsPerInch, b.surf.PhysHeight*pointsPerInch, "F")
	b.doc.SetAlpha(1, "Normal")
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
	r, g, bl, _ := c.RGBA8()
	b.doc.SetFillColor(int(r), int(g), int(bl))
	b.doc.SetAlpha(c.A, "Normal")
	b.writePath(path.Transform(b.ctm))
	b.doc.DrawPath("F")
	b.doc.SetAlpha(1, "Normal")
	if err := b.err(); err != nil {
		return err
	}
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
	r, g, bl, _ := c.RGBA8()
	b.doc.SetDrawColor(int(r), int(g), int(bl))
	b.doc.SetAlpha(c.A, "Normal")
	b.doc.SetLineWidth(stroke.Width * scale)
	b.doc.SetLineCapStyle(capName(stroke.Cap))
	b.doc.SetLineJoinStyle(joinName(stroke.Join))
	if len(stroke.DashPattern) > 0 {
		dashes := make([]float64, len(stroke.DashPattern))
		for i, d := range stroke.DashPattern {
			dashes[i] = d * scale
		}
		b.doc.SetDashPattern(dashes, stroke.DashOffset*scale)
	} else {
		b.doc.SetDashPattern(nil, 0)
	}
	b.writePath(path.Transform(b.ctm))
	b.doc.DrawPath("D")
	b.doc.SetAlpha(1, "Normal")
	return b.err()
}

// FillRect implements recording.Backend.
func (b *Backend) FillRect(r recording.Rect, brush recording.Brush) error {
	if r.IsEmpty() {
		return recording.Warnf("fillrect", "empty rectangle")
	}
	return b.FillPath(r.Path(), brush, recording.FillRuleNonZero)
}

// DrawImage implements recording.Backend. The image is re-encoded as PNG
// and placed by the transformed destination rectangle.
func (b *Backend) DrawImage(img image.Image, dst recording.Rect) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if img == nil {
		return recording.Warnf("image", "nil image")
	}
	var enc bytes.Buffer
	if err := png.Encode(&enc, img); err != nil {
		return fmt.Errorf("pdf: encoding embedded image: %w", err)
	}
	b.images++
	name := fmt.Sprintf("img%d", b.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	b.doc.RegisterImageOptionsReader(name, opts, &enc)

	x0, y0 := b.ctm.Apply(dst.MinX, dst.MinY)
	x1, y1 := b.ctm.Apply(dst.MaxX, dst.MaxY)
	b.doc.ImageOptions(name, x0, y0, x1-x0, y1-y0, false, opts, 0, "")
	return b.err()
}

// DrawText implements recording.Backend.
func (b *Backend) DrawText(text string, x, y float64, family string, size float64, brush recording.Brush) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if text == "" {
		return recording.Warnf("text", "empty string")
	}
	c := recording.BrushColor(brush)
	r, g, bl, _ := c.RGBA8()
	b.doc.SetTextColor(int(r), int(g), int(bl))
	b.doc.SetFont(coreFont(family), "", size*b.ctm.ScaleFactor())
	px, py := b.ctm.Apply(x, y)
	b.doc.Text(px, py, text)
	return b.err()
}

// WriteTo implements recording.WriterBackend.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.begun {
		return 0, recording.ErrNotBegun
	}
	cw := &countingWriter{w: w}
	if err := b.doc.Output(cw); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// SaveTo implements recording.FileBackend.
func (b *Backend) SaveTo(path string) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	return b.doc.OutputFileAndClose(path)
}

func (b *Backend) err() error {
	if b.doc != nil && b.doc.Err() {
		return fmt.Errorf("pdf: %w", b.doc.Error())
	}
	return nil
}

func (b *Backend) closeClips(downTo int) {
	for b.clips > downTo {
		b.doc.ClipEnd()
		b.clips--
	}
}

// writePath emits a pre-transformed path into the current content stream.
func (b *Backend) writePath(p *recording.Path) {
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case recording.MoveTo:
			b.doc.MoveTo(e.Point.X, e.Point.Y)
		case recording.LineTo:
			b.doc.LineTo(e.Point.X, e.Point.Y)
		case recording.QuadTo:
			b.doc.CurveTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case recording.CubicTo:
			b.doc.CurveBezierCubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case recording.Close:
			b.doc.ClosePath()
		}
	}
}

// curveSegments is the flattening resolution for clip outlines.
const curveSegments = 16

// flattenToPoints reduces a path to a polygon outline for clipping.
func flattenToPoints(p *recording.Path) []fpdf.PointType {
	var pts []fpdf.PointType
	var cur recording.Point
	add := func(x, y float64) {
		pts = append(pts, fpdf.PointType{X: x, Y: y})
		cur = recording.Pt(x, y)
	}
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case recording.MoveTo:
			add(e.Point.X, e.Point.Y)
		case recording.LineTo:
			add(e.Point.X, e.Point.Y)
		case recording.QuadTo:
			p0 := cur
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				mt := 1 - t
				x := mt*mt*p0.X + 2*mt*t*e.Control.X + t*t*e.Point.X
				y := mt*mt*p0.Y + 2*mt*t*e.Control.Y + t*t*e.Point.Y
				add(x, y)
			}
		case recording.CubicTo:
			p0 := cur
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				mt := 1 - t
				x := mt*mt*mt*p0.X + 3*mt*mt*t*e.Control1.X + 3*mt*t*t*e.Control2.X + t*t*t*e.Point.X
				y := mt*mt*mt*p0.Y + 3*mt*mt*t*e.Control1.Y + 3*mt*t*t*e.Control2.Y + t*t*t*e.Point.Y
				add(x, y)
			}
		case recording.Close:
			// ClipPolygon closes implicitly.
		}
	}
	return pts
}

func coreFont(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "mono") || strings.Contains(f, "courier"):
		return "Courier"
	case strings.Contains(f, "serif") && !strings.Contains(f, "sans"):
		return "Times"
	default:
		return "Helvetica"
	}
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

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
