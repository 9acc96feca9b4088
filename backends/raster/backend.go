// Package raster renders recordings to pixel images.
//
// The backend replays a display list onto an in-memory RGBA image using
// the golang.org/x/image/vector rasterizer and commits the result as
// PNG, JPEG, or TIFF depending on the output file extension.
//
// # Supported features
//
//   - Solid fills and strokes with antialiased coverage
//   - Path operations (fill, stroke, clip) under arbitrary affine
//     transforms
//   - Dash patterns, butt/round/square caps
//   - Image drawing with bilinear scaling
//   - Text via a built-in bitmap face
//
// # Limitations
//
// Gradient brushes replay as their first stop color; the even-odd fill
// rule rasterizes with non-zero winding; joins render rounded; text uses
// a fixed-size bitmap face, so font family and size requests affect
// placement only. Each limitation surfaces as a recording.Warning during
// replay, which render pipelines typically suppress.
//
// # Example
//
//	// Import to register the backend.
//	import _ "github.com/gogpu/plotrec/backends/raster"
//
//	b, _ := recording.NewBackend("raster")
//	b.Begin(surface)
//	rec.Replay(b)
//	b.End()
//	b.(recording.FileBackend).SaveTo("plot.png")
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"

	"github.com/gogpu/plotrec/recording"
)

func init() {
	recording.Register("raster", func() recording.Backend {
		return New()
	})
}

// Backend replays recordings onto an RGBA image.
type Backend struct {
	img   *image.RGBA
	surf  recording.Surface
	base  recording.Matrix
	ctm   recording.Matrix
	clip  *image.Alpha // nil means unclipped
	stack []rasterState
	begun bool
}

type rasterState struct {
	ctm  recording.Matrix
	clip *image.Alpha
}

// Interface checks.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// New creates a raster backend. Begin must be called before drawing.
func New() *Backend {
	return &Backend{}
}

// Begin implements recording.Backend.
func (b *Backend) Begin(s recording.Surface) error {
	if s.PixelWidth <= 0 || s.PixelHeight <= 0 {
		return fmt.Errorf("raster: invalid pixel size %dx%d", s.PixelWidth, s.PixelHeight)
	}
	if s.CanvasWidth <= 0 || s.CanvasHeight <= 0 {
		return fmt.Errorf("raster: invalid canvas size %gx%g", s.CanvasWidth, s.CanvasHeight)
	}
	b.surf = s
	b.img = image.NewRGBA(image.Rect(0, 0, s.PixelWidth, s.PixelHeight))
	// White background, matching a fresh plot surface.
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	b.base = recording.Scale(
		float64(s.PixelWidth)/s.CanvasWidth,
		float64(s.PixelHeight)/s.CanvasHeight,
	)
	b.ctm = b.base
	b.clip = nil
	b.stack = b.stack[:0]
	b.begun = true
	return nil
}

// End implements recording.Backend.
func (b *Backend) End() error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	return nil
}

// Save implements recording.Backend.
func (b *Backend) Save() {
	b.stack = append(b.stack, rasterState{ctm: b.ctm, clip: b.clip})
}

// Restore implements recording.Backend.
func (b *Backend) Restore() {
	if len(b.stack) == 0 {
		return
	}
	s := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.ctm = s.ctm
	b.clip = s.clip
}

// SetTransform implements recording.Backend. The recorded matrix is
// composed onto the canvas-to-pixel base transform.
func (b *Backend) SetTransform(m recording.Matrix) {
	b.ctm = b.base.Mul(m)
}

// SetClip implements recording.Backend.
func (b *Backend) SetClip(path *recording.Path, rule recording.FillRule) {
	if path == nil || path.IsEmpty() {
		return
	}
	mask := b.rasterize(path.Transform(b.ctm))
	if b.clip != nil {
		mask = intersectAlpha(mask, b.clip)
	}
	b.clip = mask
}

// ResetClip implements recording.Backend.
func (b *Backend) ResetClip() {
	b.clip = nil
}

// Clear implements recording.Backend.
func (b *Backend) Clear(c recording.Color) {
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

// FillPath implements recording.Backend.
func (b *Backend) FillPath(path *recording.Path, brush recording.Brush, rule recording.FillRule) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if path == nil || path.IsEmpty() {
		return recording.Warnf("fill", "empty path")
	}
	mask := b.rasterize(path.Transform(b.ctm))
	b.composite(mask, brush)
	if _, ok := brush.(recording.SolidBrush); !ok && brush != nil {
		return recording.Warnf("fill", "gradient brush rendered as solid color")
	}
	if rule == recording.FillRuleEvenOdd {
		return recording.Warnf("fill", "even-odd rule rasterized as non-zero")
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
	width := stroke.Width * scale
	if width <= 0 {
		width = 1
	}

	lines := flattenPath(path.Transform(b.ctm))
	if stroke.DashPattern != nil {
		pattern := make([]float64, len(stroke.DashPattern))
		for i, d := range stroke.DashPattern {
			pattern[i] = d * scale
		}
		lines = applyDash(lines, pattern, stroke.DashOffset*scale)
	}

	outline := strokeOutline(lines, width, stroke.Cap)
	if outline.IsEmpty() {
		return nil
	}
	mask := b.rasterize(outline)
	b.composite(mask, brush)
	return nil
}

// FillRect implements recording.Backend.
func (b *Backend) FillRect(r recording.Rect, brush recording.Brush) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if r.IsEmpty() {
		return recording.Warnf("fillrect", "empty rectangle")
	}
	return b.FillPath(r.Path(), brush, recording.FillRuleNonZero)
}

// DrawImage implements recording.Backend.
func (b *Backend) DrawImage(img image.Image, dst recording.Rect) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if img == nil {
		return recording.Warnf("image", "nil image")
	}
	// Transform the destination corners and take the bounding box;
	// rotated image draws degrade to their axis-aligned bounds.
	x0, y0 := b.ctm.Apply(dst.MinX, dst.MinY)
	x1, y1 := b.ctm.Apply(dst.MaxX, dst.MaxY)
	rect := image.Rect(int(min(x0, x1)), int(min(y0, y1)), int(max(x0, x1)+0.5), int(max(y0, y1)+0.5))
	if rect.Empty() {
		return recording.Warnf("image", "empty destination")
	}

	if b.clip == nil {
		xdraw.BiLinear.Scale(b.img, rect, img, img.Bounds(), xdraw.Over, nil)
		return nil
	}
	// Scale into a scratch image, then composite through the clip mask.
	tmp := image.NewRGBA(rect)
	xdraw.BiLinear.Scale(tmp, rect, img, img.Bounds(), xdraw.Src, nil)
	draw.DrawMask(b.img, rect, tmp, rect.Min, b.clip, rect.Min, draw.Over)
	return nil
}

// DrawText implements recording.Backend. Text renders with a built-in
// bitmap face; the recorded family and size only position the baseline.
func (b *Backend) DrawText(text string, x, y float64, family string, size float64, brush recording.Brush) error {
	if !b.begun {
		return recording.ErrNotBegun
	}
	if text == "" {
		return recording.Warnf("text", "empty string")
	}
	px, py := b.ctm.Apply(x, y)
	col := recording.BrushColor(brush).NRGBA()
	d := font.Drawer{
		Dst:  b.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(px+0.5), int(py+0.5)),
	}
	d.DrawString(text)
	return nil
}

// Image implements recording.ImageBackend.
func (b *Backend) Image() image.Image {
	return b.img
}

// WriteTo implements recording.WriterBackend, encoding PNG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.img == nil {
		return 0, recording.ErrNotBegun
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SaveTo implements recording.FileBackend. The encoding is chosen from
// the file extension: .png, .jpeg/.jpg, or .tiff/.tif.
func (b *Backend) SaveTo(path string) error {
	if b.img == nil {
		return recording.ErrNotBegun
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	switch ext := filepath.Ext(path); ext {
	case ".png":
		err = png.Encode(f, b.img)
	case ".jpeg", ".jpg":
		err = jpeg.Encode(f, b.img, &jpeg.Options{Quality: 90})
	case ".tiff", ".tif":
		err = tiff.Encode(f, b.img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("raster: unsupported extension %q", ext)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// composite draws a brush through a coverage mask and the current clip.
func (b *Backend) composite(mask *image.Alpha, brush recording.Brush) {
	if b.clip != nil {
		mask = intersectAlpha(mask, b.clip)
	}
	col := recording.BrushColor(brush).NRGBA()
	draw.DrawMask(b.img, b.img.Bounds(), image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// intersectAlpha multiplies two coverage masks of the same bounds.
func intersectAlpha(a, c *image.Alpha) *image.Alpha {
	out := image.NewAlpha(a.Bounds())
	for i := range out.Pix {
		out.Pix[i] = uint8(uint16(a.Pix[i]) * uint16(c.Pix[i]) / 255)
	}
	return out
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
