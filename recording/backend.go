package recording

import (
	"errors"
	"image"
	"io"
)

// Common backend errors.
var (
	// ErrNotBegun is returned when a backend is used before Begin.
	ErrNotBegun = errors.New("recording: backend not begun")
)

// Surface describes the output surface a backend renders into.
//
// CanvasWidth and CanvasHeight are the dimensions of the recording
// coordinate space; every command replayed to the backend uses these
// coordinates. The remaining fields describe the physical output:
// backends scale canvas coordinates to their output themselves.
type Surface struct {
	// CanvasWidth and CanvasHeight span the recording coordinate space.
	CanvasWidth, CanvasHeight float64

	// PixelWidth and PixelHeight are the output size in device pixels.
	// Used by raster backends.
	PixelWidth, PixelHeight int

	// PhysWidth and PhysHeight are the output size in inches.
	// Used by vector backends.
	PhysWidth, PhysHeight float64

	// DPI is the raster output resolution in dots per inch.
	DPI float64
}

// Backend receives replayed drawing commands and translates them to an
// output format. Implementations are registered by name via Register and
// constructed through NewBackend.
//
// A backend manages its own transform and clip stack for Save/Restore.
// All drawing coordinates arrive in recording canvas space; the backend
// is responsible for mapping them to its output size.
type Backend interface {
	// Begin prepares the backend for a replay onto the given surface.
	// It must be called before any drawing method.
	Begin(s Surface) error

	// End finalizes the drawing. After End, output methods such as
	// SaveTo or WriteTo may be used. Drawing after End is undefined.
	End() error

	// Save pushes the current graphics state (transform and clip).
	Save()

	// Restore pops the most recently saved state. No-op when the
	// stack is empty.
	Restore()

	// SetTransform replaces the current transformation matrix.
	SetTransform(m Matrix)

	// SetClip replaces the clip region with the given path.
	SetClip(path *Path, rule FillRule)

	// ResetClip restores the clip region to the full canvas.
	ResetClip()

	// Clear fills the entire surface with a background color,
	// ignoring transform and clip.
	Clear(c Color)

	// FillPath fills a path with a brush.
	FillPath(path *Path, brush Brush, rule FillRule) error

	// StrokePath strokes a path with a brush and stroke style.
	StrokePath(path *Path, brush Brush, stroke Stroke) error

	// FillRect fills an axis-aligned rectangle with a brush.
	FillRect(r Rect, brush Brush) error

	// DrawImage draws an image scaled into a destination rectangle.
	DrawImage(img image.Image, dst Rect) error

	// DrawText draws a text run with its baseline at (x, y).
	DrawText(text string, x, y float64, family string, size float64, brush Brush) error
}

// FileBackend is implemented by backends that can commit their output to
// a file. Writing happens only here: the output is not valid until
// SaveTo returns.
type FileBackend interface {
	Backend
	SaveTo(path string) error
}

// WriterBackend is implemented by backends that can stream their output.
type WriterBackend interface {
	Backend
	WriteTo(w io.Writer) (int64, error)
}

// ImageBackend is implemented by raster backends that expose the
// rendered pixels.
type ImageBackend interface {
	Backend
	Image() image.Image
}
