package device

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/plotrec/recording"
)

// Default shadow canvas size, matching a typical interactive viewport.
const (
	DefaultWidth  = 1024.0
	DefaultHeight = 768.0
)

// Shadow is an offscreen capture surface. Drawing on its Recorder
// produces a display list instead of pixels, so the current plot can be
// snapshotted at any moment without touching a real display. It owns its
// identity outright; no platform device record is aliased or patched.
type Shadow struct {
	desc   Descriptor
	rec    *recording.Recorder
	closed bool
}

// OpenShadow opens a capture surface via the capability fallback chain.
// Canvas size and DPI describe the logical viewport. When prev is
// non-nil, its resolution and type bookkeeping carry forward so the new
// surface presents the same identity the replaced device had.
func OpenShadow(caps Capabilities, width, height, dpi float64, prev Device) (*Shadow, error) {
	probe, err := Select(caps, Chain)
	if err != nil {
		return nil, err
	}

	format := gputypes.TextureFormatRGBA8Unorm
	if probe.Name == "accelerated" {
		if err := verifyGPU(caps.GPU); err != nil {
			return nil, err
		}
		format = caps.GPU.SurfaceFormat()
	}

	desc := Descriptor{
		Surface: recording.Surface{
			CanvasWidth:  width,
			CanvasHeight: height,
			DPI:          dpi,
		},
		Type:          probe.Name,
		TextureFormat: format,
	}
	if prev != nil {
		pd := prev.Descriptor()
		if pd.Surface.DPI > 0 {
			desc.Surface.DPI = pd.Surface.DPI
		}
		if pd.Type != "" {
			desc.Type = pd.Type
		}
	}

	return &Shadow{
		desc: desc,
		rec:  recording.NewRecorder(width, height),
	}, nil
}

// Descriptor implements Device.
func (s *Shadow) Descriptor() Descriptor { return s.desc }

// Recorder returns the capture surface's drawing context.
func (s *Shadow) Recorder() *recording.Recorder { return s.rec }

// Snapshot captures the current display list as an immutable Recording.
// The surface keeps recording afterward.
func (s *Shadow) Snapshot() *recording.Recording { return s.rec.Snapshot() }

// HasContent reports whether anything has been drawn since the last Reset.
func (s *Shadow) HasContent() bool { return !s.rec.IsEmpty() }

// Reset clears the capture surface for a new drawing.
func (s *Shadow) Reset() { s.rec.Reset() }

// Close releases the surface.
func (s *Shadow) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return nil
}
