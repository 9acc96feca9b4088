package device

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/plotrec/recording"
)

// Common device errors.
var (
	// ErrNoBackend means no link of the capability chain matched the
	// host: no usable drawing backend exists on this machine.
	ErrNoBackend = errors.New("device: no usable drawing backend available")

	// ErrClosed is returned when a closed device is used.
	ErrClosed = errors.New("device: device already closed")
)

// Descriptor describes one rendering surface. It is an ephemeral value:
// built per device, never persisted.
type Descriptor struct {
	// Path is the output file, empty for capture devices.
	Path string

	// Surface carries the canvas and output geometry.
	Surface recording.Surface

	// Backend is the recording backend name the device draws through.
	Backend string

	// Type tags how the surface is realized ("accelerated", "software",
	// "minimal", or "file"). Carried forward as bookkeeping when one
	// device replaces another.
	Type string

	// TextureFormat is the pixel layout for offscreen surfaces.
	TextureFormat gputypes.TextureFormat
}

// Device is a drawing surface with an owned lifetime. Closing a device
// releases it; for file devices, closing is what commits the output.
type Device interface {
	// Descriptor returns the device's descriptor.
	Descriptor() Descriptor

	// Close releases the device. Implementations define whether Close
	// commits output; closing twice returns ErrClosed.
	Close() error
}
