package plotrec

import (
	"github.com/gogpu/plotrec/device"
	"github.com/gogpu/plotrec/recording"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Default configuration
//	eng := plotrec.NewEngine()
//
//	// Shared store and explicit capabilities
//	eng := plotrec.NewEngine(
//	    plotrec.WithStore(store),
//	    plotrec.WithCapabilities(device.HostCapabilities()),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	store         *Store
	caps          device.Capabilities
	outputDir     string
	baseDPI       float64
	canvasW       float64
	canvasH       float64
	beforeReplace func(*recording.Recording)
}

// defaultEngineOptions returns the default engine options.
func defaultEngineOptions() engineOptions {
	return engineOptions{
		caps:    device.HostCapabilities(),
		baseDPI: defaultBaseDPI,
		canvasW: device.DefaultWidth,
		canvasH: device.DefaultHeight,
	}
}

// WithStore sets the recording store. Use this to share recordings
// between engines or to pre-populate recordings. A nil store is ignored.
func WithStore(s *Store) Option {
	return func(o *engineOptions) {
		if s != nil {
			o.store = s
		}
	}
}

// WithCapabilities sets the host capabilities used to select the shadow
// device backend. The default assumes software rendering is available.
func WithCapabilities(caps device.Capabilities) Option {
	return func(o *engineOptions) {
		o.caps = caps
	}
}

// WithOutputDir sets the directory rendered files are written to. The
// directory must exist. By default the engine creates a private
// temporary directory on first render.
func WithOutputDir(dir string) Option {
	return func(o *engineOptions) {
		o.outputDir = dir
	}
}

// WithBaseDPI overrides the platform base density used to convert
// logical plot sizes to device units. Values at or below zero are
// ignored.
func WithBaseDPI(dpi float64) Option {
	return func(o *engineOptions) {
		if dpi > 0 {
			o.baseDPI = dpi
		}
	}
}

// WithCanvasSize sets the logical size of the drawing canvas opened for
// new plots. The default is 1024x768.
func WithCanvasSize(width, height float64) Option {
	return func(o *engineOptions) {
		if width > 0 && height > 0 {
			o.canvasW = width
			o.canvasH = height
		}
	}
}

// WithBeforeReplace registers a hook invoked with a snapshot of the
// current plot just before a new page replaces it. The hook does not
// fire when nothing has been drawn.
func WithBeforeReplace(fn func(*recording.Recording)) Option {
	return func(o *engineOptions) {
		o.beforeReplace = fn
	}
}
