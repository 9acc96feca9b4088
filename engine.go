package plotrec

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/plotrec/device"
	"github.com/gogpu/plotrec/recording"
)

// Engine captures plots as recordings and renders them to files.
//
// Drawing happens on a shadow device: an off-screen recorder that
// captures the display list instead of pixels. Record stores a snapshot
// of the current plot under an id; Render replays a stored snapshot
// onto a file device at any size, density and format without touching
// the current plot.
//
// Engine is safe for concurrent use.
type Engine struct {
	mu            sync.Mutex
	store         *Store
	caps          device.Capabilities
	tracker       *device.Tracker
	baseDPI       float64
	canvasW       float64
	canvasH       float64
	outputDir     string
	beforeReplace func(*recording.Recording)
}

// NewEngine creates an engine. The shadow device opens lazily on the
// first drawing access, so NewEngine never fails; a host with no usable
// backend surfaces device.ErrNoBackend from Canvas or NewPage instead.
func NewEngine(opts ...Option) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	store := o.store
	if store == nil {
		store = NewStore()
	}
	return &Engine{
		store:         store,
		caps:          o.caps,
		tracker:       device.NewTracker(),
		baseDPI:       o.baseDPI,
		canvasW:       o.canvasW,
		canvasH:       o.canvasH,
		outputDir:     o.outputDir,
		beforeReplace: o.beforeReplace,
	}
}

// Store returns the engine's recording store.
func (e *Engine) Store() *Store { return e.store }

// Canvas returns the recorder for the current plot, opening the shadow
// device if none is open. Collaborators draw the plot through it.
func (e *Engine) Canvas() (*recording.Recorder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.shadowLocked()
	if err != nil {
		return nil, err
	}
	return s.Recorder(), nil
}

// NewPage starts a fresh plot. If the current plot has content, the
// before-replace hook fires with a snapshot of it first.
func (e *Engine) NewPage() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.shadowLocked()
	if err != nil {
		return err
	}
	e.signalReplaceLocked(s)
	s.Reset()
	return nil
}

// BeforeReplace fires the before-replace hook for the current plot.
// It is a no-op when nothing has been drawn or no hook is registered.
func (e *Engine) BeforeReplace() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.tracker.Current().(*device.Shadow); ok {
		e.signalReplaceLocked(s)
	}
}

// Record stores a snapshot of the current plot under id, replacing any
// recording already stored there. It returns ErrNoPlot when nothing has
// been drawn.
func (e *Engine) Record(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.tracker.Current().(*device.Shadow)
	if !ok || !s.HasContent() {
		return ErrNoPlot
	}
	e.store.Put(id, s.Snapshot())
	Logger().Info("plot recorded", "id", id, "commands", s.Recorder().CommandCount())
	return nil
}

// Render replays the recording stored under id into a file of the given
// format and returns the file path. Width and height are the logical
// plot size in base-density pixels; ratio scales the output density for
// raster formats and the physical size for vector formats.
//
// The file device is current only for the duration of the call: the
// previous device is restored and partial output is discarded on every
// failure path. Replay warnings do not abort rendering; they are logged
// at debug level.
func (e *Engine) Render(id string, width, height, ratio float64, f Format) (string, error) {
	if width <= 0 || height <= 0 || ratio <= 0 {
		return "", fmt.Errorf("plotrec: invalid render size %gx%g@%g", width, height, ratio)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.store.Get(id)
	if !ok {
		return "", &NotFoundError{ID: id}
	}
	g := resolveUnits(width, height, ratio, e.baseDPI, f)

	dir, err := e.outputDirLocked()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("render-%s.%s", id, f.Ext()))

	fd, err := device.OpenFile(device.Descriptor{
		Path:    path,
		Backend: f.backendName(),
		Type:    "file",
		Surface: recording.Surface{
			CanvasWidth:  rec.Width(),
			CanvasHeight: rec.Height(),
			PixelWidth:   g.pixelW,
			PixelHeight:  g.pixelH,
			PhysWidth:    g.physW,
			PhysHeight:   g.physH,
			DPI:          g.dpi,
		},
	})
	if err != nil {
		return "", fmt.Errorf("plotrec: opening %s device: %w", f, err)
	}

	log := Logger()
	prev := e.tracker.Swap(fd)
	committed := false
	defer func() {
		e.tracker.Swap(prev)
		if !committed {
			fd.Discard()
			log.Warn("partial render discarded", "id", id, "path", path)
		}
	}()

	err = rec.Replay(fd.Backend(), recording.WithWarningHandler(func(w *recording.Warning) {
		log.Debug("replay warning", "id", id, "op", w.Op, "err", w.Err)
	}))
	if err != nil {
		return "", fmt.Errorf("plotrec: replaying %q: %w", id, err)
	}
	if err := fd.Close(); err != nil {
		return "", fmt.Errorf("plotrec: committing %q: %w", id, err)
	}
	committed = true
	log.Info("plot rendered", "id", id, "format", f.String(), "path", path)
	return path, nil
}

// Remove deletes the recording stored under id and reports whether one
// existed. Rendering the id afterwards fails with ErrNotFound.
func (e *Engine) Remove(id string) bool {
	return e.store.Remove(id)
}

// Close releases the current device. The store and any rendered files
// are left in place.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	cur := e.tracker.Swap(nil)
	if cur == nil {
		return nil
	}
	return cur.Close()
}

// shadowLocked returns the current shadow device, opening one if the
// current device is absent or not a shadow. Callers hold e.mu.
func (e *Engine) shadowLocked() (*device.Shadow, error) {
	if s, ok := e.tracker.Current().(*device.Shadow); ok {
		return s, nil
	}
	s, err := device.OpenShadow(e.caps, e.canvasW, e.canvasH, e.baseDPI, e.tracker.Current())
	if err != nil {
		return nil, fmt.Errorf("plotrec: opening shadow device: %w", err)
	}
	e.tracker.Swap(s)
	Logger().Info("shadow device opened", "type", s.Descriptor().Type)
	return s, nil
}

// signalReplaceLocked fires the before-replace hook when the plot has
// content. Callers hold e.mu.
func (e *Engine) signalReplaceLocked(s *device.Shadow) {
	if e.beforeReplace == nil || !s.HasContent() {
		return
	}
	e.beforeReplace(s.Snapshot())
}

// outputDirLocked returns the render output directory, creating a
// private temporary one on first use. Callers hold e.mu.
func (e *Engine) outputDirLocked() (string, error) {
	if e.outputDir != "" {
		return e.outputDir, nil
	}
	dir, err := os.MkdirTemp("", "plotrec-")
	if err != nil {
		return "", fmt.Errorf("plotrec: creating output dir: %w", err)
	}
	e.outputDir = dir
	return dir, nil
}
