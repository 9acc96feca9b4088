package recording

import (
	"errors"
	"fmt"
)

// Warning is an error a backend reports for an incidental condition that
// does not invalidate the output, such as an unresolvable brush or an
// empty path. Replay callers decide whether warnings abort the replay
// (the default) or are handed to a handler and skipped.
type Warning struct {
	Op  string
	Err error
}

// Warnf creates a Warning for the given operation.
func Warnf(op, format string, args ...any) *Warning {
	return &Warning{Op: op, Err: fmt.Errorf(format, args...)}
}

func (w *Warning) Error() string {
	return "recording: " + w.Op + ": " + w.Err.Error()
}

func (w *Warning) Unwrap() error { return w.Err }

// ReplayOption configures a Replay call.
type ReplayOption func(*replayConfig)

type replayConfig struct {
	onWarning func(*Warning)
}

// WithWarningHandler makes Replay pass backend warnings to fn and
// continue instead of aborting. Hard errors still abort the replay.
func WithWarningHandler(fn func(*Warning)) ReplayOption {
	return func(c *replayConfig) { c.onWarning = fn }
}

// Recording is an immutable display list: the commands and resources of
// one captured drawing. A Recording never changes after creation; it can
// be replayed any number of times onto any Backend.
type Recording struct {
	width, height float64
	commands      []Command
	resources     *ResourcePool
}

// Width returns the canvas width the recording was captured at.
func (r *Recording) Width() float64 { return r.width }

// Height returns the canvas height the recording was captured at.
func (r *Recording) Height() float64 { return r.height }

// Commands returns the recorded commands. The slice must not be modified.
func (r *Recording) Commands() []Command { return r.commands }

// Resources returns the recording's resource pool.
func (r *Recording) Resources() *ResourcePool { return r.resources }

// IsEmpty reports whether the recording contains no commands.
func (r *Recording) IsEmpty() bool { return len(r.commands) == 0 }

// Replay plays the recorded commands onto a backend. The backend must
// already have been started with Begin; Replay does not call Begin or
// End, since output commit is owned by whoever opened the backend.
//
// The first hard error aborts the replay. Warnings abort too unless a
// WithWarningHandler option is given.
func (r *Recording) Replay(b Backend, opts ...ReplayOption) error {
	var cfg replayConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	handle := func(err error) error {
		if err == nil {
			return nil
		}
		var w *Warning
		if cfg.onWarning != nil && errors.As(err, &w) {
			cfg.onWarning(w)
			return nil
		}
		return err
	}

	for _, cmd := range r.commands {
		var err error
		switch c := cmd.(type) {
		case SaveCommand:
			b.Save()
		case RestoreCommand:
			b.Restore()
		case SetTransformCommand:
			b.SetTransform(c.Matrix)
		case SetClipCommand:
			b.SetClip(r.resources.Path(c.Path), c.Rule)
		case ClearClipCommand:
			b.ResetClip()
		case ClearCommand:
			b.Clear(c.Color)
		case FillPathCommand:
			err = b.FillPath(r.resources.Path(c.Path), r.resources.Brush(c.Brush), c.Rule)
		case StrokePathCommand:
			err = b.StrokePath(r.resources.Path(c.Path), r.resources.Brush(c.Brush), c.Stroke)
		case FillRectCommand:
			err = b.FillRect(c.Rect, r.resources.Brush(c.Brush))
		case DrawImageCommand:
			err = b.DrawImage(r.resources.Image(c.Image), c.DstRect)
		case DrawTextCommand:
			err = b.DrawText(c.Text, c.X, c.Y, c.FontFamily, c.FontSize, r.resources.Brush(c.Brush))
		default:
			err = fmt.Errorf("recording: unknown command %T", cmd)
		}
		if err = handle(err); err != nil {
			return err
		}
	}
	return nil
}
