package device

import (
	"fmt"
	"os"

	"github.com/gogpu/plotrec/recording"
)

// File is a rendering surface scoped to a single render call. Replay
// draws through its backend; Close finalizes the drawing and commits the
// bytes to the descriptor path. The output file must not be considered
// valid before Close returns nil.
type File struct {
	desc      Descriptor
	backend   recording.Backend
	closed    bool
	committed bool
}

// OpenFile opens a file device for the descriptor. The descriptor's
// Backend names a registered recording backend; Surface carries the
// output geometry.
func OpenFile(desc Descriptor) (*File, error) {
	b, err := recording.NewBackend(desc.Backend)
	if err != nil {
		return nil, fmt.Errorf("device: open %s: %w", desc.Backend, err)
	}
	if err := b.Begin(desc.Surface); err != nil {
		return nil, fmt.Errorf("device: begin %s: %w", desc.Backend, err)
	}
	desc.Type = "file"
	return &File{desc: desc, backend: b}, nil
}

// Descriptor implements Device.
func (f *File) Descriptor() Descriptor { return f.desc }

// Backend returns the drawing backend replay should target.
func (f *File) Backend() recording.Backend { return f.backend }

// Close finalizes the drawing and commits the output file.
func (f *File) Close() error {
	if f.closed {
		return ErrClosed
	}
	f.closed = true

	if err := f.backend.End(); err != nil {
		return fmt.Errorf("device: finalize %s: %w", f.desc.Backend, err)
	}
	fb, ok := f.backend.(recording.FileBackend)
	if !ok {
		return fmt.Errorf("device: backend %s cannot write files", f.desc.Backend)
	}
	if err := fb.SaveTo(f.desc.Path); err != nil {
		return fmt.Errorf("device: commit %s: %w", f.desc.Path, err)
	}
	f.committed = true
	return nil
}

// Discard releases the device without committing. Any partial output at
// the descriptor path is removed on a best-effort basis, including
// output left behind by a Close that failed mid-commit. Discard after a
// successful Close is a no-op.
func (f *File) Discard() {
	if f.committed {
		return
	}
	f.closed = true
	_ = os.Remove(f.desc.Path)
}
