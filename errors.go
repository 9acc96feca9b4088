package plotrec

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that no recording exists under the requested id.
	// Render and Snapshot errors match it with errors.Is.
	ErrNotFound = errors.New("plotrec: recording not found")

	// ErrNoPlot reports that nothing has been drawn on the current device.
	ErrNoPlot = errors.New("plotrec: no plot has been drawn")
)

// NotFoundError reports a lookup of an id with no stored recording.
// It is recoverable: the caller can record under the id and retry.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plotrec: no recording with id %q", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FormatError is the panic value raised when an operation receives a
// Format the package does not define. Callers construct Format values
// only from the exported constants or ParseFormat, so reaching this is
// a programming error, not a runtime condition.
type FormatError struct {
	Format Format
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("plotrec: invalid format %d", int(e.Format))
}
