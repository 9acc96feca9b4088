// Package recording captures drawing operations as a replayable display list.
//
// A Recorder mirrors a 2D drawing context API but appends typed Command
// values instead of rasterizing pixels. Snapshot produces an immutable
// Recording of everything drawn so far; the Recording can later be replayed
// onto any Backend (raster, SVG, PDF) at a different size and density,
// without access to whatever produced the original drawing.
//
// Commands are typed structs rather than a binary format so that recordings
// are inspectable and replay is a plain type switch. Heavy resources (paths,
// brushes, images) live in a ResourcePool and are referenced by handle, so
// repeated use of the same path or brush costs one entry.
//
// Backends register themselves by name, following the database/sql driver
// pattern:
//
//	import _ "github.com/gogpu/plotrec/backends/raster"
//
//	b, err := recording.NewBackend("raster")
//
// Replay distinguishes hard failures from incidental diagnostics: a backend
// may report a *Warning, which callers can observe or discard via
// WithWarningHandler while real errors still abort the replay.
package recording
