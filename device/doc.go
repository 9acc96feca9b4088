// Package device manages drawing surfaces for plot capture and rendering.
//
// Two kinds of device exist. A Shadow device is a first-class offscreen
// capture surface: drawing on it feeds a recording.Recorder instead of a
// screen, so the displayed plot can be snapshotted at any time. A file
// device is opened for a single render call; closing it commits the
// output bytes to its path.
//
// Shadow devices are opened through an ordered capability fallback chain
// (accelerated, software, minimal). Each link of the chain is a pure
// predicate over a Capabilities value, so selection is testable without
// a display or GPU attached. When no link matches, OpenShadow fails with
// ErrNoBackend.
//
// A Tracker serializes access to the single "current device" reference.
// Exactly one device is current at a time; render calls swap their file
// device in and must restore the previous device on every exit path.
package device
