package device

import "sync"

// Tracker guards the single "current device" reference: the drawing
// target currently receiving output. Exactly one device is current at a
// time. Operations that need a device of their own swap it in and must
// restore the previous value on every exit path.
type Tracker struct {
	mu  sync.Mutex
	cur Device
}

// NewTracker creates a tracker with no current device.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Current returns the current device, or nil when none is set.
func (t *Tracker) Current() Device {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur
}

// Swap installs d as the current device and returns the previous one.
func (t *Tracker) Swap(d Device) Device {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.cur
	t.cur = d
	return prev
}
