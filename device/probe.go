package device

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Capabilities are the host capability flags the fallback chain probes.
// The zero value describes a host with no drawing capability at all.
type Capabilities struct {
	// GPU is the host-supplied GPU device provider, nil when the host
	// has no accelerated surface to offer.
	GPU gpucontext.DeviceProvider

	// Software reports whether full software rasterization is permitted.
	Software bool

	// Minimal reports whether a bare image surface may be used as a
	// last resort.
	Minimal bool
}

// HostCapabilities returns the default capabilities of the current host.
// Software rasterization is always permitted; acceleration requires the
// host to inject a GPU provider.
func HostCapabilities() Capabilities {
	return Capabilities{Software: true, Minimal: true}
}

// Probe is one link of the capability fallback chain. Available is a
// pure predicate over Capabilities, so chains are testable without a
// display attached.
type Probe struct {
	Name      string
	Available func(Capabilities) bool
}

// Chain is the ordered capability fallback chain for shadow devices.
// The first available probe wins.
var Chain = []Probe{
	{Name: "accelerated", Available: func(c Capabilities) bool { return c.GPU != nil }},
	{Name: "software", Available: func(c Capabilities) bool { return c.Software }},
	{Name: "minimal", Available: func(c Capabilities) bool { return c.Minimal }},
}

// Select walks the chain and returns the first available probe.
// It returns ErrNoBackend when nothing matches.
func Select(caps Capabilities, chain []Probe) (Probe, error) {
	for _, p := range chain {
		if p.Available(caps) {
			return p, nil
		}
	}
	return Probe{}, ErrNoBackend
}

// verifyGPU checks the health of an accelerated surface before it is
// used as the interactive device. A provider that probes as available
// but hands out no device would leave a half-initialized interactive
// surface; that condition is escalated to a fatal open error.
func verifyGPU(p gpucontext.DeviceProvider) error {
	if p.Device() == nil {
		return fmt.Errorf("device: open warning escalated: gpu provider has no device")
	}
	if p.Queue() == nil {
		return fmt.Errorf("device: open warning escalated: gpu provider has no queue")
	}
	return nil
}
