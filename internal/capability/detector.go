// Package capability tracks whether the high-fidelity metrics library is
// usable on this host. Detection is memoized: failures are re-tried at most
// once per re-check interval, and a success is final for the process
// lifetime.
package capability

import (
	"fmt"
	"sync"
	"time"

	"gpustat-server/internal/domain"
	"gpustat-server/internal/logger"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type Detector struct {
	mu      sync.Mutex
	state   domain.CapabilityState
	recheck time.Duration
	log     logger.Logger

	probe func() (string, error)
	now   func() time.Time
}

func NewDetector(recheck time.Duration, log logger.Logger) *Detector {
	return &Detector{
		recheck: recheck,
		log:     log,
		probe:   probeHost,
		now:     time.Now,
	}
}

// Detect probes immediately, ignoring the re-check interval. A previous
// success is never revisited.
func (d *Detector) Detect() domain.CapabilityState {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state.Available {
		return d.state
	}

	d.run()
	return d.state
}

// Refresh re-probes only while unavailable and only once the re-check
// interval has elapsed since the last attempt. Otherwise it returns the
// memoized state.
func (d *Detector) Refresh() domain.CapabilityState {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state.Available {
		return d.state
	}

	if !d.state.LastChecked.IsZero() && d.now().Sub(d.state.LastChecked) < d.recheck {
		return d.state
	}

	d.run()
	return d.state
}

// State returns the memoized state without probing.
func (d *Detector) State() domain.CapabilityState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Detector) run() {
	msg, err := d.probe()
	d.state.LastChecked = d.now()

	if err != nil {
		d.state.Available = false
		d.state.StatusMessage = err.Error()
		d.log.Warn("metrics library unusable, collectors will use /proc fallbacks", "error", err)
		return
	}

	d.state.Available = true
	d.state.StatusMessage = msg
	d.log.Info("metrics library verified", "detail", msg)
}

// probeHost exercises the library against the running host. On stripped-down
// containers the procfs queries fail even though the code is linked in, which
// is exactly the condition the fallback tiers exist for.
func probeHost() (string, error) {
	n, err := cpu.Counts(true)
	if err != nil {
		return "", fmt.Errorf("cpu count query failed: %w", err)
	}
	if n <= 0 {
		return "", fmt.Errorf("cpu count query returned %d", n)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return "", fmt.Errorf("virtual memory query failed: %w", err)
	}
	if vm.Total == 0 {
		return "", fmt.Errorf("virtual memory query returned zero total")
	}

	return fmt.Sprintf("gopsutil verified: %d logical cpus, %d bytes ram", n, vm.Total), nil
}
