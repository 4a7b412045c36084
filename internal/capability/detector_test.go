package capability

import (
	"errors"
	"testing"
	"time"

	"gpustat-server/internal/logger"
)

func newTestDetector(recheck time.Duration) (*Detector, *int, *time.Time) {
	probes := 0
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	d := NewDetector(recheck, logger.New(logger.Options{Level: "error"}))
	d.now = func() time.Time { return clock }
	d.probe = func() (string, error) {
		probes++
		return "", errors.New("probe failed")
	}
	return d, &probes, &clock
}

func TestDetectProbesImmediately(t *testing.T) {
	d, probes, _ := newTestDetector(time.Minute)

	state := d.Detect()

	if *probes != 1 {
		t.Fatalf("probes = %d, want 1", *probes)
	}
	if state.Available {
		t.Error("Available = true after failed probe")
	}
	if state.StatusMessage != "probe failed" {
		t.Errorf("StatusMessage = %q", state.StatusMessage)
	}
	if state.LastChecked.IsZero() {
		t.Error("LastChecked not stamped")
	}
}

func TestRefreshRateLimitsWhileUnavailable(t *testing.T) {
	d, probes, clock := newTestDetector(time.Minute)

	d.Detect()
	if *probes != 1 {
		t.Fatalf("probes = %d, want 1", *probes)
	}

	// Within the re-check window the memoized failure is returned as is.
	*clock = clock.Add(30 * time.Second)
	d.Refresh()
	d.Refresh()
	if *probes != 1 {
		t.Errorf("probes = %d, want 1 inside the re-check window", *probes)
	}

	// Once the window has elapsed a new attempt is made.
	*clock = clock.Add(31 * time.Second)
	d.Refresh()
	if *probes != 2 {
		t.Errorf("probes = %d, want 2 after the window elapsed", *probes)
	}
}

func TestSuccessIsStickyForProcessLifetime(t *testing.T) {
	d, probes, clock := newTestDetector(time.Minute)

	succeed := true
	d.probe = func() (string, error) {
		*probes++
		if succeed {
			return "verified", nil
		}
		return "", errors.New("flaky")
	}

	state := d.Detect()
	if !state.Available {
		t.Fatal("Available = false after successful probe")
	}

	// Even if a later probe would fail, it is never run again.
	succeed = false
	*clock = clock.Add(time.Hour)
	if state := d.Refresh(); !state.Available {
		t.Error("Available flipped to false after memoized success")
	}
	if state := d.Detect(); !state.Available {
		t.Error("Detect revisited a memoized success")
	}
	if *probes != 1 {
		t.Errorf("probes = %d, want 1", *probes)
	}
}

func TestStateNeverProbes(t *testing.T) {
	d, probes, _ := newTestDetector(time.Minute)

	state := d.State()

	if *probes != 0 {
		t.Errorf("probes = %d, want 0", *probes)
	}
	if state.Available || !state.LastChecked.IsZero() {
		t.Errorf("zero-value state expected, got %+v", state)
	}
}
