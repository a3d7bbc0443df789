package interview

import "testing"

func TestCountdownDisplay(t *testing.T) {
	cd := NewCountdown(65000)
	if got := cd.Display(); got != "00:01:05" {
		t.Fatalf("Display() = %q, want 00:01:05", got)
	}
}

func TestCountdownTicksToZero(t *testing.T) {
	cd := NewCountdown(65000)

	refetches := 0
	for i := 0; i < 70; i++ {
		if cd.Tick() {
			refetches++
		}
	}

	if got := cd.Display(); got != "00:00:00" {
		t.Errorf("Display() after expiry = %q, want 00:00:00", got)
	}
	if !cd.Expired() {
		t.Error("countdown should be expired")
	}
	if refetches != 1 {
		t.Errorf("refetch fired %d times, want exactly 1", refetches)
	}
}

func TestCountdownDecrementsOnePerTick(t *testing.T) {
	cd := NewCountdown(65000)
	cd.Tick()
	if got := cd.Display(); got != "00:01:04" {
		t.Errorf("Display() after one tick = %q, want 00:01:04", got)
	}
	if cd.Remaining() != 64 {
		t.Errorf("Remaining() = %d, want 64", cd.Remaining())
	}
}

func TestCountdownNegativeClampsToZero(t *testing.T) {
	cd := NewCountdown(-5000)
	if got := cd.Display(); got != "00:00:00" {
		t.Errorf("Display() = %q, want 00:00:00", got)
	}
	if !cd.Tick() {
		t.Error("first tick at zero must fire the refetch")
	}
	if cd.Tick() {
		t.Error("refetch must not fire twice")
	}
}
