package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)

	if d := clock.Since(past); d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, time.January, 7, 17, 31, 29, 0, time.UTC)
	clock := FixedClock{T: at}

	if !clock.Now().Equal(at) {
		t.Errorf("Now() = %v, want %v", clock.Now(), at)
	}
	if d := clock.Since(at.Add(-90 * time.Second)); d != 90*time.Second {
		t.Errorf("Since() = %v, want 90s", d)
	}
}

func TestRunStamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2026, time.January, 7, 19, 31, 29, 0, loc)

	if got := RunStamp(at); got != "20260107-173129" {
		t.Errorf("RunStamp() = %q, want %q", got, "20260107-173129")
	}
}
