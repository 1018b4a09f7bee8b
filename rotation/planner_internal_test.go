package rotation

import (
	"testing"
	"time"
)

// Drift simulation is internal machinery; these tests pin down the weekday
// arithmetic directly rather than through full Suggest runs.

func TestSimulateDrift_SevenMultipleNeverDrifts(t *testing.T) {
	resume := NewDate(2025, time.January, 27) // Monday
	target := time.Monday
	if alert := simulateDrift(resume, 14, 7, &target); alert != nil {
		t.Fatalf("21-day cycle flagged as drifting: %v", alert)
	}
	if alert := simulateDrift(resume, 18, 10, &target); alert != nil {
		t.Fatalf("28-day cycle flagged as drifting: %v", alert)
	}
}

func TestSimulateDrift_OneDayShiftDriftsForward(t *testing.T) {
	// A 22-day cycle moves the work start one weekday later every cycle:
	// offsets walk 1,2,3,4,5,6 without ever realigning.
	resume := NewDate(2025, time.January, 27)
	target := resume.Weekday()

	alert := simulateDrift(resume, 15, 7, &target)
	if alert == nil {
		t.Fatal("expected drift alert for 22-day cycle")
	}
	if alert.Code != AlertWeekdayDrift {
		t.Fatalf("expected %s, got %s", AlertWeekdayDrift, alert.Code)
	}
}

func TestSimulateDrift_OneDayShiftDriftsBackward(t *testing.T) {
	// A 20-day cycle walks the offset 6,5,4,3,2,1: same drift, other way.
	resume := NewDate(2025, time.January, 27)
	target := resume.Weekday()

	if alert := simulateDrift(resume, 13, 7, &target); alert == nil {
		t.Fatal("expected drift alert for 20-day cycle")
	}
}

func TestSimulateDrift_TwoDayShiftOscillates(t *testing.T) {
	// A 19-day cycle jumps two weekdays per cycle and wraps within the
	// horizon (5,3,1,6,4,2). Wrapping is oscillation, not drift.
	resume := NewDate(2025, time.January, 27)
	target := resume.Weekday()

	if alert := simulateDrift(resume, 12, 7, &target); alert != nil {
		t.Fatalf("oscillating pattern flagged as drifting: %v", alert)
	}
}

func TestSimulateDrift_NoTargetNoAlert(t *testing.T) {
	resume := NewDate(2025, time.January, 27)
	if alert := simulateDrift(resume, 15, 7, nil); alert != nil {
		t.Fatalf("drift reported without a target weekday: %v", alert)
	}
}
