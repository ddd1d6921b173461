package okr

import (
	"testing"
	"time"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestOverdueDetector_IsOverdue(t *testing.T) {
	today := date(2026, 3, 15)
	detector := NewOverdueDetector(fixedClock(today))

	yesterday := date(2026, 3, 14)
	tomorrow := date(2026, 3, 16)

	tests := []struct {
		name    string
		due     *time.Time
		status  Status
		overdue bool
	}{
		{"no due date never fires", nil, StatusInProgress, false},
		{"due yesterday, in progress", &yesterday, StatusInProgress, true},
		{"due yesterday, not started", &yesterday, StatusNotStarted, true},
		{"due yesterday, blocked", &yesterday, StatusBlocked, true},
		{"due today does not fire", &today, StatusInProgress, false},
		{"due tomorrow", &tomorrow, StatusInProgress, false},
		{"completed is exempt", &yesterday, StatusCompleted, false},
		{"cancelled is exempt", &yesterday, StatusCancelled, false},
		{"already overdue does not refire", &yesterday, StatusOverdue, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detector.IsOverdue(tt.due, tt.status); got != tt.overdue {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.overdue)
			}
		})
	}
}

func TestOverdueDetector_Apply(t *testing.T) {
	detector := NewOverdueDetector(fixedClock(date(2026, 3, 15)))
	past := date(2026, 3, 1)

	status, flipped := detector.Apply(&past, StatusInProgress)
	if !flipped || status != StatusOverdue {
		t.Errorf("Apply() = (%s, %v), want (overdue, true)", status, flipped)
	}

	status, flipped = detector.Apply(&past, StatusCompleted)
	if flipped || status != StatusCompleted {
		t.Errorf("Apply() on completed = (%s, %v), want (completed, false)", status, flipped)
	}

	status, flipped = detector.Apply(nil, StatusInProgress)
	if flipped || status != StatusInProgress {
		t.Errorf("Apply() without due date = (%s, %v), want (in_progress, false)", status, flipped)
	}
}

func TestOverdueDetector_IgnoresClockTime(t *testing.T) {
	// Due date with a late clock time on yesterday's calendar date still counts
	// as yesterday once normalized.
	detector := NewOverdueDetector(fixedClock(date(2026, 3, 15)))
	due := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)
	if !detector.IsOverdue(&due, StatusInProgress) {
		t.Error("due late yesterday should be overdue today")
	}
}

func TestNewOverdueDetector_DefaultClock(t *testing.T) {
	d := NewOverdueDetector(nil)
	if d.Today().IsZero() {
		t.Error("nil clock should fall back to time.Now")
	}
}
