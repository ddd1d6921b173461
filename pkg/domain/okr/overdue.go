package okr

import "time"

// Clock supplies the current time; injectable for tests.
type Clock func() time.Time

// OverdueDetector flips an entity's status to overdue when its due date has
// passed and the current status is non-terminal. This is the one deliberate
// system-driven edge that bypasses the transition table; user-driven writes
// always go through ValidateTransition.
type OverdueDetector struct {
	now Clock
}

// NewOverdueDetector builds a detector. A nil clock means time.Now.
func NewOverdueDetector(now Clock) *OverdueDetector {
	if now == nil {
		now = time.Now
	}
	return &OverdueDetector{now: now}
}

// Today returns the detector's current calendar date.
func (d *OverdueDetector) Today() time.Time {
	return DateOnly(d.now())
}

// IsOverdue reports whether an entity with the given due date and status
// should be overdue. Entities without a due date never fire.
func (d *OverdueDetector) IsOverdue(due *time.Time, status Status) bool {
	if due == nil {
		return false
	}
	if status.IsTerminal() || status == StatusOverdue {
		return false
	}
	return DateOnly(*due).Before(d.Today())
}

// Apply returns the status the entity should carry, flipping to overdue when
// the guard holds. The second return value reports whether a flip happened.
func (d *OverdueDetector) Apply(due *time.Time, status Status) (Status, bool) {
	if d.IsOverdue(due, status) {
		return StatusOverdue, true
	}
	return status, false
}
