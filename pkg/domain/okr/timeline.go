package okr

import (
	"fmt"
	"time"
)

// TimelineKind constrains an objective's duration.
type TimelineKind string

const (
	TimelineQuarterly TimelineKind = "quarterly"
	TimelineYearly    TimelineKind = "yearly"
)

// Duration bounds per timeline kind, in whole days.
const (
	quarterlyMinDays = 80
	quarterlyMaxDays = 100
	yearlyMinDays    = 350
	yearlyMaxDays    = 380
)

// IsValid returns true if the timeline kind is recognized.
func (k TimelineKind) IsValid() bool {
	switch k {
	case TimelineQuarterly, TimelineYearly:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k TimelineKind) String() string {
	return string(k)
}

// DurationBounds returns the allowed [min,max] span in days for this kind.
func (k TimelineKind) DurationBounds() (min, max int) {
	switch k {
	case TimelineQuarterly:
		return quarterlyMinDays, quarterlyMaxDays
	case TimelineYearly:
		return yearlyMinDays, yearlyMaxDays
	default:
		return 0, 0
	}
}

// ParseTimelineKind parses a string into a TimelineKind.
func ParseTimelineKind(s string) (TimelineKind, error) {
	kind := TimelineKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid timeline kind: %s", s)
	}
	return kind, nil
}

// DateOnly normalizes a datetime-with-time value to its calendar date in UTC.
// All containment checks compare dates, never clock times.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateSpan checks that an objective's date range is ordered and that its
// duration matches the timeline kind.
func ValidateSpan(kind TimelineKind, start, end time.Time) error {
	s, e := DateOnly(start), DateOnly(end)
	if !e.After(s) {
		return &TimelineError{
			Reason:     "end date must be after start date",
			ChildStart: s,
			ChildEnd:   e,
		}
	}

	days := int(e.Sub(s).Hours() / 24)
	min, max := kind.DurationBounds()
	if days < min || days > max {
		return &TimelineError{
			Reason:     fmt.Sprintf("%s objective must span %d-%d days, got %d", kind, min, max, days),
			ChildStart: s,
			ChildEnd:   e,
		}
	}
	return nil
}

// ValidateContainment checks that a child date range nests inside its
// parent's range and that the child range itself is ordered. Pure; called
// before any hierarchy write is accepted.
func ValidateContainment(parentStart, parentEnd, childStart, childEnd time.Time) error {
	ps, pe := DateOnly(parentStart), DateOnly(parentEnd)
	cs, ce := DateOnly(childStart), DateOnly(childEnd)

	switch {
	case cs.After(ce):
		return &TimelineError{
			Reason:      "child start date is after child end date",
			ParentStart: ps, ParentEnd: pe, ChildStart: cs, ChildEnd: ce,
		}
	case cs.Before(ps):
		return &TimelineError{
			Reason:      "child start date is before parent start date",
			ParentStart: ps, ParentEnd: pe, ChildStart: cs, ChildEnd: ce,
		}
	case ce.After(pe):
		return &TimelineError{
			Reason:      "child end date is after parent end date",
			ParentStart: ps, ParentEnd: pe, ChildStart: cs, ChildEnd: ce,
		}
	}
	return nil
}

// ValidateDueWithin checks that a single due date falls inside the parent's
// [start,end] range.
func ValidateDueWithin(parentStart, parentEnd, due time.Time) error {
	return ValidateContainment(parentStart, parentEnd, due, due)
}
