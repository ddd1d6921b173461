package okr

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of an objective, goal or task.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
	StatusCancelled  Status = "cancelled"
	StatusOverdue    Status = "overdue"
)

// statusTable defines the allowed user-driven transitions per entity kind.
// Map: kind -> currentStatus -> allowed target statuses.
//
// The automatic overdue flip (OverdueDetector) is a system edge and is
// deliberately not represented here; it bypasses this table.
var statusTable = map[EntityKind]map[Status][]Status{
	KindTask: {
		StatusNotStarted: {StatusInProgress, StatusBlocked, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusBlocked, StatusCancelled, StatusOverdue},
		StatusBlocked:    {StatusInProgress, StatusCancelled},
		StatusOverdue:    {StatusInProgress, StatusCompleted, StatusCancelled},
	},
	KindGoal: {
		StatusNotStarted: {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusBlocked, StatusCancelled, StatusOverdue},
		StatusBlocked:    {StatusInProgress, StatusCancelled},
		StatusOverdue:    {StatusInProgress, StatusCompleted, StatusCancelled},
	},
	KindObjective: {
		StatusNotStarted: {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusCancelled, StatusOverdue},
		StatusOverdue:    {StatusInProgress, StatusCompleted, StatusCancelled},
	},
}

// AllStatuses returns all valid lifecycle statuses.
func AllStatuses() []Status {
	return []Status{
		StatusNotStarted,
		StatusInProgress,
		StatusCompleted,
		StatusBlocked,
		StatusCancelled,
		StatusOverdue,
	}
}

// IsValid returns true if the status is a recognized value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked, StatusCancelled, StatusOverdue:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the status ends the entity's lifecycle.
// No automatic transition ever fires from a terminal status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsLocked returns true if the status locks the entity against edits
// by actors without the override capability.
func (s Status) IsLocked() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusOverdue
}

// IsBlocked returns true if work on the entity is blocked.
func (s Status) IsBlocked() bool {
	return s == StatusBlocked
}

// CanTransitionTo returns true if a user-driven transition from this
// status to the target is allowed for the given entity kind.
func (s Status) CanTransitionTo(kind EntityKind, target Status) bool {
	targets, ok := statusTable[kind][s]
	if !ok {
		return false
	}
	for _, t := range targets {
		if t == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns all target statuses reachable from this status
// for the given entity kind.
func (s Status) ValidTransitions(kind EntityKind) []Status {
	targets, ok := statusTable[kind][s]
	if !ok {
		return nil
	}
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// ValidateTransition checks a user-driven edge against the per-kind table.
// Returns a *TransitionError (matching ErrIllegalTransition) when the edge
// is not permitted.
func ValidateTransition(kind EntityKind, current, next Status) error {
	if !next.IsValid() {
		return &TransitionError{Kind: kind, From: current, To: next}
	}
	if !current.CanTransitionTo(kind, next) {
		return &TransitionError{Kind: kind, From: current, To: next}
	}
	return nil
}

// DisplayName returns a human-readable name for the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusBlocked:
		return "Blocked"
	case StatusCancelled:
		return "Cancelled"
	case StatusOverdue:
		return "Overdue"
	default:
		return string(s)
	}
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	// Accept empty string as not_started for records predating the field
	if str == "" {
		*s = StatusNotStarted
		return nil
	}

	status := Status(str)
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", str)
	}

	*s = status
	return nil
}
