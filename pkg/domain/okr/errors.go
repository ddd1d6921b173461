package okr

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors raised at the write boundary. The engine never silently
// corrects rejected input; the single system-driven exception is the
// overdue flip performed by the OverdueDetector.
var (
	// ErrTimelineViolation indicates date containment or ordering is broken.
	ErrTimelineViolation = errors.New("timeline violation")

	// ErrIllegalTransition indicates the requested status edge is not permitted.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrPermissionDenied indicates an edit-gate or ownership failure.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrMissingBlockerReason indicates a transition into blocked without a reason.
	ErrMissingBlockerReason = errors.New("blocker reason required")

	// ErrInvalidProgressRange indicates a progress value outside 0-100.
	ErrInvalidProgressRange = errors.New("progress must be between 0 and 100")

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrActorNotFound indicates the acting user is unknown to the directory.
	ErrActorNotFound = errors.New("actor not found")

	// ErrDuplicateTitle indicates a goal title already exists under the parent.
	ErrDuplicateTitle = errors.New("title already in use within parent scope")
)

// TimelineError provides details about a broken timeline constraint.
type TimelineError struct {
	Reason      string
	ParentStart time.Time
	ParentEnd   time.Time
	ChildStart  time.Time
	ChildEnd    time.Time
}

func (e *TimelineError) Error() string {
	return "timeline violation: " + e.Reason
}

// Is allows errors.Is to match against ErrTimelineViolation.
func (e *TimelineError) Is(target error) bool {
	return target == ErrTimelineViolation
}

// TransitionError provides details about a rejected status edge.
type TransitionError struct {
	Kind     EntityKind
	EntityID string
	From     Status
	To       Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition %s %s from %s to %s", e.Kind, e.EntityID, e.From, e.To)
}

// Is allows errors.Is to match against ErrIllegalTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// PermissionError provides details about a denied mutation.
type PermissionError struct {
	EntityID string
	ActorID  string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied for %s on %s: %s", e.ActorID, e.EntityID, e.Reason)
}

// Is allows errors.Is to match against ErrPermissionDenied.
func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}
