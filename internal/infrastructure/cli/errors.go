package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known engine errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, okr.ErrIllegalTransition):
		return NewCLIError(
			err.Error(),
			"Run 'cascade tree' to see current statuses and allowed edges",
			err,
		)
	case errors.Is(err, okr.ErrPermissionDenied):
		return NewCLIError(
			err.Error(),
			"Set CASCADE_ACTOR to an actor allowed to edit this entity",
			err,
		)
	case errors.Is(err, okr.ErrTimelineViolation):
		return NewCLIError(
			err.Error(),
			"Child dates must nest inside the parent's date range",
			err,
		)
	case errors.Is(err, okr.ErrMissingBlockerReason):
		return NewCLIError(
			err.Error(),
			"Pass --note with the blocking reason",
			err,
		)
	case errors.Is(err, okr.ErrActorNotFound):
		return NewCLIError(
			err.Error(),
			"Add the actor with 'cascade team add' first",
			err,
		)
	case errors.Is(err, okr.ErrNotFound):
		return NewCLIError(
			err.Error(),
			"Check the id with 'cascade tree'",
			err,
		)
	}

	return err
}
