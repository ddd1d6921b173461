package application

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

// mapEngineError converts engine errors to user-friendly messages while
// preserving the underlying sentinel for errors.Is checks upstream.
func mapEngineError(err error) error {
	if err == nil {
		return nil
	}

	var transErr *okr.TransitionError
	if errors.As(err, &transErr) {
		return fmt.Errorf("cannot move %s %s from '%s' to '%s': %w",
			transErr.Kind, transErr.EntityID, transErr.From, transErr.To, err)
	}

	var permErr *okr.PermissionError
	if errors.As(err, &permErr) {
		return fmt.Errorf("not allowed: %s: %w", permErr.Reason, err)
	}

	var tlErr *okr.TimelineError
	if errors.As(err, &tlErr) {
		return fmt.Errorf("dates rejected: %s: %w", tlErr.Reason, err)
	}

	switch {
	case errors.Is(err, okr.ErrMissingBlockerReason):
		return fmt.Errorf("a blocker reason is required when blocking: %w", err)
	case errors.Is(err, okr.ErrInvalidProgressRange):
		return fmt.Errorf("progress must be between 0 and 100: %w", err)
	case errors.Is(err, okr.ErrNotFound):
		return err
	case errors.Is(err, okr.ErrActorNotFound):
		return fmt.Errorf("unknown actor; add them to team.yaml first: %w", err)
	case errors.Is(err, okr.ErrDuplicateTitle):
		return fmt.Errorf("a goal with this title already exists under the objective: %w", err)
	}

	return err
}
