package okr

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/cascade/pkg/domain/identity"
)

func TestCanEdit(t *testing.T) {
	admin := &identity.Actor{ID: "admin", Role: identity.RoleAdministrator}
	manager := &identity.Actor{ID: "mgr", Role: identity.RoleCoordinator}
	assignee := &identity.Actor{ID: "dev", Role: identity.RoleIndividual, ManagerID: "mgr"}
	stranger := &identity.Actor{ID: "other", Role: identity.RoleIndividual}

	ref := TaskRef("t1")

	tests := []struct {
		name     string
		status   Status
		actor    *identity.Actor
		assignee *identity.Actor
		allowed  bool
	}{
		{"assignee edits own active task", StatusInProgress, assignee, assignee, true},
		{"manager edits report's task", StatusInProgress, manager, assignee, true},
		{"admin edits anything", StatusInProgress, admin, assignee, true},
		{"stranger denied", StatusInProgress, stranger, assignee, false},
		{"nil actor denied", StatusInProgress, nil, assignee, false},

		// Locked statuses need the override capability regardless of ownership.
		{"assignee denied on completed", StatusCompleted, assignee, assignee, false},
		{"assignee denied on cancelled", StatusCancelled, assignee, assignee, false},
		{"assignee denied on overdue", StatusOverdue, assignee, assignee, false},
		{"manager denied on locked", StatusCompleted, manager, assignee, false},
		{"admin overrides locked", StatusCompleted, admin, assignee, true},
		{"admin overrides overdue", StatusOverdue, admin, assignee, true},

		// Missing directory entry for the assignee: manager check cannot match.
		{"manager denied without assignee record", StatusInProgress, manager, nil, false},
		{"admin fine without assignee record", StatusInProgress, admin, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanEdit(ref, tt.status, "dev", tt.actor, tt.assignee)
			if tt.allowed && err != nil {
				t.Errorf("expected edit allowed, got %v", err)
			}
			if !tt.allowed {
				if err == nil {
					t.Fatal("expected permission error")
				}
				if !errors.Is(err, ErrPermissionDenied) {
					t.Errorf("expected ErrPermissionDenied, got %v", err)
				}
			}
		})
	}
}

func TestCanEdit_ErrorDetails(t *testing.T) {
	actor := &identity.Actor{ID: "other", Role: identity.RoleIndividual}
	err := CanEdit(TaskRef("t9"), StatusInProgress, "dev", actor, nil)

	var pe *PermissionError
	if !errors.As(err, &pe) {
		t.Fatal("expected *PermissionError")
	}
	if pe.EntityID != "t9" || pe.ActorID != "other" {
		t.Errorf("PermissionError = %+v, want entity t9, actor other", pe)
	}
}
