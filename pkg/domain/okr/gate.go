package okr

import "github.com/felixgeelhaar/cascade/pkg/domain/identity"

// CanEdit is the edit permission gate, enforced at the write boundary before
// the timeline and status validators run.
//
// Entities in a locked status (completed, cancelled, overdue) may only be
// edited by actors holding CapOverrideLocked. Otherwise ownership applies:
// the actor must be the entity's assignee/owner, the assignee's manager, or
// an administrator. The assignee record may be nil when the directory has no
// entry for it; the manager check then cannot match.
func CanEdit(entity EntityRef, status Status, assigneeID string, actor, assignee *identity.Actor) error {
	if actor == nil {
		return &PermissionError{EntityID: entity.ID, Reason: "unknown actor"}
	}

	if status.IsLocked() && !actor.Can(identity.CapOverrideLocked) {
		return &PermissionError{
			EntityID: entity.ID,
			ActorID:  actor.ID,
			Reason:   "status '" + string(status) + "' locks the entity",
		}
	}

	if actor.IsAdministrator() {
		return nil
	}
	if actor.ID == assigneeID {
		return nil
	}
	if assignee != nil && assignee.ManagerID == actor.ID {
		return nil
	}

	return &PermissionError{
		EntityID: entity.ID,
		ActorID:  actor.ID,
		Reason:   "actor is not the assignee, their manager, or an administrator",
	}
}
