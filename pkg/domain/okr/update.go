package okr

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// TaskUpdate is the immutable audit record of a single task mutation:
// previous and new progress/status, a free-text note, the actor and the
// moment. Records are appended once per mutation and never updated or
// deleted. IDs are ULIDs so the stream sorts lexicographically by creation
// time.
type TaskUpdate struct {
	ID           string    `json:"id" yaml:"id"`
	TaskID       string    `json:"task_id" yaml:"task_id"`
	PrevProgress float64   `json:"prev_progress" yaml:"prev_progress"`
	NewProgress  float64   `json:"new_progress" yaml:"new_progress"`
	PrevStatus   Status    `json:"prev_status" yaml:"prev_status"`
	NewStatus    Status    `json:"new_status" yaml:"new_status"`
	Note         string    `json:"note,omitempty" yaml:"note,omitempty"`
	ActorID      string    `json:"actor_id" yaml:"actor_id"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewTaskUpdate records the before/after of a task write.
func NewTaskUpdate(before, after *Task, note, actorID string) TaskUpdate {
	now := time.Now()
	u := TaskUpdate{
		ID:          ulid.Make().String(),
		TaskID:      after.ID,
		NewProgress: after.Progress,
		NewStatus:   after.Status,
		Note:        note,
		ActorID:     actorID,
		Timestamp:   now,
	}
	if before != nil {
		u.PrevProgress = before.Progress
		u.PrevStatus = before.Status
	} else {
		// Creation: the record starts from the lifecycle origin.
		u.PrevStatus = StatusNotStarted
		u.PrevProgress = 0
	}
	return u
}
