package okr

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EvidenceLink points at proof of work for a task (PR, document, dashboard).
type EvidenceLink struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}

// Task is the leaf unit of work. Its progress is the only directly-entered
// percentage in the hierarchy; everything above is derived.
type Task struct {
	ID            string         `json:"id" yaml:"id"`
	GoalID        string         `json:"goal_id" yaml:"goal_id"`
	Title         string         `json:"title" yaml:"title"`
	Description   string         `json:"description" yaml:"description"`
	AssigneeID    string         `json:"assignee_id" yaml:"assignee_id"`
	CreatorID     string         `json:"creator_id" yaml:"creator_id"`
	Status        Status         `json:"status" yaml:"status"`
	Priority      Priority       `json:"priority" yaml:"priority"`
	DueDate       *time.Time     `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Progress      float64        `json:"progress" yaml:"progress"` // authoritative input, 0-100
	Evidence      []EvidenceLink `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	BlockerReason string         `json:"blocker_reason,omitempty" yaml:"blocker_reason,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" yaml:"updated_at"`
}

// NewTask builds a task in its initial state under the given goal.
func NewTask(goalID, title, assigneeID, creatorID string, due *time.Time) *Task {
	now := time.Now()
	return &Task{
		ID:         uuid.New().String(),
		GoalID:     goalID,
		Title:      title,
		AssigneeID: assigneeID,
		CreatorID:  creatorID,
		Status:     StatusNotStarted,
		Priority:   PriorityMedium,
		DueDate:    due,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Ref returns the tagged reference for this task.
func (t *Task) Ref() EntityRef {
	return TaskRef(t.ID)
}

// Validate checks the task's own fields, including the progress range, the
// blocker-reason invariant (required iff blocked) and evidence link shape.
// The due-date constraint against the parent goal is enforced by the write
// orchestrator.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if t.GoalID == "" {
		return fmt.Errorf("task must reference a parent goal")
	}
	if t.AssigneeID == "" {
		return fmt.Errorf("task assignee is required")
	}
	if t.CreatorID == "" {
		return fmt.Errorf("task creator is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("invalid task status: %s", t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("invalid task priority: %s", t.Priority)
	}
	if err := ValidateProgress(t.Progress); err != nil {
		return err
	}
	if t.Status.IsBlocked() && t.BlockerReason == "" {
		return ErrMissingBlockerReason
	}
	if !t.Status.IsBlocked() && t.BlockerReason != "" {
		return fmt.Errorf("blocker reason set on non-blocked task")
	}
	for _, e := range t.Evidence {
		if e.URL == "" {
			return fmt.Errorf("evidence link requires a url")
		}
	}
	return nil
}
