package okr

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Goal is the mid-level unit assigned to an individual, scoped inside one
// objective's timeline. Progress is derived from its tasks.
type Goal struct {
	ID          string     `json:"id" yaml:"id"`
	ObjectiveID string     `json:"objective_id" yaml:"objective_id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	AssigneeID  string     `json:"assignee_id" yaml:"assignee_id"`
	CreatorID   string     `json:"creator_id" yaml:"creator_id"` // must hold CapCreateGoal
	Status      Status     `json:"status" yaml:"status"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Progress    float64    `json:"progress" yaml:"progress"` // derived
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
}

// NewGoal builds a goal in its initial state under the given objective.
func NewGoal(objectiveID, title, assigneeID, creatorID string, due *time.Time) *Goal {
	now := time.Now()
	return &Goal{
		ID:          uuid.New().String(),
		ObjectiveID: objectiveID,
		Title:       title,
		AssigneeID:  assigneeID,
		CreatorID:   creatorID,
		Status:      StatusNotStarted,
		Priority:    PriorityMedium,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Ref returns the tagged reference for this goal.
func (g *Goal) Ref() EntityRef {
	return GoalRef(g.ID)
}

// Validate checks the goal's own fields. Containment of the due date inside
// the parent objective, title uniqueness and reporting-line checks need the
// parent and the directory and are enforced by the write orchestrator.
func (g *Goal) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("goal title is required")
	}
	if g.ObjectiveID == "" {
		return fmt.Errorf("goal must reference a parent objective")
	}
	if g.AssigneeID == "" {
		return fmt.Errorf("goal assignee is required")
	}
	if g.CreatorID == "" {
		return fmt.Errorf("goal creator is required")
	}
	if !g.Status.IsValid() {
		return fmt.Errorf("invalid goal status: %s", g.Status)
	}
	if !g.Priority.IsValid() {
		return fmt.Errorf("invalid goal priority: %s", g.Priority)
	}
	return nil
}
