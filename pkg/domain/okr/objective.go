package okr

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Objective is the top-level, coordinator-owned, dated unit of intent.
// Its progress is always derived from its goals; it is never set directly.
type Objective struct {
	ID            string       `json:"id" yaml:"id"`
	Title         string       `json:"title" yaml:"title"`
	Description   string       `json:"description" yaml:"description"`
	OwnerID       string       `json:"owner_id" yaml:"owner_id"`     // must hold CapOwnObjective
	CreatorID     string       `json:"creator_id" yaml:"creator_id"` // must hold CapAdminister
	GroupIDs      []string     `json:"group_ids" yaml:"group_ids"`
	Status        Status       `json:"status" yaml:"status"`
	Priority      Priority     `json:"priority" yaml:"priority"`
	Timeline      TimelineKind `json:"timeline" yaml:"timeline"`
	StartDate     time.Time    `json:"start_date" yaml:"start_date"`
	EndDate       time.Time    `json:"end_date" yaml:"end_date"`
	SuccessMetric string       `json:"success_metric" yaml:"success_metric"`
	Progress      float64      `json:"progress" yaml:"progress"` // derived
	CreatedAt     time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" yaml:"updated_at"`
}

// NewObjective builds an objective in its initial state.
func NewObjective(title, ownerID, creatorID string, groupIDs []string, kind TimelineKind, start, end time.Time) *Objective {
	now := time.Now()
	return &Objective{
		ID:        uuid.New().String(),
		Title:     title,
		OwnerID:   ownerID,
		CreatorID: creatorID,
		GroupIDs:  groupIDs,
		Status:    StatusNotStarted,
		Priority:  PriorityMedium,
		Timeline:  kind,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Ref returns the tagged reference for this objective.
func (o *Objective) Ref() EntityRef {
	return ObjectiveRef(o.ID)
}

// Validate checks the objective's own fields: required values, a valid
// lifecycle/priority/timeline value, and a date span matching the timeline
// kind. Role checks against owner and creator belong to the write
// orchestrator, which can resolve actors.
func (o *Objective) Validate() error {
	if o.Title == "" {
		return fmt.Errorf("objective title is required")
	}
	if o.OwnerID == "" {
		return fmt.Errorf("objective owner is required")
	}
	if o.CreatorID == "" {
		return fmt.Errorf("objective creator is required")
	}
	if len(o.GroupIDs) == 0 {
		return fmt.Errorf("objective must belong to at least one group")
	}
	if !o.Status.IsValid() {
		return fmt.Errorf("invalid objective status: %s", o.Status)
	}
	if !o.Priority.IsValid() {
		return fmt.Errorf("invalid objective priority: %s", o.Priority)
	}
	if !o.Timeline.IsValid() {
		return fmt.Errorf("invalid timeline kind: %s", o.Timeline)
	}
	return ValidateSpan(o.Timeline, o.StartDate, o.EndDate)
}
