package application

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/domain"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/felixgeelhaar/cascade/pkg/domain/tracker"
)

// GoalService exposes goal use cases over the coordinator.
type GoalService struct {
	coordinator *tracker.Coordinator
	audit       domain.AuditLogger
}

func NewGoalService(coordinator *tracker.Coordinator, audit domain.AuditLogger) *GoalService {
	return &GoalService{coordinator: coordinator, audit: audit}
}

// CreateGoalInput carries the caller-supplied fields for a new goal.
type CreateGoalInput struct {
	ObjectiveID string
	Title       string
	Description string
	AssigneeID  string
	CreatorID   string
	Priority    okr.Priority
	DueDate     *time.Time
}

// Create validates and persists a new goal under its objective.
func (s *GoalService) Create(ctx context.Context, in CreateGoalInput) (*okr.Goal, error) {
	g := okr.NewGoal(in.ObjectiveID, in.Title, in.AssigneeID, in.CreatorID, in.DueDate)
	g.Description = in.Description
	if in.Priority != "" {
		g.Priority = in.Priority
	}

	created, err := s.coordinator.CreateGoal(ctx, g)
	if err != nil {
		return nil, mapEngineError(err)
	}

	if err := s.audit.Log("goal.create", in.CreatorID, map[string]interface{}{
		"goal_id":      created.ID,
		"objective_id": created.ObjectiveID,
		"title":        created.Title,
		"assignee":     created.AssigneeID,
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus applies a user-driven status edge to a goal. The note becomes
// the blocker reason when moving into blocked.
func (s *GoalService) UpdateStatus(ctx context.Context, goalID string, next okr.Status, note, actorID string) (*okr.Goal, error) {
	g, err := s.coordinator.UpdateGoalStatus(ctx, goalID, next, note, actorID)
	if err != nil {
		return nil, mapEngineError(err)
	}

	if err := s.audit.Log("goal.status", actorID, map[string]interface{}{
		"goal_id": g.ID,
		"status":  string(g.Status),
		"note":    note,
	}); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes a goal and its tasks, re-deriving the objective's progress.
func (s *GoalService) Delete(ctx context.Context, goalID, actorID string) error {
	if err := s.coordinator.DeleteGoal(ctx, goalID, actorID); err != nil {
		return mapEngineError(err)
	}
	return s.audit.Log("goal.delete", actorID, map[string]interface{}{
		"goal_id": goalID,
	})
}

// Get returns a goal with overdue detection applied.
func (s *GoalService) Get(ctx context.Context, id string) (*okr.Goal, error) {
	g, err := s.coordinator.GetGoal(ctx, id)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return g, nil
}
