package application

import (
	"context"

	"github.com/felixgeelhaar/cascade/pkg/domain"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/felixgeelhaar/cascade/pkg/domain/tracker"
)

// TrackerService exposes cross-level reads and the idempotent repair
// operation.
type TrackerService struct {
	coordinator *tracker.Coordinator
	audit       domain.AuditLogger
}

func NewTrackerService(coordinator *tracker.Coordinator, audit domain.AuditLogger) *TrackerService {
	return &TrackerService{coordinator: coordinator, audit: audit}
}

// RecomputeAncestors re-derives the progress of the entity's ancestor chain.
// Safe to call repeatedly; an unchanged tree yields unchanged values.
func (s *TrackerService) RecomputeAncestors(ctx context.Context, ref okr.EntityRef, actorID string) error {
	if err := s.coordinator.RecomputeAncestors(ctx, ref); err != nil {
		return mapEngineError(err)
	}
	return s.audit.Log("tracker.recompute", actorID, map[string]interface{}{
		"kind": string(ref.Kind),
		"id":   ref.ID,
	})
}

// ChildrenOf returns the direct children of an objective or goal.
func (s *TrackerService) ChildrenOf(ctx context.Context, ref okr.EntityRef) ([]okr.EntityRef, error) {
	return s.coordinator.ChildrenOf(ctx, ref)
}

// AncestorsOf returns the entity's ancestor chain, nearest first.
func (s *TrackerService) AncestorsOf(ctx context.Context, ref okr.EntityRef) ([]okr.EntityRef, error) {
	return s.coordinator.AncestorsOf(ctx, ref)
}

// GoalsOf returns the goals under an objective, overdue-adjusted.
func (s *TrackerService) GoalsOf(ctx context.Context, objectiveID string) ([]*okr.Goal, error) {
	return s.coordinator.GoalsOf(ctx, objectiveID)
}

// TasksOf returns the tasks under a goal, overdue-adjusted.
func (s *TrackerService) TasksOf(ctx context.Context, goalID string) ([]*okr.Task, error) {
	return s.coordinator.TasksOf(ctx, goalID)
}
