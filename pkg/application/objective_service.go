package application

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/domain"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/felixgeelhaar/cascade/pkg/domain/tracker"
)

// ObjectiveService exposes objective use cases over the coordinator.
type ObjectiveService struct {
	coordinator *tracker.Coordinator
	audit       domain.AuditLogger
}

func NewObjectiveService(coordinator *tracker.Coordinator, audit domain.AuditLogger) *ObjectiveService {
	return &ObjectiveService{coordinator: coordinator, audit: audit}
}

// CreateObjectiveInput carries the caller-supplied fields for a new objective.
type CreateObjectiveInput struct {
	Title         string
	Description   string
	OwnerID       string
	CreatorID     string
	GroupIDs      []string
	Priority      okr.Priority
	Timeline      okr.TimelineKind
	StartDate     time.Time
	EndDate       time.Time
	SuccessMetric string
}

// Create validates and persists a new objective.
func (s *ObjectiveService) Create(ctx context.Context, in CreateObjectiveInput) (*okr.Objective, error) {
	o := okr.NewObjective(in.Title, in.OwnerID, in.CreatorID, in.GroupIDs, in.Timeline, in.StartDate, in.EndDate)
	o.Description = in.Description
	o.SuccessMetric = in.SuccessMetric
	if in.Priority != "" {
		o.Priority = in.Priority
	}

	created, err := s.coordinator.CreateObjective(ctx, o)
	if err != nil {
		return nil, mapEngineError(err)
	}

	if err := s.audit.Log("objective.create", in.CreatorID, map[string]interface{}{
		"objective_id": created.ID,
		"title":        created.Title,
		"timeline":     string(created.Timeline),
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus applies a user-driven status edge to an objective.
func (s *ObjectiveService) UpdateStatus(ctx context.Context, objectiveID string, next okr.Status, note, actorID string) (*okr.Objective, error) {
	o, err := s.coordinator.UpdateObjectiveStatus(ctx, objectiveID, next, note, actorID)
	if err != nil {
		return nil, mapEngineError(err)
	}

	if err := s.audit.Log("objective.status", actorID, map[string]interface{}{
		"objective_id": o.ID,
		"status":       string(o.Status),
		"note":         note,
	}); err != nil {
		return nil, err
	}
	return o, nil
}

// Get returns an objective with overdue detection applied.
func (s *ObjectiveService) Get(ctx context.Context, id string) (*okr.Objective, error) {
	o, err := s.coordinator.GetObjective(ctx, id)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return o, nil
}
