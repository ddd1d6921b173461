package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/felixgeelhaar/cascade/pkg/domain"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

// MemoryRepository is an in-memory record store. It backs tests and
// embedded use; all returned records are copies, so callers can mutate
// them freely before writing back.
type MemoryRepository struct {
	mu         sync.RWMutex
	objectives map[string]okr.Objective
	goals      map[string]okr.Goal
	tasks      map[string]okr.Task
	updates    []okr.TaskUpdate
	events     []domain.Event
}

// NewMemoryRepository builds an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		objectives: make(map[string]okr.Objective),
		goals:      make(map[string]okr.Goal),
		tasks:      make(map[string]okr.Task),
	}
}

func copyObjective(o okr.Objective) *okr.Objective {
	out := o
	out.GroupIDs = append([]string(nil), o.GroupIDs...)
	return &out
}

func copyGoal(g okr.Goal) *okr.Goal {
	out := g
	if g.DueDate != nil {
		due := *g.DueDate
		out.DueDate = &due
	}
	return &out
}

func copyTask(t okr.Task) *okr.Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.CompletedAt != nil {
		done := *t.CompletedAt
		out.CompletedAt = &done
	}
	out.Evidence = append([]okr.EvidenceLink(nil), t.Evidence...)
	return &out
}

// GetObjective implements okr.Repository.
func (r *MemoryRepository) GetObjective(_ context.Context, id string) (*okr.Objective, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.objectives[id]
	if !ok {
		return nil, fmt.Errorf("%w: objective %s", okr.ErrNotFound, id)
	}
	return copyObjective(o), nil
}

// PutObjective implements okr.Repository.
func (r *MemoryRepository) PutObjective(_ context.Context, o *okr.Objective) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objectives[o.ID] = *copyObjective(*o)
	return nil
}

// ListObjectives implements okr.Repository.
func (r *MemoryRepository) ListObjectives(_ context.Context) ([]*okr.Objective, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*okr.Objective, 0, len(r.objectives))
	for _, o := range r.objectives {
		out = append(out, copyObjective(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// GetGoal implements okr.Repository.
func (r *MemoryRepository) GetGoal(_ context.Context, id string) (*okr.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, fmt.Errorf("%w: goal %s", okr.ErrNotFound, id)
	}
	return copyGoal(g), nil
}

// PutGoal implements okr.Repository.
func (r *MemoryRepository) PutGoal(_ context.Context, g *okr.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[g.ID] = *copyGoal(*g)
	return nil
}

// DeleteGoal implements okr.Repository.
func (r *MemoryRepository) DeleteGoal(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[id]; !ok {
		return fmt.Errorf("%w: goal %s", okr.ErrNotFound, id)
	}
	delete(r.goals, id)
	return nil
}

// GetTask implements okr.Repository.
func (r *MemoryRepository) GetTask(_ context.Context, id string) (*okr.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %s", okr.ErrNotFound, id)
	}
	return copyTask(t), nil
}

// PutTask implements okr.Repository.
func (r *MemoryRepository) PutTask(_ context.Context, t *okr.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = *copyTask(*t)
	return nil
}

// DeleteTask implements okr.Repository.
func (r *MemoryRepository) DeleteTask(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("%w: task %s", okr.ErrNotFound, id)
	}
	delete(r.tasks, id)
	return nil
}

// GoalsOf implements okr.Repository.
func (r *MemoryRepository) GoalsOf(_ context.Context, objectiveID string) ([]*okr.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*okr.Goal
	for _, g := range r.goals {
		if g.ObjectiveID == objectiveID {
			out = append(out, copyGoal(g))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// TasksOf implements okr.Repository.
func (r *MemoryRepository) TasksOf(_ context.Context, goalID string) ([]*okr.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*okr.Task
	for _, t := range r.tasks {
		if t.GoalID == goalID {
			out = append(out, copyTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// AppendUpdate implements okr.Repository. The stream is append-only.
func (r *MemoryRepository) AppendUpdate(_ context.Context, u okr.TaskUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
	return nil
}

// UpdatesOf implements okr.Repository.
func (r *MemoryRepository) UpdatesOf(_ context.Context, taskID string) ([]okr.TaskUpdate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []okr.TaskUpdate
	for _, u := range r.updates {
		if u.TaskID == taskID {
			out = append(out, u)
		}
	}
	return out, nil
}

// RecordEvent implements domain.AuditRepository.
func (r *MemoryRepository) RecordEvent(event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// LoadEvents implements domain.AuditRepository.
func (r *MemoryRepository) LoadEvents() ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Event(nil), r.events...), nil
}
