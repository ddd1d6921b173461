package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

// cascadeFromGoal walks upward after a task write: recompute the owning
// goal, then the goal's objective — each ancestor exactly once. Aggregation
// re-reads the current children every time; no deltas, no cached values.
func (c *Coordinator) cascadeFromGoal(ctx context.Context, goalID string) error {
	g, err := c.recomputeGoal(ctx, goalID)
	if err != nil {
		return err
	}
	_, err = c.recomputeObjective(ctx, g.ObjectiveID)
	return err
}

// recomputeGoal re-derives a goal's progress from its tasks and applies
// overdue detection to the goal itself. Child records are never mutated.
func (c *Coordinator) recomputeGoal(ctx context.Context, goalID string) (*okr.Goal, error) {
	g, err := c.repo.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	tasks, err := c.repo.TasksOf(ctx, goalID)
	if err != nil {
		return nil, err
	}

	progress := make([]float64, 0, len(tasks))
	for _, t := range tasks {
		progress = append(progress, t.Progress)
	}

	changed := false
	if mean, ok := okr.Rollup(progress); ok && mean != g.Progress {
		g.Progress = mean
		changed = true
	}
	if next, flipped := c.detector.Apply(g.DueDate, g.Status); flipped {
		g.Status = next
		changed = true
	}

	if changed {
		g.UpdatedAt = time.Now()
		if err := c.repo.PutGoal(ctx, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// recomputeObjective re-derives an objective's progress from its goals.
func (c *Coordinator) recomputeObjective(ctx context.Context, objectiveID string) (*okr.Objective, error) {
	o, err := c.repo.GetObjective(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	goals, err := c.repo.GoalsOf(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	progress := make([]float64, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, g.Progress)
	}

	changed := false
	if mean, ok := okr.Rollup(progress); ok && mean != o.Progress {
		o.Progress = mean
		changed = true
	}
	if next, flipped := c.detector.Apply(&o.EndDate, o.Status); flipped {
		o.Status = next
		changed = true
	}

	if changed {
		o.UpdatedAt = time.Now()
		if err := c.repo.PutObjective(ctx, o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// RecomputeAncestors re-derives the progress of the entity's ancestor chain.
// It is idempotent and callable for repair: running it twice on an unchanged
// tree produces identical values. Overdue flips discovered along the way are
// persisted, which is how entities "report overdue on the next recompute"
// without an explicit status call.
func (c *Coordinator) RecomputeAncestors(ctx context.Context, ref okr.EntityRef) error {
	switch ref.Kind {
	case okr.KindTask:
		t, _, unlock, err := c.lockRootForTask(ctx, ref.ID)
		if err != nil {
			return err
		}
		defer unlock()

		if next, flipped := c.detector.Apply(t.DueDate, t.Status); flipped {
			before := *t
			t.Status = next
			t.UpdatedAt = time.Now()
			if err := c.repo.PutTask(ctx, t); err != nil {
				return err
			}
			if err := c.repo.AppendUpdate(ctx, okr.NewTaskUpdate(&before, t, "overdue", "system")); err != nil {
				return err
			}
		}
		return c.cascadeFromGoal(ctx, t.GoalID)

	case okr.KindGoal:
		g, unlock, err := c.lockRootForGoal(ctx, ref.ID)
		if err != nil {
			return err
		}
		defer unlock()
		return c.cascadeFromGoal(ctx, g.ID)

	case okr.KindObjective:
		unlock := c.locks.Lock(ref.ID)
		defer unlock()

		goals, err := c.repo.GoalsOf(ctx, ref.ID)
		if err != nil {
			return err
		}
		for _, g := range goals {
			if _, err := c.recomputeGoal(ctx, g.ID); err != nil {
				return err
			}
		}
		_, err = c.recomputeObjective(ctx, ref.ID)
		return err

	default:
		return fmt.Errorf("unknown entity kind: %s", ref.Kind)
	}
}
