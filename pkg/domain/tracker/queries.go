package tracker

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

// Read paths report overdue without persisting it: a task whose due date
// passed shows overdue on the next read even before any write lands. The
// flip is durably recorded by the next write or RecomputeAncestors.

// GetObjective returns the objective with overdue detection applied.
func (c *Coordinator) GetObjective(ctx context.Context, id string) (*okr.Objective, error) {
	o, err := c.repo.GetObjective(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status, _ = c.detector.Apply(&o.EndDate, o.Status)
	return o, nil
}

// GetGoal returns the goal with overdue detection applied.
func (c *Coordinator) GetGoal(ctx context.Context, id string) (*okr.Goal, error) {
	g, err := c.repo.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Status, _ = c.detector.Apply(g.DueDate, g.Status)
	return g, nil
}

// GetTask returns the task with overdue detection applied.
func (c *Coordinator) GetTask(ctx context.Context, id string) (*okr.Task, error) {
	t, err := c.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Status, _ = c.detector.Apply(t.DueDate, t.Status)
	return t, nil
}

// ChildrenOf returns the direct children of an objective or goal as tagged
// references. Tasks have no children.
func (c *Coordinator) ChildrenOf(ctx context.Context, ref okr.EntityRef) ([]okr.EntityRef, error) {
	switch ref.Kind {
	case okr.KindObjective:
		goals, err := c.repo.GoalsOf(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		refs := make([]okr.EntityRef, 0, len(goals))
		for _, g := range goals {
			refs = append(refs, g.Ref())
		}
		return refs, nil

	case okr.KindGoal:
		tasks, err := c.repo.TasksOf(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		refs := make([]okr.EntityRef, 0, len(tasks))
		for _, t := range tasks {
			refs = append(refs, t.Ref())
		}
		return refs, nil

	case okr.KindTask:
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown entity kind: %s", ref.Kind)
	}
}

// AncestorsOf returns the entity's ancestor chain, nearest first.
func (c *Coordinator) AncestorsOf(ctx context.Context, ref okr.EntityRef) ([]okr.EntityRef, error) {
	switch ref.Kind {
	case okr.KindTask:
		t, err := c.repo.GetTask(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		g, err := c.repo.GetGoal(ctx, t.GoalID)
		if err != nil {
			return nil, err
		}
		return []okr.EntityRef{g.Ref(), okr.ObjectiveRef(g.ObjectiveID)}, nil

	case okr.KindGoal:
		g, err := c.repo.GetGoal(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return []okr.EntityRef{okr.ObjectiveRef(g.ObjectiveID)}, nil

	case okr.KindObjective:
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown entity kind: %s", ref.Kind)
	}
}

// GoalsOf returns the goals under an objective, overdue-adjusted.
func (c *Coordinator) GoalsOf(ctx context.Context, objectiveID string) ([]*okr.Goal, error) {
	goals, err := c.repo.GoalsOf(ctx, objectiveID)
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		g.Status, _ = c.detector.Apply(g.DueDate, g.Status)
	}
	return goals, nil
}

// TasksOf returns the tasks under a goal, overdue-adjusted.
func (c *Coordinator) TasksOf(ctx context.Context, goalID string) ([]*okr.Task, error) {
	tasks, err := c.repo.TasksOf(ctx, goalID)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		t.Status, _ = c.detector.Apply(t.DueDate, t.Status)
	}
	return tasks, nil
}

// UpdatesOf returns a task's immutable mutation history, oldest first.
func (c *Coordinator) UpdatesOf(ctx context.Context, taskID string) ([]okr.TaskUpdate, error) {
	return c.repo.UpdatesOf(ctx, taskID)
}
