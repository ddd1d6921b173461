// Package tracker provides the write-orchestrating coordinator over the
// objective / goal / task hierarchy. Every mutation runs the same pipeline:
// edit gate, timeline constraints, status transition table, overdue
// detection, persist, then bottom-up progress aggregation — all under a
// per-objective lock so sibling writes cannot lose updates.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/domain/identity"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

// ActorResolver resolves actor ids against the organization directory.
type ActorResolver interface {
	Resolve(ctx context.Context, id string) (*identity.Actor, error)
}

// StaticResolver resolves against a fixed in-memory directory.
type StaticResolver struct {
	Dir *identity.Directory
}

// Resolve implements ActorResolver.
func (r StaticResolver) Resolve(_ context.Context, id string) (*identity.Actor, error) {
	if r.Dir != nil {
		if a := r.Dir.Find(id); a != nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", okr.ErrActorNotFound, id)
}

// Coordinator applies validated writes and keeps parent progress consistent
// with child progress. It is safe for concurrent use.
type Coordinator struct {
	repo     okr.Repository
	actors   ActorResolver
	detector *okr.OverdueDetector
	locks    *keyedMutex
}

// NewCoordinator builds a coordinator. A nil clock means wall-clock time.
func NewCoordinator(repo okr.Repository, actors ActorResolver, clock okr.Clock) *Coordinator {
	return &Coordinator{
		repo:     repo,
		actors:   actors,
		detector: okr.NewOverdueDetector(clock),
		locks:    newKeyedMutex(),
	}
}

// lockRootForGoal locks the goal's aggregate root and returns the goal as
// re-read under the lock. The load-lock-reload loop guards against the goal
// being re-parented or deleted between the first read and lock acquisition.
func (c *Coordinator) lockRootForGoal(ctx context.Context, goalID string) (*okr.Goal, func(), error) {
	for {
		g, err := c.repo.GetGoal(ctx, goalID)
		if err != nil {
			return nil, nil, err
		}

		unlock := c.locks.Lock(g.ObjectiveID)

		g2, err := c.repo.GetGoal(ctx, goalID)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if g2.ObjectiveID == g.ObjectiveID {
			return g2, unlock, nil
		}
		unlock()
	}
}

// lockRootForTask locks the task's aggregate root and returns the task and
// its parent goal as re-read under the lock.
func (c *Coordinator) lockRootForTask(ctx context.Context, taskID string) (*okr.Task, *okr.Goal, func(), error) {
	for {
		t, err := c.repo.GetTask(ctx, taskID)
		if err != nil {
			return nil, nil, nil, err
		}

		g, unlock, err := c.lockRootForGoal(ctx, t.GoalID)
		if err != nil {
			return nil, nil, nil, err
		}

		t2, err := c.repo.GetTask(ctx, taskID)
		if err != nil {
			unlock()
			return nil, nil, nil, err
		}
		if t2.GoalID == t.GoalID {
			return t2, g, unlock, nil
		}
		unlock()
	}
}

// CreateObjective validates and persists a new objective. Only an actor
// with the administer capability may create one, and the owner must be able
// to own objectives.
func (c *Coordinator) CreateObjective(ctx context.Context, o *okr.Objective) (*okr.Objective, error) {
	creator, err := c.actors.Resolve(ctx, o.CreatorID)
	if err != nil {
		return nil, err
	}
	if !creator.Can(identity.CapAdminister) {
		return nil, &okr.PermissionError{
			EntityID: o.ID, ActorID: o.CreatorID,
			Reason: "creating an objective requires the administer capability",
		}
	}

	owner, err := c.actors.Resolve(ctx, o.OwnerID)
	if err != nil {
		return nil, err
	}
	if !owner.Can(identity.CapOwnObjective) {
		return nil, &okr.PermissionError{
			EntityID: o.ID, ActorID: o.OwnerID,
			Reason: "objective owner must hold the own_objective capability",
		}
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	o.Status, _ = c.detector.Apply(&o.EndDate, o.Status)
	o.UpdatedAt = time.Now()

	unlock := c.locks.Lock(o.ID)
	defer unlock()

	if err := c.repo.PutObjective(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// CreateGoal validates and persists a new goal under its objective, then
// recomputes the objective's derived progress.
func (c *Coordinator) CreateGoal(ctx context.Context, g *okr.Goal) (*okr.Goal, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	creator, err := c.actors.Resolve(ctx, g.CreatorID)
	if err != nil {
		return nil, err
	}
	if !creator.Can(identity.CapCreateGoal) {
		return nil, &okr.PermissionError{
			EntityID: g.ID, ActorID: g.CreatorID,
			Reason: "creating a goal requires the create_goal capability",
		}
	}

	assignee, err := c.actors.Resolve(ctx, g.AssigneeID)
	if err != nil {
		return nil, err
	}
	if assignee.Department != creator.Department {
		return nil, &okr.PermissionError{
			EntityID: g.ID, ActorID: g.CreatorID,
			Reason: "goal assignee and creator must share a department",
		}
	}
	if !creator.IsAdministrator() && assignee.ManagerID != creator.ID {
		return nil, &okr.PermissionError{
			EntityID: g.ID, ActorID: g.CreatorID,
			Reason: "goal assignee must report to the creator",
		}
	}

	unlock := c.locks.Lock(g.ObjectiveID)
	defer unlock()

	obj, err := c.repo.GetObjective(ctx, g.ObjectiveID)
	if err != nil {
		return nil, err
	}

	if g.DueDate != nil {
		if err := okr.ValidateDueWithin(obj.StartDate, obj.EndDate, *g.DueDate); err != nil {
			return nil, err
		}
	}

	siblings, err := c.repo.GoalsOf(ctx, g.ObjectiveID)
	if err != nil {
		return nil, err
	}
	for _, s := range siblings {
		if s.ID != g.ID && s.Title == g.Title {
			return nil, fmt.Errorf("%w: %q", okr.ErrDuplicateTitle, g.Title)
		}
	}

	g.Status, _ = c.detector.Apply(g.DueDate, g.Status)
	g.UpdatedAt = time.Now()

	if err := c.repo.PutGoal(ctx, g); err != nil {
		return nil, err
	}
	if _, err := c.recomputeObjective(ctx, g.ObjectiveID); err != nil {
		return nil, err
	}
	return g, nil
}

// CreateTask validates and persists a new task under its goal, records the
// creation in the task's update stream, and cascades the roll-up.
func (c *Coordinator) CreateTask(ctx context.Context, t *okr.Task) (*okr.Task, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	creator, err := c.actors.Resolve(ctx, t.CreatorID)
	if err != nil {
		return nil, err
	}
	if !creator.Can(identity.CapLogWork) {
		return nil, &okr.PermissionError{
			EntityID: t.ID, ActorID: t.CreatorID,
			Reason: "creating a task requires the log_work capability",
		}
	}

	goal, unlock, err := c.lockRootForGoal(ctx, t.GoalID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Tasks are created by their assignee or by the owning goal's creator.
	if t.CreatorID != t.AssigneeID && t.CreatorID != goal.CreatorID && !creator.IsAdministrator() {
		return nil, &okr.PermissionError{
			EntityID: t.ID, ActorID: t.CreatorID,
			Reason: "tasks are created by their assignee or the goal's creator",
		}
	}

	if _, err := c.actors.Resolve(ctx, t.AssigneeID); err != nil {
		return nil, err
	}

	if t.DueDate != nil && goal.DueDate != nil {
		if okr.DateOnly(*t.DueDate).After(okr.DateOnly(*goal.DueDate)) {
			return nil, &okr.TimelineError{
				Reason:     "task due date is after goal due date",
				ChildStart: okr.DateOnly(*t.DueDate),
				ChildEnd:   okr.DateOnly(*t.DueDate),
				ParentEnd:  okr.DateOnly(*goal.DueDate),
			}
		}
	}

	t.Status, _ = c.detector.Apply(t.DueDate, t.Status)
	t.UpdatedAt = time.Now()

	if err := c.repo.PutTask(ctx, t); err != nil {
		return nil, err
	}
	if err := c.repo.AppendUpdate(ctx, okr.NewTaskUpdate(nil, t, "created", t.CreatorID)); err != nil {
		return nil, err
	}
	if err := c.cascadeFromGoal(ctx, goal.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTaskStatus applies a user-driven status edge to a task. The note is
// mandatory when moving into blocked and becomes the blocker reason.
func (c *Coordinator) UpdateTaskStatus(ctx context.Context, taskID string, next okr.Status, note, actorID string) (*okr.Task, error) {
	actor, err := c.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	t, _, unlock, err := c.lockRootForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	assignee, _ := c.actors.Resolve(ctx, t.AssigneeID)
	if err := okr.CanEdit(t.Ref(), t.Status, t.AssigneeID, actor, assignee); err != nil {
		return nil, err
	}

	if err := okr.ValidateTransition(okr.KindTask, t.Status, next); err != nil {
		return nil, err
	}
	if next == okr.StatusBlocked && note == "" {
		return nil, okr.ErrMissingBlockerReason
	}

	before := *t
	t.Status = next
	switch {
	case next == okr.StatusBlocked:
		t.BlockerReason = note
	case before.Status == okr.StatusBlocked:
		t.BlockerReason = ""
	}
	if next == okr.StatusCompleted && before.Status != okr.StatusCompleted {
		now := time.Now()
		t.CompletedAt = &now
	}

	t.Status, _ = c.detector.Apply(t.DueDate, t.Status)
	t.UpdatedAt = time.Now()

	if err := c.repo.PutTask(ctx, t); err != nil {
		return nil, err
	}
	if err := c.repo.AppendUpdate(ctx, okr.NewTaskUpdate(&before, t, note, actorID)); err != nil {
		return nil, err
	}
	if err := c.cascadeFromGoal(ctx, t.GoalID); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTaskProgress sets a task's authoritative progress percentage and
// optionally appends evidence, then cascades the roll-up.
func (c *Coordinator) UpdateTaskProgress(ctx context.Context, taskID string, percent float64, evidence []okr.EvidenceLink, note, actorID string) (*okr.Task, error) {
	if err := okr.ValidateProgress(percent); err != nil {
		return nil, err
	}

	actor, err := c.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	t, _, unlock, err := c.lockRootForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	assignee, _ := c.actors.Resolve(ctx, t.AssigneeID)
	if err := okr.CanEdit(t.Ref(), t.Status, t.AssigneeID, actor, assignee); err != nil {
		return nil, err
	}

	for _, e := range evidence {
		if e.URL == "" {
			return nil, fmt.Errorf("evidence link requires a url")
		}
	}

	before := *t
	t.Progress = okr.RoundProgress(percent)
	t.Evidence = append(t.Evidence, evidence...)
	t.Status, _ = c.detector.Apply(t.DueDate, t.Status)
	t.UpdatedAt = time.Now()

	if err := c.repo.PutTask(ctx, t); err != nil {
		return nil, err
	}
	if err := c.repo.AppendUpdate(ctx, okr.NewTaskUpdate(&before, t, note, actorID)); err != nil {
		return nil, err
	}
	if err := c.cascadeFromGoal(ctx, t.GoalID); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateGoalStatus applies a user-driven status edge to a goal. Goals keep
// no blocker field; the reason lives in the audit trail, but it is still
// required for the edge into blocked.
func (c *Coordinator) UpdateGoalStatus(ctx context.Context, goalID string, next okr.Status, note, actorID string) (*okr.Goal, error) {
	actor, err := c.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	g, unlock, err := c.lockRootForGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	assignee, _ := c.actors.Resolve(ctx, g.AssigneeID)
	if err := okr.CanEdit(g.Ref(), g.Status, g.AssigneeID, actor, assignee); err != nil {
		return nil, err
	}
	if err := okr.ValidateTransition(okr.KindGoal, g.Status, next); err != nil {
		return nil, err
	}
	if next == okr.StatusBlocked && note == "" {
		return nil, okr.ErrMissingBlockerReason
	}

	g.Status = next
	g.Status, _ = c.detector.Apply(g.DueDate, g.Status)
	g.UpdatedAt = time.Now()

	if err := c.repo.PutGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateObjectiveStatus applies a user-driven status edge to an objective.
func (c *Coordinator) UpdateObjectiveStatus(ctx context.Context, objectiveID string, next okr.Status, note, actorID string) (*okr.Objective, error) {
	actor, err := c.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.Lock(objectiveID)
	defer unlock()

	o, err := c.repo.GetObjective(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	owner, _ := c.actors.Resolve(ctx, o.OwnerID)
	if err := okr.CanEdit(o.Ref(), o.Status, o.OwnerID, actor, owner); err != nil {
		return nil, err
	}
	if err := okr.ValidateTransition(okr.KindObjective, o.Status, next); err != nil {
		return nil, err
	}

	o.Status = next
	o.Status, _ = c.detector.Apply(&o.EndDate, o.Status)
	o.UpdatedAt = time.Now()

	if err := c.repo.PutObjective(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteTask removes a task and re-derives the ancestors' progress.
func (c *Coordinator) DeleteTask(ctx context.Context, taskID, actorID string) error {
	actor, err := c.actors.Resolve(ctx, actorID)
	if err != nil {
		return err
	}

	t, _, unlock, err := c.lockRootForTask(ctx, taskID)
	if err != nil {
		return err
	}
	defer unlock()

	assignee, _ := c.actors.Resolve(ctx, t.AssigneeID)
	if err := okr.CanEdit(t.Ref(), t.Status, t.AssigneeID, actor, assignee); err != nil {
		return err
	}

	if err := c.repo.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	return c.cascadeFromGoal(ctx, t.GoalID)
}

// DeleteGoal removes a goal together with its tasks and re-derives the
// objective's progress. Runs under the root lock, so a concurrent task write
// cannot leave the objective referencing a stale child set.
func (c *Coordinator) DeleteGoal(ctx context.Context, goalID, actorID string) error {
	actor, err := c.actors.Resolve(ctx, actorID)
	if err != nil {
		return err
	}

	g, unlock, err := c.lockRootForGoal(ctx, goalID)
	if err != nil {
		return err
	}
	defer unlock()

	assignee, _ := c.actors.Resolve(ctx, g.AssigneeID)
	if err := okr.CanEdit(g.Ref(), g.Status, g.AssigneeID, actor, assignee); err != nil {
		return err
	}

	tasks, err := c.repo.TasksOf(ctx, goalID)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := c.repo.DeleteTask(ctx, t.ID); err != nil {
			return err
		}
	}
	if err := c.repo.DeleteGoal(ctx, goalID); err != nil {
		return err
	}
	_, err = c.recomputeObjective(ctx, g.ObjectiveID)
	return err
}
