package okr

import "context"

// Repository is the durable record store the engine consumes: get/put by id
// and read-children-of-parent, plus the append-only TaskUpdate stream. The
// engine assumes nothing else of its persistence collaborator.
type Repository interface {
	GetObjective(ctx context.Context, id string) (*Objective, error)
	PutObjective(ctx context.Context, o *Objective) error
	ListObjectives(ctx context.Context) ([]*Objective, error)

	GetGoal(ctx context.Context, id string) (*Goal, error)
	PutGoal(ctx context.Context, g *Goal) error
	DeleteGoal(ctx context.Context, id string) error

	GetTask(ctx context.Context, id string) (*Task, error)
	PutTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, id string) error

	// GoalsOf returns the direct children of an objective.
	GoalsOf(ctx context.Context, objectiveID string) ([]*Goal, error)
	// TasksOf returns the direct children of a goal.
	TasksOf(ctx context.Context, goalID string) ([]*Task, error)

	// AppendUpdate records a task mutation; the stream is append-only.
	AppendUpdate(ctx context.Context, u TaskUpdate) error
	// UpdatesOf returns the recorded mutations of a task, oldest first.
	UpdatesOf(ctx context.Context, taskID string) ([]TaskUpdate, error)
}
