package application

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/domain"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/felixgeelhaar/cascade/pkg/domain/tracker"
)

// TaskService exposes task use cases over the coordinator. Tasks are the
// only level with directly-entered progress; everything above is derived.
type TaskService struct {
	coordinator *tracker.Coordinator
	audit       domain.AuditLogger
}

func NewTaskService(coordinator *tracker.Coordinator, audit domain.AuditLogger) *TaskService {
	return &TaskService{coordinator: coordinator, audit: audit}
}

// CreateTaskInput carries the caller-supplied fields for a new task.
type CreateTaskInput struct {
	GoalID      string
	Title       string
	Description string
	AssigneeID  string
	CreatorID   string
	Priority    okr.Priority
	DueDate     *time.Time
}

// Create validates and persists a new task under its goal, cascading the
// roll-up to the goal and its objective.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*okr.Task, error) {
	t := okr.NewTask(in.GoalID, in.Title, in.AssigneeID, in.CreatorID, in.DueDate)
	t.Description = in.Description
	if in.Priority != "" {
		t.Priority = in.Priority
	}

	created, err := s.coordinator.CreateTask(ctx, t)
	if err != nil {
		return nil, mapEngineError(err)
	}

	if err := s.audit.Log("task.create", in.CreatorID, map[string]interface{}{
		"task_id":  created.ID,
		"goal_id":  created.GoalID,
		"title":    created.Title,
		"assignee": created.AssigneeID,
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus applies a user-driven status edge by target status. The note
// becomes the blocker reason when moving into blocked.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID string, next okr.Status, note, actorID string) (*okr.Task, error) {
	t, err := s.coordinator.UpdateTaskStatus(ctx, taskID, next, note, actorID)
	if err != nil {
		return nil, mapEngineError(err)
	}

	if err := s.audit.Log("task.status", actorID, map[string]interface{}{
		"task_id": t.ID,
		"status":  string(t.Status),
		"note":    note,
	}); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateStatusEvent applies a lifecycle event (start, block, complete,
// cancel, resume) by running the task state machine from the task's current
// status and handing the resolved target to the coordinator.
func (s *TaskService) UpdateStatusEvent(ctx context.Context, taskID, event, note, actorID string) (*okr.Task, error) {
	current, err := s.coordinator.GetTask(ctx, taskID)
	if err != nil {
		return nil, mapEngineError(err)
	}

	fsm, err := okr.NewTaskStateMachine(current.Status, taskID, nil)
	if err != nil {
		return nil, err
	}
	if err := fsm.Transition(event); err != nil {
		return nil, err
	}

	return s.UpdateStatus(ctx, taskID, fsm.Current(), note, actorID)
}

// UpdateProgress sets a task's authoritative progress percentage.
func (s *TaskService) UpdateProgress(ctx context.Context, taskID string, percent float64, evidence []okr.EvidenceLink, note, actorID string) (*okr.Task, error) {
	t, err := s.coordinator.UpdateTaskProgress(ctx, taskID, percent, evidence, note, actorID)
	if err != nil {
		return nil, mapEngineError(err)
	}

	if err := s.audit.Log("task.progress", actorID, map[string]interface{}{
		"task_id":  t.ID,
		"progress": t.Progress,
		"note":     note,
	}); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a task, re-deriving the ancestors' progress.
func (s *TaskService) Delete(ctx context.Context, taskID, actorID string) error {
	if err := s.coordinator.DeleteTask(ctx, taskID, actorID); err != nil {
		return mapEngineError(err)
	}
	return s.audit.Log("task.delete", actorID, map[string]interface{}{
		"task_id": taskID,
	})
}

// Get returns a task with overdue detection applied.
func (s *TaskService) Get(ctx context.Context, id string) (*okr.Task, error) {
	t, err := s.coordinator.GetTask(ctx, id)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return t, nil
}

// History returns a task's immutable mutation records, oldest first.
func (s *TaskService) History(ctx context.Context, taskID string) ([]okr.TaskUpdate, error) {
	return s.coordinator.UpdatesOf(ctx, taskID)
}
