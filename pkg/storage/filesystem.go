package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"gopkg.in/yaml.v3"
)

const CascadeDir = ".cascade"
const ObjectivesFile = "objectives.yaml"
const GoalsFile = "goals.yaml"
const TasksFile = "tasks.yaml"
const UpdatesFile = "updates.jsonl"
const EventsFile = "events.jsonl"
const TeamFile = "team.yaml"

// FilesystemRepository persists the hierarchy under <root>/.cascade.
// It is the reference durable record store: get/put by id and
// read-children-of-parent, nothing more.
type FilesystemRepository struct {
	root        string
	mu          sync.Mutex
	retryConfig retry.Config
}

// NewFilesystemRepository builds a repository rooted at the given workspace.
func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .cascade directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, CascadeDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

// Initialize creates the .cascade directory.
func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, CascadeDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .cascade directory: %w", err)
	}
	return nil
}

// IsInitialized reports whether the workspace has been initialized.
func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, CascadeDir))
	return err == nil
}

type objectivesDoc struct {
	Objectives []*okr.Objective `yaml:"objectives"`
}

type goalsDoc struct {
	Goals []*okr.Goal `yaml:"goals"`
}

type tasksDoc struct {
	Tasks []*okr.Task `yaml:"tasks"`
}

// loadYAML reads and unmarshals a workspace file with retry; a missing file
// is an empty store, not an error.
func (r *FilesystemRepository) loadYAML(filename string, out interface{}) error {
	retryer := retry.New[struct{}](r.retryConfig)

	_, err := retryer.Do(context.Background(), func(ctx context.Context) (struct{}, error) {
		path, err := r.ResolvePath(filename)
		if err != nil {
			return struct{}{}, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return struct{}{}, nil
			}
			return struct{}{}, fmt.Errorf("failed to read %s: %w", filename, err)
		}

		if err := yaml.Unmarshal(data, out); err != nil {
			return struct{}{}, fmt.Errorf("failed to unmarshal %s: %w", filename, err)
		}
		return struct{}{}, nil
	})
	return err
}

func (r *FilesystemRepository) saveYAML(filename string, doc interface{}) error {
	path, err := r.ResolvePath(filename)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}

	// G306: Use 0600 for files
	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) loadObjectives() ([]*okr.Objective, error) {
	var doc objectivesDoc
	if err := r.loadYAML(ObjectivesFile, &doc); err != nil {
		return nil, err
	}
	return doc.Objectives, nil
}

func (r *FilesystemRepository) loadGoals() ([]*okr.Goal, error) {
	var doc goalsDoc
	if err := r.loadYAML(GoalsFile, &doc); err != nil {
		return nil, err
	}
	return doc.Goals, nil
}

func (r *FilesystemRepository) loadTasks() ([]*okr.Task, error) {
	var doc tasksDoc
	if err := r.loadYAML(TasksFile, &doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// GetObjective implements okr.Repository.
func (r *FilesystemRepository) GetObjective(_ context.Context, id string) (*okr.Objective, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	objectives, err := r.loadObjectives()
	if err != nil {
		return nil, err
	}
	for _, o := range objectives {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: objective %s", okr.ErrNotFound, id)
}

// PutObjective implements okr.Repository.
func (r *FilesystemRepository) PutObjective(_ context.Context, o *okr.Objective) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	objectives, err := r.loadObjectives()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range objectives {
		if existing.ID == o.ID {
			objectives[i] = o
			replaced = true
			break
		}
	}
	if !replaced {
		objectives = append(objectives, o)
	}
	return r.saveYAML(ObjectivesFile, objectivesDoc{Objectives: objectives})
}

// ListObjectives implements okr.Repository.
func (r *FilesystemRepository) ListObjectives(_ context.Context) ([]*okr.Objective, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	objectives, err := r.loadObjectives()
	if err != nil {
		return nil, err
	}
	sort.Slice(objectives, func(i, j int) bool {
		return objectives[i].CreatedAt.Before(objectives[j].CreatedAt)
	})
	return objectives, nil
}

// GetGoal implements okr.Repository.
func (r *FilesystemRepository) GetGoal(_ context.Context, id string) (*okr.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	goals, err := r.loadGoals()
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: goal %s", okr.ErrNotFound, id)
}

// PutGoal implements okr.Repository.
func (r *FilesystemRepository) PutGoal(_ context.Context, g *okr.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goals, err := r.loadGoals()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range goals {
		if existing.ID == g.ID {
			goals[i] = g
			replaced = true
			break
		}
	}
	if !replaced {
		goals = append(goals, g)
	}
	return r.saveYAML(GoalsFile, goalsDoc{Goals: goals})
}

// DeleteGoal implements okr.Repository.
func (r *FilesystemRepository) DeleteGoal(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goals, err := r.loadGoals()
	if err != nil {
		return err
	}
	for i, g := range goals {
		if g.ID == id {
			goals = append(goals[:i], goals[i+1:]...)
			return r.saveYAML(GoalsFile, goalsDoc{Goals: goals})
		}
	}
	return fmt.Errorf("%w: goal %s", okr.ErrNotFound, id)
}

// GetTask implements okr.Repository.
func (r *FilesystemRepository) GetTask(_ context.Context, id string) (*okr.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.loadTasks()
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: task %s", okr.ErrNotFound, id)
}

// PutTask implements okr.Repository.
func (r *FilesystemRepository) PutTask(_ context.Context, t *okr.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.loadTasks()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range tasks {
		if existing.ID == t.ID {
			tasks[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		tasks = append(tasks, t)
	}
	return r.saveYAML(TasksFile, tasksDoc{Tasks: tasks})
}

// DeleteTask implements okr.Repository.
func (r *FilesystemRepository) DeleteTask(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.loadTasks()
	if err != nil {
		return err
	}
	for i, t := range tasks {
		if t.ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return r.saveYAML(TasksFile, tasksDoc{Tasks: tasks})
		}
	}
	return fmt.Errorf("%w: task %s", okr.ErrNotFound, id)
}

// GoalsOf implements okr.Repository.
func (r *FilesystemRepository) GoalsOf(_ context.Context, objectiveID string) ([]*okr.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	goals, err := r.loadGoals()
	if err != nil {
		return nil, err
	}
	var out []*okr.Goal
	for _, g := range goals {
		if g.ObjectiveID == objectiveID {
			out = append(out, g)
		}
	}
	return out, nil
}

// TasksOf implements okr.Repository.
func (r *FilesystemRepository) TasksOf(_ context.Context, goalID string) ([]*okr.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.loadTasks()
	if err != nil {
		return nil, err
	}
	var out []*okr.Task
	for _, t := range tasks {
		if t.GoalID == goalID {
			out = append(out, t)
		}
	}
	return out, nil
}
