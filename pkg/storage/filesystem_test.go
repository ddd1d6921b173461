package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/domain/identity"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

func newTestRepo(t *testing.T) *FilesystemRepository {
	t.Helper()
	repo := NewFilesystemRepository(t.TempDir())
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return repo
}

func TestFilesystemRepository_Initialize(t *testing.T) {
	repo := NewFilesystemRepository(t.TempDir())
	if repo.IsInitialized() {
		t.Error("fresh workspace should not be initialized")
	}
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !repo.IsInitialized() {
		t.Error("workspace should be initialized")
	}
}

func TestResolvePath(t *testing.T) {
	repo := NewFilesystemRepository(t.TempDir())

	if _, err := repo.ResolvePath("objectives.yaml"); err != nil {
		t.Errorf("plain filename rejected: %v", err)
	}
	for _, bad := range []string{"", "../escape.yaml", "../../etc/passwd", "sub/dir.yaml"} {
		if _, err := repo.ResolvePath(bad); err == nil {
			t.Errorf("ResolvePath(%q) should fail", bad)
		}
	}
}

func TestFilesystemRepository_ObjectiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	o := okr.NewObjective("Grow retention", "mgr", "admin", []string{"growth"},
		okr.TimelineQuarterly,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	if err := repo.PutObjective(ctx, o); err != nil {
		t.Fatalf("PutObjective failed: %v", err)
	}

	got, err := repo.GetObjective(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetObjective failed: %v", err)
	}
	if got.Title != o.Title || got.Timeline != okr.TimelineQuarterly || got.Status != okr.StatusNotStarted {
		t.Errorf("round-tripped objective = %+v", got)
	}

	// Upsert by id.
	o.Progress = 42.5
	if err := repo.PutObjective(ctx, o); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.GetObjective(ctx, o.ID)
	if got.Progress != 42.5 {
		t.Errorf("Progress after upsert = %v, want 42.5", got.Progress)
	}

	list, err := repo.ListObjectives(ctx)
	if err != nil || len(list) != 1 {
		t.Errorf("ListObjectives = %v items, err %v", len(list), err)
	}

	if _, err := repo.GetObjective(ctx, "missing"); !errors.Is(err, okr.ErrNotFound) {
		t.Errorf("missing objective: got %v, want ErrNotFound", err)
	}
}

func TestFilesystemRepository_GoalAndTaskHierarchy(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	g1 := okr.NewGoal("o1", "Goal one", "dev", "mgr", nil)
	g2 := okr.NewGoal("o1", "Goal two", "dev", "mgr", nil)
	other := okr.NewGoal("o2", "Elsewhere", "dev", "mgr", nil)
	for _, g := range []*okr.Goal{g1, g2, other} {
		if err := repo.PutGoal(ctx, g); err != nil {
			t.Fatalf("PutGoal failed: %v", err)
		}
	}

	goals, err := repo.GoalsOf(ctx, "o1")
	if err != nil {
		t.Fatalf("GoalsOf failed: %v", err)
	}
	if len(goals) != 2 {
		t.Errorf("GoalsOf(o1) = %d goals, want 2", len(goals))
	}

	task := okr.NewTask(g1.ID, "A task", "dev", "dev", nil)
	if err := repo.PutTask(ctx, task); err != nil {
		t.Fatalf("PutTask failed: %v", err)
	}
	tasks, err := repo.TasksOf(ctx, g1.ID)
	if err != nil || len(tasks) != 1 {
		t.Errorf("TasksOf = %d tasks, err %v", len(tasks), err)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); !errors.Is(err, okr.ErrNotFound) {
		t.Errorf("deleted task still readable: %v", err)
	}
	if err := repo.DeleteTask(ctx, task.ID); !errors.Is(err, okr.ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}

	if err := repo.DeleteGoal(ctx, g2.ID); err != nil {
		t.Fatalf("DeleteGoal failed: %v", err)
	}
	goals, _ = repo.GoalsOf(ctx, "o1")
	if len(goals) != 1 {
		t.Errorf("GoalsOf(o1) after delete = %d goals, want 1", len(goals))
	}
}

func TestFilesystemRepository_UpdateStream(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	task := okr.NewTask("g1", "T", "dev", "dev", nil)
	first := okr.NewTaskUpdate(nil, task, "created", "dev")

	before := *task
	task.Progress = 50
	second := okr.NewTaskUpdate(&before, task, "halfway", "dev")

	for _, u := range []okr.TaskUpdate{first, second} {
		if err := repo.AppendUpdate(ctx, u); err != nil {
			t.Fatalf("AppendUpdate failed: %v", err)
		}
	}
	// A record for another task must not leak into the stream.
	otherTask := okr.NewTask("g1", "Other", "dev", "dev", nil)
	if err := repo.AppendUpdate(ctx, okr.NewTaskUpdate(nil, otherTask, "created", "dev")); err != nil {
		t.Fatal(err)
	}

	updates, err := repo.UpdatesOf(ctx, task.ID)
	if err != nil {
		t.Fatalf("UpdatesOf failed: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("len(updates) = %d, want 2", len(updates))
	}
	if updates[0].Note != "created" || updates[1].NewProgress != 50 {
		t.Errorf("updates = %+v", updates)
	}

	none, err := repo.UpdatesOf(ctx, "unknown")
	if err != nil || len(none) != 0 {
		t.Errorf("UpdatesOf(unknown) = %v, %v", none, err)
	}
}

func TestFilesystemRepository_Team(t *testing.T) {
	repo := newTestRepo(t)

	// Missing file yields an empty directory.
	d, err := repo.LoadTeam()
	if err != nil {
		t.Fatalf("LoadTeam failed: %v", err)
	}
	if len(d.Actors) != 0 {
		t.Errorf("fresh directory has %d actors", len(d.Actors))
	}

	if err := d.Add(identity.Actor{ID: "mgr", Role: identity.RoleCoordinator, Department: "eng"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveTeam(d); err != nil {
		t.Fatalf("SaveTeam failed: %v", err)
	}

	loaded, err := repo.LoadTeam()
	if err != nil {
		t.Fatalf("LoadTeam failed: %v", err)
	}
	if a := loaded.Find("mgr"); a == nil || a.Role != identity.RoleCoordinator {
		t.Errorf("loaded directory = %+v", loaded)
	}
}

func TestFilesystemRepository_EmptyWorkspaceReads(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.GetGoal(ctx, "g"); !errors.Is(err, okr.ErrNotFound) {
		t.Errorf("empty store GetGoal: %v", err)
	}
	goals, err := repo.GoalsOf(ctx, "o")
	if err != nil || len(goals) != 0 {
		t.Errorf("empty store GoalsOf = %v, %v", goals, err)
	}
	events, err := repo.LoadEvents()
	if err != nil || len(events) != 0 {
		t.Errorf("empty store LoadEvents = %v, %v", events, err)
	}
}
