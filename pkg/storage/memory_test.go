package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

func TestMemoryRepository_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	task := okr.NewTask("g1", "T", "dev", "dev", nil)
	if err := repo.PutTask(ctx, task); err != nil {
		t.Fatalf("PutTask failed: %v", err)
	}

	// Mutating the caller's struct after Put must not change the store.
	task.Progress = 99
	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Progress != 0 {
		t.Errorf("store observed caller mutation: progress %v", got.Progress)
	}

	// Mutating a returned struct must not change the store either.
	got.Progress = 50
	again, _ := repo.GetTask(ctx, task.ID)
	if again.Progress != 0 {
		t.Errorf("store observed read-side mutation: progress %v", again.Progress)
	}
}

func TestMemoryRepository_ChildrenSortedByCreation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	older := okr.NewGoal("o1", "Older", "dev", "mgr", nil)
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := okr.NewGoal("o1", "Newer", "dev", "mgr", nil)
	newer.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	// Insert newest first; reads come back oldest first.
	if err := repo.PutGoal(ctx, newer); err != nil {
		t.Fatal(err)
	}
	if err := repo.PutGoal(ctx, older); err != nil {
		t.Fatal(err)
	}

	goals, err := repo.GoalsOf(ctx, "o1")
	if err != nil {
		t.Fatalf("GoalsOf failed: %v", err)
	}
	if len(goals) != 2 || goals[0].Title != "Older" {
		t.Errorf("GoalsOf order = %+v", goals)
	}
}

func TestMemoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if _, err := repo.GetObjective(ctx, "x"); !errors.Is(err, okr.ErrNotFound) {
		t.Errorf("GetObjective: %v", err)
	}
	if err := repo.DeleteGoal(ctx, "x"); !errors.Is(err, okr.ErrNotFound) {
		t.Errorf("DeleteGoal: %v", err)
	}
	if err := repo.DeleteTask(ctx, "x"); !errors.Is(err, okr.ErrNotFound) {
		t.Errorf("DeleteTask: %v", err)
	}
}

func TestMemoryRepository_UpdateStreamIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	task := okr.NewTask("g1", "T", "dev", "dev", nil)
	if err := repo.AppendUpdate(ctx, okr.NewTaskUpdate(nil, task, "created", "dev")); err != nil {
		t.Fatal(err)
	}

	updates, err := repo.UpdatesOf(ctx, task.ID)
	if err != nil || len(updates) != 1 {
		t.Fatalf("UpdatesOf = %d, %v", len(updates), err)
	}
	if updates[0].Note != "created" {
		t.Errorf("update = %+v", updates[0])
	}
}
