package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
)

func seedTree(t *testing.T, repo okr.Repository) (*okr.Objective, *okr.Goal, *okr.Task) {
	t.Helper()
	ctx := context.Background()

	o := okr.NewObjective("Objective", "mgr", "admin", []string{"g"},
		okr.TimelineQuarterly,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	g := okr.NewGoal(o.ID, "Goal", "dev", "mgr", nil)
	task := okr.NewTask(g.ID, "Task", "dev", "dev", nil)

	if err := repo.PutObjective(ctx, o); err != nil {
		t.Fatal(err)
	}
	if err := repo.PutGoal(ctx, g); err != nil {
		t.Fatal(err)
	}
	if err := repo.PutTask(ctx, task); err != nil {
		t.Fatal(err)
	}
	return o, g, task
}

func TestSnapshotExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryRepository()
	o, g, task := seedTree(t, src)

	snap, err := ExportSnapshot(ctx, src)
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}
	if len(snap.Objectives) != 1 || len(snap.Goals) != 1 || len(snap.Tasks) != 1 {
		t.Fatalf("snapshot shape = %d/%d/%d", len(snap.Objectives), len(snap.Goals), len(snap.Tasks))
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseSnapshot(data)
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}

	dst := NewMemoryRepository()
	if err := ImportSnapshot(ctx, dst, parsed); err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}

	gotO, err := dst.GetObjective(ctx, o.ID)
	if err != nil || gotO.Title != "Objective" {
		t.Errorf("imported objective = %+v, %v", gotO, err)
	}
	goals, _ := dst.GoalsOf(ctx, o.ID)
	if len(goals) != 1 || goals[0].ID != g.ID {
		t.Errorf("imported goals = %+v", goals)
	}
	tasks, _ := dst.TasksOf(ctx, g.ID)
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Errorf("imported tasks = %+v", tasks)
	}
}

func TestParseSnapshot_RejectsInvalidShape(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not an object", `[]`},
		{"missing sections", `{"objectives": []}`},
		{"objective without id", `{
			"objectives": [{"title": "X", "owner_id": "a", "creator_id": "b",
				"status": "not_started", "timeline": "quarterly",
				"start_date": "2026-01-01T00:00:00Z", "end_date": "2026-04-01T00:00:00Z"}],
			"goals": [], "tasks": []
		}`},
		{"bad status value", `{
			"objectives": [], "goals": [],
			"tasks": [{"id": "t", "goal_id": "g", "title": "T",
				"assignee_id": "a", "creator_id": "b", "status": "done"}]
		}`},
		{"progress out of range", `{
			"objectives": [], "goals": [],
			"tasks": [{"id": "t", "goal_id": "g", "title": "T",
				"assignee_id": "a", "creator_id": "b", "status": "in_progress",
				"progress": 150}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSnapshot([]byte(tt.data)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseSnapshot_AcceptsMinimalValid(t *testing.T) {
	data := `{"objectives": [], "goals": [], "tasks": []}`
	snap, err := ParseSnapshot([]byte(data))
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}
	if len(snap.Objectives)+len(snap.Goals)+len(snap.Tasks) != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}
