package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/xeipuuv/gojsonschema"
)

// Snapshot is a portable JSON image of the whole tree, used for backup and
// for seeding a workspace from another system.
type Snapshot struct {
	Objectives []*okr.Objective `json:"objectives"`
	Goals      []*okr.Goal      `json:"goals"`
	Tasks      []*okr.Task      `json:"tasks"`
}

// snapshotSchemaJSON guards imports: a snapshot produced elsewhere must at
// least carry ids, parent links and valid statuses before it touches the
// store. Field-level invariants are still re-checked by the engine.
const snapshotSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["objectives", "goals", "tasks"],
  "properties": {
    "objectives": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "owner_id", "creator_id", "status", "timeline", "start_date", "end_date"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "status": {"enum": ["not_started", "in_progress", "completed", "blocked", "cancelled", "overdue"]},
          "timeline": {"enum": ["quarterly", "yearly"]},
          "progress": {"type": "number", "minimum": 0, "maximum": 100}
        }
      }
    },
    "goals": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "objective_id", "title", "assignee_id", "creator_id", "status"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "objective_id": {"type": "string", "minLength": 1},
          "status": {"enum": ["not_started", "in_progress", "completed", "blocked", "cancelled", "overdue"]},
          "progress": {"type": "number", "minimum": 0, "maximum": 100}
        }
      }
    },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "goal_id", "title", "assignee_id", "creator_id", "status"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "goal_id": {"type": "string", "minLength": 1},
          "status": {"enum": ["not_started", "in_progress", "completed", "blocked", "cancelled", "overdue"]},
          "progress": {"type": "number", "minimum": 0, "maximum": 100}
        }
      }
    }
  }
}`

var snapshotSchemaLoader = gojsonschema.NewStringLoader(snapshotSchemaJSON)

// ExportSnapshot reads the full tree out of a repository.
func ExportSnapshot(ctx context.Context, repo okr.Repository) (*Snapshot, error) {
	objectives, err := repo.ListObjectives(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Objectives: objectives}
	for _, o := range objectives {
		goals, err := repo.GoalsOf(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		snap.Goals = append(snap.Goals, goals...)
		for _, g := range goals {
			tasks, err := repo.TasksOf(ctx, g.ID)
			if err != nil {
				return nil, err
			}
			snap.Tasks = append(snap.Tasks, tasks...)
		}
	}
	return snap, nil
}

// ParseSnapshot validates raw JSON against the snapshot schema and decodes it.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	documentLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(snapshotSchemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("snapshot validation failed: %w", err)
	}
	if !result.Valid() {
		msg := "invalid snapshot:"
		for _, e := range result.Errors() {
			msg += "\n  - " + e.String()
		}
		return nil, fmt.Errorf("%s", msg)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// ImportSnapshot writes a parsed snapshot into the repository. Records are
// upserted by id; parents land before children so children-of queries never
// observe an orphan.
func ImportSnapshot(ctx context.Context, repo okr.Repository, snap *Snapshot) error {
	for _, o := range snap.Objectives {
		if err := repo.PutObjective(ctx, o); err != nil {
			return err
		}
	}
	for _, g := range snap.Goals {
		if err := repo.PutGoal(ctx, g); err != nil {
			return err
		}
	}
	for _, t := range snap.Tasks {
		if err := repo.PutTask(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
