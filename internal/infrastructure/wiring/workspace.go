package wiring

import (
	"github.com/felixgeelhaar/cascade/pkg/application"
	"github.com/felixgeelhaar/cascade/pkg/domain/identity"
	"github.com/felixgeelhaar/cascade/pkg/domain/tracker"
	"github.com/felixgeelhaar/cascade/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Repo       *storage.FilesystemRepository
	Directory  *identity.Directory
	Audit      *application.AuditService
	Objectives *application.ObjectiveService
	Goals      *application.GoalService
	Tasks      *application.TaskService
	Tracker    *application.TrackerService
}

// NewWorkspace wires the engine over a filesystem store at root.
func NewWorkspace(root string) (*Workspace, error) {
	repo := storage.NewFilesystemRepository(root)

	dir, err := repo.LoadTeam()
	if err != nil {
		return nil, err
	}

	audit := application.NewAuditService(repo)
	coordinator := tracker.NewCoordinator(repo, tracker.StaticResolver{Dir: dir}, nil)

	return &Workspace{
		Repo:       repo,
		Directory:  dir,
		Audit:      audit,
		Objectives: application.NewObjectiveService(coordinator, audit),
		Goals:      application.NewGoalService(coordinator, audit),
		Tasks:      application.NewTaskService(coordinator, audit),
		Tracker:    application.NewTrackerService(coordinator, audit),
	}, nil
}
