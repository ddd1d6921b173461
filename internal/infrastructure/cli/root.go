package cli

import (
	"github.com/felixgeelhaar/cascade/internal/infrastructure/config"
	"github.com/felixgeelhaar/cascade/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "cascade",
	Version: Version,
	Short:   "A hierarchical goal-tracking engine",
	Long: `Cascade tracks organizational intent as a three-level hierarchy:
Objectives own Goals, Goals own Tasks. Task progress is entered directly;
everything above is derived bottom-up, and every write is validated against
timeline containment, the status lifecycle and edit permissions.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

// loadWorkspace builds the engine over the configured workspace root.
func loadWorkspace() (*wiring.Workspace, *config.Env, error) {
	env, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	ws, err := wiring.NewWorkspace(env.Workspace)
	if err != nil {
		return nil, nil, err
	}
	return ws, env, nil
}
