package cli

import (
	"fmt"

	"github.com/felixgeelhaar/cascade/internal/infrastructure/config"
	"github.com/felixgeelhaar/cascade/pkg/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a cascade workspace in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := config.Load()
		if err != nil {
			return err
		}

		repo := storage.NewFilesystemRepository(env.Workspace)
		if repo.IsInitialized() {
			fmt.Println("Workspace already initialized.")
			return nil
		}
		if err := repo.Initialize(); err != nil {
			return err
		}

		fmt.Printf("Initialized empty cascade workspace in %s/%s\n", env.Workspace, storage.CascadeDir)
		fmt.Println("Next: add actors with 'cascade team add', then create an objective.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
