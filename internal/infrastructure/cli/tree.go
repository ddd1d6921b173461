package cli

import (
	"fmt"

	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [objective-id]",
	Short: "Show the objective hierarchy with derived progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, _, err := loadWorkspace()
		if err != nil {
			return err
		}

		objectives, err := ws.Repo.ListObjectives(cmd.Context())
		if err != nil {
			return err
		}
		if len(args) == 1 {
			o, err := ws.Objectives.Get(cmd.Context(), args[0])
			if err != nil {
				return MapError(err)
			}
			objectives = []*okr.Objective{o}
		}
		if len(objectives) == 0 {
			fmt.Println("No objectives yet.")
			return nil
		}

		for _, o := range objectives {
			fmt.Printf("%s  %s  [%s]  %.2f%%\n", o.ID, o.Title, o.Status, o.Progress)
			goals, err := ws.Tracker.GoalsOf(cmd.Context(), o.ID)
			if err != nil {
				return MapError(err)
			}
			for _, g := range goals {
				fmt.Printf("  %s  %s  [%s]  %.2f%%  @%s\n", g.ID, g.Title, g.Status, g.Progress, g.AssigneeID)
				tasks, err := ws.Tracker.TasksOf(cmd.Context(), g.ID)
				if err != nil {
					return MapError(err)
				}
				for _, t := range tasks {
					line := fmt.Sprintf("    %s  %s  [%s]  %.2f%%  @%s", t.ID, t.Title, t.Status, t.Progress, t.AssigneeID)
					if t.BlockerReason != "" {
						line += "  blocked: " + t.BlockerReason
					}
					fmt.Println(line)
				}
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(treeCmd)
}
