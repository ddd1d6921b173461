package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/application"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals under an objective",
}

var (
	goalCreateObjective string
	goalCreateDesc      string
	goalCreateAssignee  string
	goalCreatePriority  string
	goalCreateDue       string
)

var goalCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a goal for a direct report (coordinator only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, env, err := loadWorkspace()
		if err != nil {
			return err
		}

		in := application.CreateGoalInput{
			ObjectiveID: goalCreateObjective,
			Title:       args[0],
			Description: goalCreateDesc,
			AssigneeID:  goalCreateAssignee,
			CreatorID:   env.Actor,
		}
		if goalCreateDue != "" {
			due, err := time.Parse("2006-01-02", goalCreateDue)
			if err != nil {
				return fmt.Errorf("invalid --due date (want YYYY-MM-DD): %w", err)
			}
			in.DueDate = &due
		}
		if goalCreatePriority != "" {
			p, err := okr.ParsePriority(goalCreatePriority)
			if err != nil {
				return err
			}
			in.Priority = p
		}

		g, err := ws.Goals.Create(cmd.Context(), in)
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Goal %s created under objective %s.\n", g.ID, g.ObjectiveID)
		return nil
	},
}

var goalStatusNote string

var goalStatusCmd = &cobra.Command{
	Use:   "status <goal-id> <new-status>",
	Short: "Transition a goal's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, env, err := loadWorkspace()
		if err != nil {
			return err
		}

		next, err := okr.ParseStatus(args[1])
		if err != nil {
			return err
		}

		g, err := ws.Goals.UpdateStatus(cmd.Context(), args[0], next, goalStatusNote, env.Actor)
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Goal %s is now %s.\n", g.ID, g.Status)
		return nil
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <goal-id>",
	Short: "Delete a goal and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, env, err := loadWorkspace()
		if err != nil {
			return err
		}

		if err := ws.Goals.Delete(cmd.Context(), args[0], env.Actor); err != nil {
			return MapError(err)
		}
		fmt.Printf("Goal %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	goalCreateCmd.Flags().StringVar(&goalCreateObjective, "objective", "", "Parent objective id")
	goalCreateCmd.Flags().StringVar(&goalCreateDesc, "description", "", "Goal description")
	goalCreateCmd.Flags().StringVar(&goalCreateAssignee, "assignee", "", "Assignee actor id")
	goalCreateCmd.Flags().StringVar(&goalCreatePriority, "priority", "", "Priority: low, medium or high")
	goalCreateCmd.Flags().StringVar(&goalCreateDue, "due", "", "Due date (YYYY-MM-DD), inside the objective's range")
	_ = goalCreateCmd.MarkFlagRequired("objective")
	_ = goalCreateCmd.MarkFlagRequired("assignee")

	goalStatusCmd.Flags().StringVar(&goalStatusNote, "note", "", "Status change note (blocker reason when blocking)")

	goalCmd.AddCommand(goalCreateCmd)
	goalCmd.AddCommand(goalStatusCmd)
	goalCmd.AddCommand(goalDeleteCmd)
	RootCmd.AddCommand(goalCmd)
}
