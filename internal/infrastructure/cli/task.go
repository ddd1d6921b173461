package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/application"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks under a goal",
}

var (
	taskCreateGoal     string
	taskCreateDesc     string
	taskCreateAssignee string
	taskCreatePriority string
	taskCreateDue      string
)

var taskCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a task under a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, env, err := loadWorkspace()
		if err != nil {
			return err
		}

		in := application.CreateTaskInput{
			GoalID:      taskCreateGoal,
			Title:       args[0],
			Description: taskCreateDesc,
			AssigneeID:  taskCreateAssignee,
			CreatorID:   env.Actor,
		}
		if in.AssigneeID == "" {
			in.AssigneeID = env.Actor
		}
		if taskCreateDue != "" {
			due, err := time.Parse("2006-01-02", taskCreateDue)
			if err != nil {
				return fmt.Errorf("invalid --due date (want YYYY-MM-DD): %w", err)
			}
			in.DueDate = &due
		}
		if taskCreatePriority != "" {
			p, err := okr.ParsePriority(taskCreatePriority)
			if err != nil {
				return err
			}
			in.Priority = p
		}

		t, err := ws.Tasks.Create(cmd.Context(), in)
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Task %s created under goal %s.\n", t.ID, t.GoalID)
		return nil
	},
}

var taskNote string

// createTaskEventCommand builds one lifecycle subcommand (start, block, ...).
func createTaskEventCommand(use, short, event string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, env, err := loadWorkspace()
			if err != nil {
				return err
			}

			t, err := ws.Tasks.UpdateStatusEvent(cmd.Context(), args[0], event, taskNote, env.Actor)
			if err != nil {
				return MapError(err)
			}
			fmt.Printf("Task %s is now %s.\n", t.ID, t.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&taskNote, "note", "", "Note for the update (blocker reason when blocking)")
	return cmd
}

var taskProgressEvidence []string

var taskProgressCmd = &cobra.Command{
	Use:   "progress <task-id> <percent>",
	Short: "Set a task's progress percentage (0-100)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, env, err := loadWorkspace()
		if err != nil {
			return err
		}

		var percent float64
		if _, err := fmt.Sscanf(args[1], "%f", &percent); err != nil {
			return fmt.Errorf("invalid percent: %s", args[1])
		}

		var evidence []okr.EvidenceLink
		for _, url := range taskProgressEvidence {
			evidence = append(evidence, okr.EvidenceLink{URL: url})
		}

		t, err := ws.Tasks.UpdateProgress(cmd.Context(), args[0], percent, evidence, taskNote, env.Actor)
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Task %s progress set to %.2f%%.\n", t.ID, t.Progress)
		return nil
	},
}

var taskHistoryCmd = &cobra.Command{
	Use:   "history <task-id>",
	Short: "Show a task's immutable update trail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, _, err := loadWorkspace()
		if err != nil {
			return err
		}

		updates, err := ws.Tasks.History(cmd.Context(), args[0])
		if err != nil {
			return MapError(err)
		}
		if len(updates) == 0 {
			fmt.Println("No updates recorded.")
			return nil
		}
		for _, u := range updates {
			fmt.Printf("%s  %s  %s->%s  %.2f->%.2f  %s\n",
				u.Timestamp.Format(time.RFC3339), u.ActorID,
				u.PrevStatus, u.NewStatus, u.PrevProgress, u.NewProgress, u.Note)
		}
		return nil
	},
}

func init() {
	taskCreateCmd.Flags().StringVar(&taskCreateGoal, "goal", "", "Parent goal id")
	taskCreateCmd.Flags().StringVar(&taskCreateDesc, "description", "", "Task description")
	taskCreateCmd.Flags().StringVar(&taskCreateAssignee, "assignee", "", "Assignee actor id (defaults to the acting user)")
	taskCreateCmd.Flags().StringVar(&taskCreatePriority, "priority", "", "Priority: low, medium or high")
	taskCreateCmd.Flags().StringVar(&taskCreateDue, "due", "", "Due date (YYYY-MM-DD), not after the goal's due date")
	_ = taskCreateCmd.MarkFlagRequired("goal")

	taskProgressCmd.Flags().StringSliceVar(&taskProgressEvidence, "evidence", nil, "Evidence URL (repeatable)")
	taskProgressCmd.Flags().StringVar(&taskNote, "note", "", "Note for the update")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(createTaskEventCommand("start <task-id>", "Start work on a task", okr.EventStart))
	taskCmd.AddCommand(createTaskEventCommand("block <task-id>", "Block a task (requires --note)", okr.EventBlock))
	taskCmd.AddCommand(createTaskEventCommand("resume <task-id>", "Resume a blocked or overdue task", okr.EventResume))
	taskCmd.AddCommand(createTaskEventCommand("complete <task-id>", "Complete a task", okr.EventComplete))
	taskCmd.AddCommand(createTaskEventCommand("cancel <task-id>", "Cancel a task", okr.EventCancel))
	taskCmd.AddCommand(taskProgressCmd)
	taskCmd.AddCommand(taskHistoryCmd)
	RootCmd.AddCommand(taskCmd)
}
