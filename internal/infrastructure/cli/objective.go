package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascade/pkg/application"
	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/spf13/cobra"
)

var objectiveCmd = &cobra.Command{
	Use:   "objective",
	Short: "Manage top-level objectives",
}

var (
	objCreateDesc     string
	objCreateOwner    string
	objCreateGroups   []string
	objCreatePriority string
	objCreateTimeline string
	objCreateStart    string
	objCreateEnd      string
	objCreateMetric   string
)

var objectiveCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new objective (administrator only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, env, err := loadWorkspace()
		if err != nil {
			return err
		}

		start, err := time.Parse("2006-01-02", objCreateStart)
		if err != nil {
			return fmt.Errorf("invalid --start date (want YYYY-MM-DD): %w", err)
		}
		end, err := time.Parse("2006-01-02", objCreateEnd)
		if err != nil {
			return fmt.Errorf("invalid --end date (want YYYY-MM-DD): %w", err)
		}

		kind, err := okr.ParseTimelineKind(objCreateTimeline)
		if err != nil {
			return err
		}

		in := application.CreateObjectiveInput{
			Title:         args[0],
			Description:   objCreateDesc,
			OwnerID:       objCreateOwner,
			CreatorID:     env.Actor,
			GroupIDs:      objCreateGroups,
			Timeline:      kind,
			StartDate:     start,
			EndDate:       end,
			SuccessMetric: objCreateMetric,
		}
		if objCreatePriority != "" {
			p, err := okr.ParsePriority(objCreatePriority)
			if err != nil {
				return err
			}
			in.Priority = p
		}

		o, err := ws.Objectives.Create(cmd.Context(), in)
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Objective %s created (%s, %s to %s).\n", o.ID, o.Timeline, objCreateStart, objCreateEnd)
		return nil
	},
}

var objStatusNote string

var objectiveStatusCmd = &cobra.Command{
	Use:   "status <objective-id> <new-status>",
	Short: "Transition an objective's status",
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

		o, err := ws.Objectives.UpdateStatus(cmd.Context(), args[0], next, objStatusNote, env.Actor)
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Objective %s is now %s.\n", o.ID, o.Status)
		return nil
	},
}

var objectiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List objectives with derived progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, _, err := loadWorkspace()
		if err != nil {
			return err
		}

		objectives, err := ws.Repo.ListObjectives(cmd.Context())
		if err != nil {
			return err
		}
		if len(objectives) == 0 {
			fmt.Println("No objectives yet.")
			return nil
		}
		for _, o := range objectives {
			fmt.Printf("%s  %-30s %-12s %6.2f%%  %s\n", o.ID, o.Title, o.Status, o.Progress, o.Timeline)
		}
		return nil
	},
}

func init() {
	objectiveCreateCmd.Flags().StringVar(&objCreateDesc, "description", "", "Objective description")
	objectiveCreateCmd.Flags().StringVar(&objCreateOwner, "owner", "", "Owning coordinator's actor id")
	objectiveCreateCmd.Flags().StringSliceVar(&objCreateGroups, "group", nil, "Owning group id (repeatable)")
	objectiveCreateCmd.Flags().StringVar(&objCreatePriority, "priority", "", "Priority: low, medium or high")
	objectiveCreateCmd.Flags().StringVar(&objCreateTimeline, "timeline", string(okr.TimelineQuarterly), "Timeline kind: quarterly or yearly")
	objectiveCreateCmd.Flags().StringVar(&objCreateStart, "start", "", "Start date (YYYY-MM-DD)")
	objectiveCreateCmd.Flags().StringVar(&objCreateEnd, "end", "", "End date (YYYY-MM-DD)")
	objectiveCreateCmd.Flags().StringVar(&objCreateMetric, "metric", "", "Success metric")
	_ = objectiveCreateCmd.MarkFlagRequired("owner")
	_ = objectiveCreateCmd.MarkFlagRequired("start")
	_ = objectiveCreateCmd.MarkFlagRequired("end")

	objectiveStatusCmd.Flags().StringVar(&objStatusNote, "note", "", "Status change note")

	objectiveCmd.AddCommand(objectiveCreateCmd)
	objectiveCmd.AddCommand(objectiveStatusCmd)
	objectiveCmd.AddCommand(objectiveListCmd)
	RootCmd.AddCommand(objectiveCmd)
}
