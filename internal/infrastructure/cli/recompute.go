package cli

import (
	"fmt"

	"github.com/felixgeelhaar/cascade/pkg/domain/okr"
	"github.com/spf13/cobra"
)

var recomputeKind string

var recomputeCmd = &cobra.Command{
	Use:   "recompute <id>",
	Short: "Re-derive ancestor progress and overdue flags for an entity",
	Long: `Recompute walks from the given entity up to its objective, re-reading
children at each level and persisting any progress or overdue changes.
Running it on an unchanged tree is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, env, err := loadWorkspace()
		if err != nil {
			return err
		}

		kind := okr.EntityKind(recomputeKind)
		switch kind {
		case okr.KindObjective, okr.KindGoal, okr.KindTask:
		default:
			return fmt.Errorf("invalid --kind %q: want objective, goal or task", recomputeKind)
		}

		ref := okr.EntityRef{Kind: kind, ID: args[0]}
		if err := ws.Tracker.RecomputeAncestors(cmd.Context(), ref, env.Actor); err != nil {
			return MapError(err)
		}
		fmt.Printf("Recomputed ancestors of %s %s.\n", kind, args[0])
		return nil
	},
}

func init() {
	recomputeCmd.Flags().StringVar(&recomputeKind, "kind", string(okr.KindTask), "Entity kind: objective, goal or task")
	RootCmd.AddCommand(recomputeCmd)
}
