package cli

import (
	"fmt"

	"github.com/felixgeelhaar/cascade/pkg/domain/identity"
	"github.com/spf13/cobra"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage the organization directory",
}

var teamAddRole, teamAddDept, teamAddManager, teamAddName string

var teamAddCmd = &cobra.Command{
	Use:   "add <actor-id>",
	Short: "Add or update an actor in team.yaml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, _, err := loadWorkspace()
		if err != nil {
			return err
		}

		actor := identity.Actor{
			ID:         args[0],
			Name:       teamAddName,
			Role:       identity.Role(teamAddRole),
			Department: teamAddDept,
			ManagerID:  teamAddManager,
		}
		if err := ws.Directory.Add(actor); err != nil {
			return err
		}
		if err := ws.Repo.SaveTeam(ws.Directory); err != nil {
			return err
		}

		fmt.Printf("Actor %s (%s) saved.\n", actor.ID, actor.Role)
		return nil
	},
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known actors",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, _, err := loadWorkspace()
		if err != nil {
			return err
		}

		if len(ws.Directory.Actors) == 0 {
			fmt.Println("No actors yet. Add one with 'cascade team add'.")
			return nil
		}
		for _, a := range ws.Directory.Actors {
			line := fmt.Sprintf("%-20s %-14s %s", a.ID, a.Role, a.Department)
			if a.ManagerID != "" {
				line += "  (reports to " + a.ManagerID + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	teamAddCmd.Flags().StringVar(&teamAddName, "name", "", "Display name")
	teamAddCmd.Flags().StringVar(&teamAddRole, "role", string(identity.RoleIndividual), "Role: administrator, coordinator or individual")
	teamAddCmd.Flags().StringVar(&teamAddDept, "department", "", "Department")
	teamAddCmd.Flags().StringVar(&teamAddManager, "manager", "", "Manager actor id")

	teamCmd.AddCommand(teamAddCmd)
	teamCmd.AddCommand(teamListCmd)
	RootCmd.AddCommand(teamCmd)
}
