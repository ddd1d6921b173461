package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/cascade/pkg/storage"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export or import the workspace as portable JSON",
}

var snapshotExportOut string

var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full tree as JSON to a file or stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, _, err := loadWorkspace()
		if err != nil {
			return err
		}

		snap, err := storage.ExportSnapshot(cmd.Context(), ws.Repo)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}

		if snapshotExportOut == "" || snapshotExportOut == "-" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(snapshotExportOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		fmt.Printf("Exported %d objectives, %d goals, %d tasks to %s.\n",
			len(snap.Objectives), len(snap.Goals), len(snap.Tasks), snapshotExportOut)
		return nil
	},
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a snapshot file and load it into the workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, env, err := loadWorkspace()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		snap, err := storage.ParseSnapshot(data)
		if err != nil {
			return err
		}
		if err := storage.ImportSnapshot(cmd.Context(), ws.Repo, snap); err != nil {
			return err
		}
		if err := ws.Audit.Log("snapshot.import", env.Actor, map[string]interface{}{
			"objectives": len(snap.Objectives),
			"goals":      len(snap.Goals),
			"tasks":      len(snap.Tasks),
		}); err != nil {
			return err
		}

		fmt.Printf("Imported %d objectives, %d goals, %d tasks.\n",
			len(snap.Objectives), len(snap.Goals), len(snap.Tasks))
		return nil
	},
}

func init() {
	snapshotExportCmd.Flags().StringVarP(&snapshotExportOut, "out", "o", "", "Output file (default stdout)")

	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotImportCmd)
	RootCmd.AddCommand(snapshotCmd)
}
