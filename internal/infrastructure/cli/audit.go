package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the hash-chained audit trail",
}

var auditTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show all recorded audit events in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, _, err := loadWorkspace()
		if err != nil {
			return err
		}

		events, err := ws.Audit.GetTimeline()
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No audit events recorded.")
			return nil
		}
		for _, e := range events {
			fmt.Printf("%s  %-24s %-16s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.Actor, e.ID)
		}
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the audit trail's hash chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, _, err := loadWorkspace()
		if err != nil {
			return err
		}

		problems, err := ws.Audit.VerifyIntegrity()
		if err != nil {
			return err
		}
		if len(problems) == 0 {
			fmt.Println("Audit trail intact.")
			return nil
		}
		for _, p := range problems {
			fmt.Println("FAIL: " + p)
		}
		return fmt.Errorf("audit trail verification failed (%d problems)", len(problems))
	},
}

func init() {
	auditCmd.AddCommand(auditTimelineCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	RootCmd.AddCommand(auditCmd)
}
