package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mehtaportfolio/data-backend/internal/adapter/driven/sqlstore"
	"github.com/mehtaportfolio/data-backend/internal/application"
)

// heartbeatCmd groups heartbeat maintenance commands
var heartbeatCmd = &cobra.Command{
	Use:   "heartbeat",
	Short: "Maintain the heartbeat row",
}

// heartbeatRunCmd performs one refresh immediately
var heartbeatRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Replace the heartbeat row now",
	Long: `Run the scheduled heartbeat refresh once: delete the latest row of
dummy_table and insert a fresh one stamped with the current time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		svc, err := application.NewHeartbeatService(
			sqlstore.NewTables(db).Dummy, nil, application.DefaultHeartbeatSchedule,
		)
		if err != nil {
			return err
		}

		row, err := svc.RunOnce(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "heartbeat row %s written (point_no %.0f)\n", row.ID, *row.PointNo)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(heartbeatCmd)
	heartbeatCmd.AddCommand(heartbeatRunCmd)
}
