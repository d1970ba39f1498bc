package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fuelcast/internal/app"
)

var (
	showLimit   int
	alertsLimit int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display recent prediction snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		if showLimit <= 0 {
			return fmt.Errorf("--limit must be greater than zero")
		}

		return getApp().Show(cmd.Context(), app.ShowOptions{Limit: showLimit})
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Display recent alert events",
	RunE: func(cmd *cobra.Command, args []string) error {
		if alertsLimit <= 0 {
			return fmt.Errorf("--limit must be greater than zero")
		}

		return getApp().Alerts(cmd.Context(), app.ShowOptions{Limit: alertsLimit})
	},
}

func init() {
	showCmd.Flags().IntVar(&showLimit, "limit", 20, "Number of snapshots to display")
	alertsCmd.Flags().IntVar(&alertsLimit, "limit", 20, "Number of alert events to display")
}
