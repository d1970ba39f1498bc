package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var compareDate string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank all fuel products by simulated price for one date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now()
		if compareDate != "" {
			parsed, err := time.Parse("2006-01-02", compareDate)
			if err != nil {
				return fmt.Errorf("invalid --date value: %w", err)
			}
			date = parsed
		}

		return getApp().Compare(cmd.Context(), date)
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareDate, "date", "", "Comparison date (YYYY-MM-DD, defaults to today)")
}
