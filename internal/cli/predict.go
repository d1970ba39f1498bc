package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fuelcast/internal/app"
)

var (
	predictFuel  string
	predictStore string
	predictDate  string
	predictHour  int
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict fuel prices around a target date",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.PredictOptions{
			FuelID:  predictFuel,
			StoreID: predictStore,
			Hour:    predictHour,
		}

		if predictDate != "" {
			date, err := time.Parse("2006-01-02", predictDate)
			if err != nil {
				return fmt.Errorf("invalid --date value: %w", err)
			}
			opts.Date = &date
		}

		return getApp().Predict(cmd.Context(), opts)
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictFuel, "fuel", "", "Fuel product id (defaults to the first catalog entry)")
	predictCmd.Flags().StringVar(&predictStore, "store", "", "Store id (defaults to the first catalog entry)")
	predictCmd.Flags().StringVar(&predictDate, "date", "", "Target date (YYYY-MM-DD, defaults to today)")
	predictCmd.Flags().IntVar(&predictHour, "hour", -1, "Hour of day for display (0-23)")
}
