package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"fuelcast/internal/app"
)

var (
	simulatePrice     float64
	simulateThreshold float64
	simulateMethod    string
	simulateDispatch  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate-alert",
	Short: "Evaluate the alert condition against a given price",
	RunE: func(cmd *cobra.Command, args []string) error {
		if simulatePrice <= 0 {
			return errors.New("--price must be greater than 0")
		}

		opts := app.SimulateOptions{
			Price:     simulatePrice,
			Threshold: simulateThreshold,
			Method:    simulateMethod,
			Dispatch:  simulateDispatch,
		}
		return getApp().SimulateAlert(cmd.Context(), opts)
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simulatePrice, "price", 0, "Current price to evaluate ($/litre)")
	simulateCmd.Flags().Float64Var(&simulateThreshold, "threshold", 0, "Threshold override (defaults to config)")
	simulateCmd.Flags().StringVar(&simulateMethod, "method", "", "Method override: email or sms")
	simulateCmd.Flags().BoolVar(&simulateDispatch, "dispatch", false, "Dispatch through the configured gateway when triggered")
}
