package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cropguard/cropguard/pkg/format"
)

func newWeatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather LOCATION",
		Short: "Show the weather report and spraying advice for a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := apiClient().Weather(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if outputFormat == "json" {
				return format.JSON(os.Stdout, report)
			}
			format.Weather(os.Stdout, report)
			return nil
		},
	}
}
