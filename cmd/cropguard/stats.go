package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cropguard/cropguard/pkg/format"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the farm dashboard aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient().DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			if outputFormat == "json" {
				return format.JSON(os.Stdout, stats)
			}
			format.Stats(os.Stdout, stats)
			return nil
		},
	}
}
