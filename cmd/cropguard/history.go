package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cropguard/cropguard/pkg/format"
)

var (
	historyLimit int
	historyCrop  string
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the scan history, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := apiClient().ScanHistory(cmd.Context(), historyLimit, historyCrop)
			if err != nil {
				return err
			}
			if outputFormat == "json" {
				return format.JSON(os.Stdout, entries)
			}
			format.History(os.Stdout, entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of scans to show")
	cmd.Flags().StringVar(&historyCrop, "crop", "", "Filter by crop type")

	return cmd
}
