package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cropguard/cropguard/pkg/client"
)

var (
	version = "v0.1.0" // Overwritten at build time

	serverURL    string
	outputFormat string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cropguard",
		Short: "Crop disease scanning from the terminal",
		Long: `cropguard submits crop photos for disease analysis and shows treatment
recommendations, scan history and the farm dashboard.`,
		SilenceUsage: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	defaultServer := os.Getenv("CROPGUARD_SERVER")
	if defaultServer == "" {
		defaultServer = "http://127.0.0.1:8000"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "CropGuard API base URL")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json)")

	rootCmd.AddCommand(
		newScanCmd(),
		newHistoryCmd(),
		newStatsCmd(),
		newWeatherCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cropguard version %s\n", version)
		},
	}
}

func apiClient() *client.Client {
	return client.New(serverURL)
}
