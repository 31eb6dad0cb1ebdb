package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/cropguard/cropguard/pkg/format"
	"github.com/cropguard/cropguard/pkg/models"
	"github.com/cropguard/cropguard/pkg/scanflow"
)

var (
	scanCrop      string
	scanFarmSize  float64
	scanLocation  string
	scanWeather   string
	scanCameraURL string
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [IMAGE]",
		Short: "Submit a crop image for disease analysis",
		Long: `Submit a crop image for analysis and print the result, followed by the
refreshed history and dashboard.

Examples:
  # Scan a photo from disk
  cropguard scan tomato.jpg --crop tomato --farm-size 2.5

  # Capture from an IP camera instead of a file
  cropguard scan --camera http://192.168.1.20/snapshot --crop brinjal --farm-size 1.0`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringVar(&scanCrop, "crop", "", "Crop type (tomato, brinjal, capsicum)")
	cmd.Flags().Float64Var(&scanFarmSize, "farm-size", 0, "Farm size in hectares")
	cmd.Flags().StringVar(&scanLocation, "location", "", "Farm location")
	cmd.Flags().StringVar(&scanWeather, "weather", "", "Current weather conditions, free text")
	cmd.Flags().StringVar(&scanCameraURL, "camera", "", "Camera snapshot URL, used instead of an image file")
	cmd.MarkFlagRequired("crop")
	cmd.MarkFlagRequired("farm-size")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && scanCameraURL == "" {
		return fmt.Errorf("give an image file or --camera URL")
	}
	if len(args) == 1 && scanCameraURL != "" {
		return fmt.Errorf("give either an image file or --camera, not both")
	}

	session := scanflow.NewSession(apiClient())
	defer session.Close()

	ctx := cmd.Context()

	if scanCameraURL != "" {
		if err := session.StartCamera(ctx, scanflow.NewSnapshotCamera(scanCameraURL)); err != nil {
			return err
		}
		if err := session.CaptureFrame(ctx); err != nil {
			return err
		}
	} else {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := session.SelectFile(filepath.Base(path), data); err != nil {
			return err
		}
	}

	meta := models.ScanMeta{
		CropType:    models.CropType(scanCrop),
		FarmSizeHa:  scanFarmSize,
		Location:    scanLocation,
		WeatherHint: scanWeather,
	}

	// Each refresh renders into its own buffer so the two panels never
	// interleave on stdout.
	api := apiClient()
	session.RefreshHistory = func(ctx context.Context) {
		entries, err := api.ScanHistory(ctx, 5, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "history refresh failed: %v\n", err)
			return
		}
		var buf bytes.Buffer
		format.History(&buf, entries)
		os.Stdout.Write(buf.Bytes())
	}
	session.RefreshStats = func(ctx context.Context) {
		stats, err := api.DashboardStats(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stats refresh failed: %v\n", err)
			return
		}
		var buf bytes.Buffer
		format.Stats(&buf, stats)
		os.Stdout.Write(buf.Bytes())
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Analyzing crop image..."
	s.Start()
	result, err := session.Submit(ctx, meta)
	s.Stop()
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return format.JSON(os.Stdout, result)
	}
	format.Result(os.Stdout, result)

	// History and dashboard panels arrive from the refresh callbacks.
	session.WaitRefresh()
	return nil
}
