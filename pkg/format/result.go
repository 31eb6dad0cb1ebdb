// Package format renders analysis results, history and dashboard panels for
// the terminal.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/cropguard/cropguard/pkg/models"
)

// JSON writes v as indented JSON, for machine-readable output.
func JSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// Confidence renders a 0..1 score the way the dashboard shows it, one
// decimal place: 0.87 -> "87.0%".
func Confidence(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// Result renders one analysis. Every field past the detection triple is
// optional; absent ones render an explicit empty state instead of vanishing.
// A healthy crop suppresses the treatment block entirely.
func Result(w io.Writer, r *models.ScanResult) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	fmt.Fprintln(w)
	if r.Healthy() {
		green.Fprintln(w, "✅ CROP HEALTHY")
	} else {
		severityColor(r.SeverityAssessment).Fprintf(w, "🦠 DISEASE DETECTED: %s\n", r.DiseaseDetected)
	}
	fmt.Fprintf(w, "   Confidence: %s\n", Confidence(r.ConfidenceScore))
	fmt.Fprintf(w, "   Severity:   %s\n\n", strings.ToUpper(string(r.SeverityAssessment)))

	if !r.Healthy() {
		cyan.Fprintln(w, "💊 RECOMMENDED TREATMENT:")
		t := r.RecommendedTreatment
		if t == nil || len(t.PrimaryPesticides) == 0 {
			fmt.Fprintln(w, "   No pesticides recommended")
		} else {
			fmt.Fprintf(w, "   Primary:     %s\n", strings.Join(t.PrimaryPesticides, ", "))
		}
		if t != nil {
			if len(t.AlternativePesticides) > 0 {
				fmt.Fprintf(w, "   Alternative: %s\n", strings.Join(t.AlternativePesticides, ", "))
			}
			if t.ApplicationMethod != "" {
				fmt.Fprintf(w, "   Method:      %s\n", t.ApplicationMethod)
			}
		}
		if t == nil || t.Dosage == nil {
			fmt.Fprintln(w, "   Dosage:      Not estimated")
		} else {
			fmt.Fprintf(w, "   Dosage:      %s\n", t.Dosage.TotalAmountNeeded)
			fmt.Fprintf(w, "   Cost:        %s\n", t.Dosage.CostEstimate)
		}
		if t != nil {
			for _, timing := range t.TimingRecommendations {
				fmt.Fprintf(w, "   Timing:      %s\n", timing)
			}
		}
		fmt.Fprintln(w)
	}

	if e := r.EnvironmentalImpact; e != nil {
		green.Fprintln(w, "🌱 ENVIRONMENTAL IMPACT:")
		fmt.Fprintf(w, "   Pesticide reduction: %.1f%%\n", e.PesticideReductionPct)
		fmt.Fprintf(w, "   Water needed:        %.1fL\n", e.WaterUsageLiters)
		if e.CostSavings != "" {
			fmt.Fprintf(w, "   Cost savings:        %s\n", e.CostSavings)
		}
		fmt.Fprintln(w)
	}

	if len(r.PreventionTips) > 0 {
		yellow.Fprintln(w, "🛡️  PREVENTION TIPS:")
		for i, tip := range r.PreventionTips {
			fmt.Fprintf(w, "   %d. %s\n", i+1, tip)
		}
		fmt.Fprintln(w)
	}

	cyan.Fprintln(w, "📅 FOLLOW-UP SCHEDULE:")
	if len(r.FollowUpSchedule) == 0 {
		fmt.Fprintln(w, "   No follow-up scheduled")
	}
	for _, step := range r.FollowUpSchedule {
		fmt.Fprintf(w, "   • %s\n", step)
	}
	fmt.Fprintln(w)
}

// History renders the scan history feed, most recent first.
func History(w io.Writer, entries []models.HistoryEntry) {
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "📜 SCAN HISTORY:")
	if len(entries) == 0 {
		fmt.Fprintln(w, "   No scans yet.")
		fmt.Fprintln(w)
		return
	}
	for _, e := range entries {
		icon := "🦠"
		if strings.EqualFold(e.DiseaseDetected, "Healthy") {
			icon = "✅"
		}
		fmt.Fprintf(w, "   %s  %s  %-9s %-24s %s\n",
			e.ScanTimestamp.Format("2006-01-02 15:04"),
			icon,
			e.CropType,
			e.DiseaseDetected,
			Confidence(e.ConfidenceScore),
		)
	}
	fmt.Fprintln(w)
}

// Stats renders the dashboard aggregates.
func Stats(w io.Writer, s *models.DashboardStats) {
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "📊 DASHBOARD:")
	fmt.Fprintf(w, "   Total scans:       %d\n", s.TotalScans)
	fmt.Fprintf(w, "   Healthy crops:     %.1f%%\n", s.HealthyCropsPercentage)
	fmt.Fprintf(w, "   Active treatments: %d\n", s.ActiveTreatments)
	fmt.Fprintf(w, "   Cost savings:      %s\n", s.CostSavings)
	fmt.Fprintf(w, "   Pesticide saved:   %s\n", s.PesticideSaved)
	fmt.Fprintln(w)
}

// Weather renders the report with its spraying advice.
func Weather(w io.Writer, r *models.WeatherReport) {
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintf(w, "🌤  WEATHER: %s\n", r.Location)
	fmt.Fprintf(w, "   %s, %.1f°C, humidity %d%%\n", r.Condition, r.TemperatureC, r.Humidity)
	fmt.Fprintf(w, "   Wind %.1f km/h, UV index %d, rain chance %d%%\n",
		r.WindSpeedKmh, r.UVIndex, r.RainProbability)
	fmt.Fprintf(w, "   Spraying: %s\n", r.SprayingRecommendation)
	if len(r.BestSprayingTimes) > 0 {
		fmt.Fprintf(w, "   Best times: %s\n", strings.Join(r.BestSprayingTimes, ", "))
	}
	fmt.Fprintln(w)
}

func severityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityHigh:
		return color.New(color.FgRed, color.Bold)
	case models.SeverityModerate:
		return color.New(color.FgYellow, color.Bold)
	case models.SeverityLow:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgWhite, color.Bold)
	}
}
