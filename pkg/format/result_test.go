package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/cropguard/cropguard/pkg/models"
)

func init() {
	color.NoColor = true
}

func TestConfidence(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.87, "87.0%"},
		{1, "100.0%"},
		{0.955, "95.5%"},
		{0, "0.0%"},
	}
	for _, tc := range cases {
		if got := Confidence(tc.score); got != tc.want {
			t.Errorf("Confidence(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestResultFull(t *testing.T) {
	var buf bytes.Buffer
	Result(&buf, &models.ScanResult{
		DiseaseDetected:    "Early Blight",
		ConfidenceScore:    0.87,
		SeverityAssessment: models.SeverityModerate,
		RecommendedTreatment: &models.TreatmentPlan{
			PrimaryPesticides: []string{"Mancozeb", "Chlorothalonil"},
			Dosage: &models.Dosage{
				TotalAmountNeeded: "6.25 kg",
				CostEstimate:      "₹3250.00",
			},
		},
		EnvironmentalImpact: &models.EnvironmentalImpact{
			PesticideReductionPct: 33.3,
			WaterUsageLiters:      2500,
			CostSavings:           "₹1625.00",
		},
		PreventionTips:   []string{"Rotate crops yearly"},
		FollowUpSchedule: []string{"Re-scan in 7 days"},
	})

	out := buf.String()
	for _, want := range []string{
		"Early Blight",
		"87.0%",
		"MODERATE",
		"Mancozeb, Chlorothalonil",
		"6.25 kg",
		"₹3250.00",
		"33.3%",
		"Rotate crops yearly",
		"Re-scan in 7 days",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResultMinimal(t *testing.T) {
	var buf bytes.Buffer
	Result(&buf, &models.ScanResult{
		DiseaseDetected:    "Healthy",
		ConfidenceScore:    0.95,
		SeverityAssessment: models.SeverityHealthy,
	})

	out := buf.String()
	if !strings.Contains(out, "CROP HEALTHY") {
		t.Errorf("healthy banner missing:\n%s", out)
	}
	if strings.Contains(out, "TREATMENT") {
		t.Errorf("treatment block rendered for a healthy crop:\n%s", out)
	}
	if !strings.Contains(out, "No follow-up scheduled") {
		t.Errorf("missing follow-up has no empty state:\n%s", out)
	}
}

func TestResultEmptyStates(t *testing.T) {
	var buf bytes.Buffer
	Result(&buf, &models.ScanResult{
		DiseaseDetected:      "Early Blight",
		ConfidenceScore:      0.87,
		SeverityAssessment:   models.SeverityModerate,
		RecommendedTreatment: &models.TreatmentPlan{PrimaryPesticides: []string{}},
	})

	out := buf.String()
	for _, want := range []string{
		"No pesticides recommended",
		"Dosage:      Not estimated",
		"No follow-up scheduled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing empty state %q:\n%s", want, out)
		}
	}
}

func TestHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	History(&buf, nil)
	if !strings.Contains(buf.String(), "No scans yet") {
		t.Errorf("empty history has no placeholder:\n%s", buf.String())
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	Stats(&buf, &models.DashboardStats{
		TotalScans:             12,
		HealthyCropsPercentage: 33.3,
		ActiveTreatments:       2,
		CostSavings:            "₹750.00",
		PesticideSaved:         "9.0L",
	})

	out := buf.String()
	for _, want := range []string{"12", "33.3%", "₹750.00", "9.0L"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestWeather(t *testing.T) {
	var buf bytes.Buffer
	Weather(&buf, &models.WeatherReport{
		Location:               "Pune",
		TemperatureC:           25,
		Humidity:               65,
		WindSpeedKmh:           8.5,
		Condition:              "Partly Cloudy",
		UVIndex:                3,
		RainProbability:        15,
		SprayingRecommendation: "Suitable for spraying",
		BestSprayingTimes:      []string{"06:00-10:00", "16:00-19:00"},
	})

	out := buf.String()
	for _, want := range []string{"Pune", "Partly Cloudy", "Suitable for spraying", "06:00-10:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("weather output missing %q:\n%s", want, out)
		}
	}
}
