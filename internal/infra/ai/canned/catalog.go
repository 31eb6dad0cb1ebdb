package canned

import "github.com/cropguard/cropguard/pkg/models"

// pesticideInfo carries the catalog numbers needed to fill a dosage entry.
type pesticideInfo struct {
	DosagePerHaKg float64
	PricePerKg    float64
	WaterPerKgL   float64
}

var pesticides = map[string]pesticideInfo{
	"Copper Hydroxide": {DosagePerHaKg: 2.5, PricePerKg: 450, WaterPerKgL: 500},
	"Streptomycin":     {DosagePerHaKg: 0.5, PricePerKg: 1200, WaterPerKgL: 800},
	"Mancozeb":         {DosagePerHaKg: 2.5, PricePerKg: 520, WaterPerKgL: 400},
	"Chlorothalonil":   {DosagePerHaKg: 2.0, PricePerKg: 680, WaterPerKgL: 500},
	"Metalaxyl":        {DosagePerHaKg: 1.5, PricePerKg: 950, WaterPerKgL: 600},
	"Copper Sulfate":   {DosagePerHaKg: 3.0, PricePerKg: 380, WaterPerKgL: 400},
	"Carbendazim":      {DosagePerHaKg: 1.0, PricePerKg: 850, WaterPerKgL: 600},
	"Propiconazole":    {DosagePerHaKg: 0.5, PricePerKg: 1500, WaterPerKgL: 800},
	"Sulfur":           {DosagePerHaKg: 3.0, PricePerKg: 200, WaterPerKgL: 300},
	"Cymoxanil":        {DosagePerHaKg: 0.5, PricePerKg: 1200, WaterPerKgL: 700},
}

// diseaseEntry is one complete catalog answer for a crop disease.
type diseaseEntry struct {
	Disease               string
	Confidence            float64
	Severity              models.Severity
	PrimaryPesticides     []string
	AlternativePesticides []string
	ApplicationMethod     string
	TimingRecommendations []string
	PreventionTips        []string
	FollowUpSchedule      []string
}

var healthyFollowUp = []string{
	"Continue regular monitoring",
	"Apply preventive measures",
	"Maintain good cultural practices",
}

// catalog holds the served disease entries per crop. The first entry of each
// crop is the healthy baseline.
var catalog = map[models.CropType][]diseaseEntry{
	models.CropTomato: {
		{
			Disease: "Healthy", Confidence: 0.92, Severity: models.SeverityHealthy,
			ApplicationMethod: "Preventive measures only",
			PreventionTips: []string{
				"Maintain good plant hygiene",
				"Regular monitoring",
				"Proper nutrition",
				"Adequate spacing",
			},
			FollowUpSchedule: healthyFollowUp,
		},
		{
			Disease: "Early Blight", Confidence: 0.87, Severity: models.SeverityModerate,
			PrimaryPesticides:     []string{"Mancozeb", "Chlorothalonil"},
			AlternativePesticides: []string{"Copper Hydroxide", "Metalaxyl"},
			ApplicationMethod:     "Foliar spray",
			TimingRecommendations: []string{
				"Apply at first sign of symptoms",
				"Best application time: Early morning (6-10 AM) or evening (4-7 PM)",
			},
			PreventionTips: []string{
				"Crop rotation",
				"Remove lower leaves touching soil",
				"Improve air circulation",
				"Avoid water stress",
			},
			FollowUpSchedule: []string{
				"Monitor every 2-3 days",
				"Assess after 10 days",
				"Continue treatment every 10-14 days",
				"Reduce frequency as symptoms improve",
			},
		},
		{
			Disease: "Late Blight", Confidence: 0.85, Severity: models.SeverityHigh,
			PrimaryPesticides:     []string{"Metalaxyl", "Cymoxanil"},
			AlternativePesticides: []string{"Copper Hydroxide"},
			ApplicationMethod:     "Foliar spray (combination treatment recommended)",
			TimingRecommendations: []string{
				"Apply immediately upon detection",
				"Repeat application every 5-7 days",
			},
			PreventionTips: []string{
				"Monitor weather conditions",
				"Use resistant varieties",
				"Ensure good drainage",
				"Apply preventive sprays",
			},
			FollowUpSchedule: []string{
				"Monitor daily for first week",
				"Assess treatment effectiveness after 7 days",
				"Continue treatment every 5-7 days until controlled",
				"Switch to preventive schedule once controlled",
			},
		},
		{
			Disease: "Bacterial Spot", Confidence: 0.73, Severity: models.SeverityLow,
			PrimaryPesticides:     []string{"Copper Hydroxide", "Streptomycin"},
			AlternativePesticides: []string{"Copper Sulfate", "Mancozeb"},
			ApplicationMethod:     "Foliar spray",
			TimingRecommendations: []string{
				"Apply at first sign of symptoms",
				"Apply at 7-10 day intervals during disease season",
			},
			PreventionTips: []string{
				"Use disease-free seeds",
				"Avoid overhead irrigation",
				"Maintain proper plant spacing",
				"Remove infected plant debris",
			},
			FollowUpSchedule: []string{
				"Monitor weekly",
				"Assess after 14 days",
				"Apply preventive treatments as needed",
				"Continue monitoring throughout season",
			},
		},
	},
	models.CropBrinjal: {
		{
			Disease: "Healthy", Confidence: 0.92, Severity: models.SeverityHealthy,
			ApplicationMethod: "Preventive measures only",
			PreventionTips: []string{
				"Regular field inspection",
				"Proper fertilization",
				"Weed management",
				"Integrated pest management",
			},
			FollowUpSchedule: healthyFollowUp,
		},
		{
			Disease: "Bacterial Wilt", Confidence: 0.85, Severity: models.SeverityHigh,
			PrimaryPesticides:     []string{"Streptomycin", "Copper Hydroxide"},
			AlternativePesticides: []string{"Copper Sulfate"},
			ApplicationMethod:     "Soil drench and foliar spray",
			TimingRecommendations: []string{
				"Apply immediately upon detection",
				"Repeat application every 5-7 days",
			},
			PreventionTips: []string{
				"Use resistant varieties",
				"Soil solarization",
				"Crop rotation",
				"Avoid waterlogging",
			},
			FollowUpSchedule: []string{
				"Monitor daily for first week",
				"Assess treatment effectiveness after 7 days",
				"Continue treatment every 5-7 days until controlled",
				"Switch to preventive schedule once controlled",
			},
		},
		{
			Disease: "Cercospora Leaf Spot", Confidence: 0.78, Severity: models.SeverityModerate,
			PrimaryPesticides:     []string{"Mancozeb", "Chlorothalonil"},
			AlternativePesticides: []string{"Copper Hydroxide", "Carbendazim"},
			ApplicationMethod:     "Foliar spray",
			TimingRecommendations: []string{
				"Apply at first sign of symptoms",
				"Apply at 7-10 day intervals during disease season",
			},
			PreventionTips: []string{
				"Remove infected leaves",
				"Improve air circulation",
				"Avoid overhead irrigation",
				"Use clean seeds",
			},
			FollowUpSchedule: []string{
				"Monitor every 2-3 days",
				"Assess after 10 days",
				"Continue treatment every 10-14 days",
				"Reduce frequency as symptoms improve",
			},
		},
	},
	models.CropCapsicum: {
		{
			Disease: "Healthy", Confidence: 0.92, Severity: models.SeverityHealthy,
			ApplicationMethod: "Preventive measures only",
			PreventionTips: []string{
				"Regular monitoring",
				"Balanced nutrition",
				"Proper irrigation",
				"Pest management",
			},
			FollowUpSchedule: healthyFollowUp,
		},
		{
			Disease: "Powdery Mildew", Confidence: 0.78, Severity: models.SeverityModerate,
			PrimaryPesticides:     []string{"Sulfur", "Propiconazole"},
			AlternativePesticides: []string{"Carbendazim"},
			ApplicationMethod:     "Foliar spray",
			TimingRecommendations: []string{
				"Apply at first sign of symptoms",
				"Best application time: Early morning (6-10 AM) or evening (4-7 PM)",
			},
			PreventionTips: []string{
				"Ensure good air circulation",
				"Avoid excessive nitrogen",
				"Monitor humidity levels",
				"Use resistant varieties",
			},
			FollowUpSchedule: []string{
				"Monitor every 2-3 days",
				"Assess after 10 days",
				"Continue treatment every 10-14 days",
				"Reduce frequency as symptoms improve",
			},
		},
		{
			Disease: "Anthracnose", Confidence: 0.85, Severity: models.SeverityHigh,
			PrimaryPesticides:     []string{"Mancozeb", "Chlorothalonil"},
			AlternativePesticides: []string{"Copper Hydroxide", "Carbendazim"},
			ApplicationMethod:     "Foliar spray (combination treatment recommended)",
			TimingRecommendations: []string{
				"Apply immediately upon detection",
				"Repeat application every 5-7 days",
			},
			PreventionTips: []string{
				"Harvest fruits at proper maturity",
				"Handle fruits carefully",
				"Maintain field sanitation",
				"Store in proper conditions",
			},
			FollowUpSchedule: []string{
				"Monitor daily for first week",
				"Assess treatment effectiveness after 7 days",
				"Continue treatment every 5-7 days until controlled",
				"Switch to preventive schedule once controlled",
			},
		},
		{
			Disease: "Bacterial Spot", Confidence: 0.73, Severity: models.SeverityLow,
			PrimaryPesticides:     []string{"Copper Hydroxide", "Streptomycin"},
			AlternativePesticides: []string{"Copper Sulfate", "Mancozeb"},
			ApplicationMethod:     "Foliar spray",
			TimingRecommendations: []string{
				"Apply at first sign of symptoms",
				"Apply at 7-10 day intervals during disease season",
			},
			PreventionTips: []string{
				"Use certified seeds",
				"Avoid water splash",
				"Sanitize tools",
				"Remove plant debris",
			},
			FollowUpSchedule: []string{
				"Monitor weekly",
				"Assess after 14 days",
				"Apply preventive treatments as needed",
				"Continue monitoring throughout season",
			},
		},
	},
}

// DiseasesFor lists the catalog disease names for a crop, healthy first.
func DiseasesFor(crop models.CropType) []string {
	entries := catalog[crop]
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Disease)
	}
	return names
}
