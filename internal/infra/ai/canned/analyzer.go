// Package canned serves deterministic catalog-backed scan results. It stands
// in for a trained model in demos and on installations without an AI provider
// configured.
package canned

import (
	"context"
	"fmt"
	"hash/fnv"

	domai "github.com/cropguard/cropguard/internal/domain/ai"
	"github.com/cropguard/cropguard/pkg/models"
)

// Farmers traditionally overspray by about 50%; precision dosing removes
// that excess. Used for the served environmental-impact figures.
const traditionalOveruse = 1.5

type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze picks a catalog entry for the crop, keyed deterministically off the
// image bytes so the same photo always yields the same diagnosis.
func (a *Analyzer) Analyze(_ context.Context, req domai.Request) (*models.ScanResult, error) {
	entries, ok := catalog[req.Meta.CropType]
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("no catalog entries for crop type %q", req.Meta.CropType)
	}

	h := fnv.New32a()
	h.Write(req.Image)
	entry := entries[int(h.Sum32())%len(entries)]

	result := &models.ScanResult{
		DiseaseDetected:    entry.Disease,
		ConfidenceScore:    entry.Confidence,
		SeverityAssessment: entry.Severity,
		PreventionTips:     entry.PreventionTips,
		FollowUpSchedule:   entry.FollowUpSchedule,
		RecommendedTreatment: &models.TreatmentPlan{
			PrimaryPesticides:     entry.PrimaryPesticides,
			AlternativePesticides: entry.AlternativePesticides,
			ApplicationMethod:     entry.ApplicationMethod,
			TimingRecommendations: entry.TimingRecommendations,
		},
	}

	if len(entry.PrimaryPesticides) > 0 {
		info, ok := pesticides[entry.PrimaryPesticides[0]]
		if ok {
			totalKg := info.DosagePerHaKg * req.Meta.FarmSizeHa
			cost := totalKg * info.PricePerKg
			result.RecommendedTreatment.Dosage = &models.Dosage{
				TotalAmountNeeded: fmt.Sprintf("%.2f kg", totalKg),
				CostEstimate:      fmt.Sprintf("₹%.2f", cost),
			}
			result.EnvironmentalImpact = &models.EnvironmentalImpact{
				PesticideReductionPct: 33.3,
				WaterUsageLiters:      totalKg * info.WaterPerKgL,
				CostSavings:           fmt.Sprintf("₹%.2f", cost*(traditionalOveruse-1)),
			}
		}
	}

	return result, nil
}
