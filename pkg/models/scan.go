package models

import (
	"fmt"
	"strings"
	"time"
)

// CropType enum
type CropType string

const (
	CropTomato   CropType = "tomato"
	CropBrinjal  CropType = "brinjal"
	CropCapsicum CropType = "capsicum"
)

// SupportedCrops lists every crop the platform can analyze.
func SupportedCrops() []CropType {
	return []CropType{CropTomato, CropBrinjal, CropCapsicum}
}

// ParseCropType validates a crop type string.
func ParseCropType(s string) (CropType, error) {
	c := CropType(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CropTomato, CropBrinjal, CropCapsicum:
		return c, nil
	}
	return "", fmt.Errorf("unsupported crop type %q (supported: tomato, brinjal, capsicum)", s)
}

// Severity enum
type Severity string

const (
	SeverityHealthy  Severity = "healthy"
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// ScanMeta is the metadata a farmer attaches to an image submission.
type ScanMeta struct {
	CropType    CropType `json:"crop_type"`
	FarmSizeHa  float64  `json:"farm_size"`
	Location    string   `json:"location,omitempty"`
	WeatherHint string   `json:"weather_conditions,omitempty"`
}

// Validate checks the metadata before any network call is made.
func (m ScanMeta) Validate() error {
	if _, err := ParseCropType(string(m.CropType)); err != nil {
		return err
	}
	if m.FarmSizeHa <= 0 {
		return fmt.Errorf("farm size must be greater than zero hectares, got %v", m.FarmSizeHa)
	}
	return nil
}

// Dosage describes how much of the primary pesticide is needed and what it costs.
type Dosage struct {
	TotalAmountNeeded string `json:"total_amount_needed"`
	CostEstimate      string `json:"cost_estimate"`
}

// TreatmentPlan is the recommended course of action for a detected disease.
type TreatmentPlan struct {
	PrimaryPesticides     []string `json:"primary_pesticides"`
	AlternativePesticides []string `json:"alternative_pesticides,omitempty"`
	ApplicationMethod     string   `json:"application_method,omitempty"`
	Dosage                *Dosage  `json:"dosage,omitempty"`
	TimingRecommendations []string `json:"timing_recommendations,omitempty"`
}

// EnvironmentalImpact quantifies what precision treatment saves over blanket spraying.
type EnvironmentalImpact struct {
	PesticideReductionPct float64 `json:"pesticide_reduction_pct"`
	WaterUsageLiters      float64 `json:"water_usage_liters"`
	CostSavings           string  `json:"cost_savings"`
}

// ScanResult is the structured analysis response. Every field past the
// detection triple is optional; renderers must cope with its absence.
type ScanResult struct {
	ScanID               string               `json:"scan_id,omitempty"`
	DiseaseDetected      string               `json:"disease_detected"`
	ConfidenceScore      float64              `json:"confidence_score"`
	SeverityAssessment   Severity             `json:"severity_assessment"`
	RecommendedTreatment *TreatmentPlan       `json:"recommended_treatment,omitempty"`
	EnvironmentalImpact  *EnvironmentalImpact `json:"environmental_impact,omitempty"`
	PreventionTips       []string             `json:"prevention_tips,omitempty"`
	FollowUpSchedule     []string             `json:"follow_up_schedule,omitempty"`
}

// Healthy reports whether the scan found no disease.
func (r ScanResult) Healthy() bool {
	return strings.EqualFold(r.DiseaseDetected, "Healthy") || r.SeverityAssessment == SeverityHealthy
}

// HistoryEntry is one row of the scan history feed, most recent first.
type HistoryEntry struct {
	ID              string    `json:"id"`
	CropType        CropType  `json:"crop_type"`
	DiseaseDetected string    `json:"disease_detected"`
	ConfidenceScore float64   `json:"confidence_score"`
	SeverityLevel   Severity  `json:"severity_level"`
	ScanTimestamp   time.Time `json:"scan_timestamp"`
	TreatmentCost   float64   `json:"treatment_cost"`
	Location        string    `json:"location,omitempty"`
}

// DashboardStats is the aggregate view on the farmer dashboard.
type DashboardStats struct {
	TotalScans             int     `json:"total_scans"`
	HealthyCropsPercentage float64 `json:"healthy_crops_percentage"`
	ActiveTreatments       int     `json:"active_treatments"`
	CostSavings            string  `json:"cost_savings"`
	PesticideSaved         string  `json:"pesticide_saved"`
}

// TreatmentRecord tracks an actual pesticide application against a scan.
type TreatmentRecord struct {
	ID                  string    `json:"id"`
	ScanID              string    `json:"scan_id"`
	PesticideUsed       string    `json:"pesticide_used"`
	ApplicationDate     time.Time `json:"application_date"`
	DosageAppliedKg     float64   `json:"dosage_applied"`
	AreaTreatedHa       float64   `json:"area_treated"`
	CostIncurred        float64   `json:"cost_incurred"`
	EffectivenessRating int       `json:"effectiveness_rating,omitempty"` // 1-5
	Notes               string    `json:"notes,omitempty"`
}
