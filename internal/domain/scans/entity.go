package scans

import (
	"time"

	"github.com/cropguard/cropguard/pkg/models"
)

// ScanID identifier type
type ScanID string

// Aggregate Root: Scan, one analyzed crop image and what came out of it.
type Scan struct {
	ID              ScanID          `json:"id"`
	CropType        models.CropType `json:"crop_type"`
	DiseaseDetected string          `json:"disease_detected"`
	ConfidenceScore float64         `json:"confidence_score"`
	SeverityLevel   models.Severity `json:"severity_level"`
	FarmSizeHa      float64         `json:"farm_size"`
	Location        string          `json:"location,omitempty"`
	WeatherHint     string          `json:"weather_conditions,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	TreatmentCost   float64         `json:"treatment_cost"`
	ScanTimestamp   time.Time       `json:"scan_timestamp"`
}

// HistoryEntry converts the aggregate into its wire representation.
func (s *Scan) HistoryEntry() models.HistoryEntry {
	return models.HistoryEntry{
		ID:              string(s.ID),
		CropType:        s.CropType,
		DiseaseDetected: s.DiseaseDetected,
		ConfidenceScore: s.ConfidenceScore,
		SeverityLevel:   s.SeverityLevel,
		ScanTimestamp:   s.ScanTimestamp,
		TreatmentCost:   s.TreatmentCost,
		Location:        s.Location,
	}
}

// StatsSummary holds the raw aggregates the dashboard is computed from.
type StatsSummary struct {
	TotalScans   int
	HealthyScans int
	TotalCost    float64
}
