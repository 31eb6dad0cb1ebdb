package scans

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/cropguard/cropguard/internal/application"
	domai "github.com/cropguard/cropguard/internal/domain/ai"
	domain "github.com/cropguard/cropguard/internal/domain/scans"
	"github.com/cropguard/cropguard/internal/domain/treatments"
	"github.com/cropguard/cropguard/pkg/models"
)

// Notifier is told about completed scans so connected dashboards can refresh.
type Notifier interface {
	ScanCompleted(scan *domain.Scan, result *models.ScanResult)
}

// Service implements the scan use-cases. Safe for concurrent use.
type Service struct {
	Repo       domain.Repository
	Analyzer   domai.Analyzer
	Images     domain.ImageStore
	Treatments treatments.Repository
	Clock      application.Clock
	Notify     Notifier // optional
}

//
// ==== USE CASES ====
//

// AnalyzeCommand carries one uploaded image plus its submission metadata.
type AnalyzeCommand struct {
	Filename    string
	ContentType string
	Image       []byte
	Meta        models.ScanMeta
}

// AnalyzeImage stores the image, runs the analyzer, persists the scan and
// returns the result. The returned result always carries the new scan id.
func (s *Service) AnalyzeImage(ctx context.Context, cmd AnalyzeCommand) (*models.ScanResult, error) {
	if err := cmd.Meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan metadata: %w", err)
	}
	if len(cmd.Image) == 0 {
		return nil, fmt.Errorf("invalid scan metadata: image payload is empty")
	}

	now := s.Clock.Now()
	id := domain.ScanID(uuid.New().String())

	key := fmt.Sprintf("%s/%s_%s", cmd.Meta.CropType, now.Format("20060102_150405"), sanitizeFilename(cmd.Filename))
	imageURL, err := s.Images.Put(ctx, key, bytes.NewReader(cmd.Image), int64(len(cmd.Image)), cmd.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store crop image: %w", err)
	}

	result, err := s.Analyzer.Analyze(ctx, domai.Request{
		Image:    cmd.Image,
		ImageURL: imageURL,
		Meta:     cmd.Meta,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze crop image: %w", err)
	}
	result.ScanID = string(id)

	scan := &domain.Scan{
		ID:              id,
		CropType:        cmd.Meta.CropType,
		DiseaseDetected: result.DiseaseDetected,
		ConfidenceScore: result.ConfidenceScore,
		SeverityLevel:   result.SeverityAssessment,
		FarmSizeHa:      cmd.Meta.FarmSizeHa,
		Location:        cmd.Meta.Location,
		WeatherHint:     cmd.Meta.WeatherHint,
		ImageURL:        imageURL,
		TreatmentCost:   treatmentCost(result),
		ScanTimestamp:   now,
	}
	if err := s.Repo.Save(ctx, scan); err != nil {
		return nil, fmt.Errorf("save scan: %w", err)
	}

	if s.Notify != nil {
		s.Notify.ScanCompleted(scan, result)
	}
	return result, nil
}

// History returns the latest scans, most recent first.
func (s *Service) History(ctx context.Context, limit int, cropType string) ([]models.HistoryEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	list, err := s.Repo.Latest(ctx, limit, cropType)
	if err != nil {
		return nil, err
	}
	entries := make([]models.HistoryEntry, 0, len(list))
	for _, scan := range list {
		entries = append(entries, scan.HistoryEntry())
	}
	return entries, nil
}

// Get returns a single scan by id.
func (s *Service) Get(ctx context.Context, id domain.ScanID) (*domain.Scan, error) {
	return s.Repo.Get(ctx, id)
}

// Stats computes the farmer dashboard aggregates.
func (s *Service) Stats(ctx context.Context) (models.DashboardStats, error) {
	sum, err := s.Repo.Summary(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}

	healthyPct := 0.0
	if sum.TotalScans > 0 {
		healthyPct = math.Round(float64(sum.HealthyScans)/float64(sum.TotalScans)*1000) / 10
	}

	active := 0
	if s.Treatments != nil {
		// A treatment counts as active for two weeks after application.
		if n, err := s.Treatments.CountActive(ctx, 14); err == nil {
			active = n
		}
	}

	return models.DashboardStats{
		TotalScans:             sum.TotalScans,
		HealthyCropsPercentage: healthyPct,
		ActiveTreatments:       active,
		CostSavings:            fmt.Sprintf("₹%.2f", sum.TotalCost*0.25),
		PesticideSaved:         fmt.Sprintf("%.1fL", sum.TotalCost*0.3/100),
	}, nil
}

// treatmentCost pulls a numeric cost out of the result's dosage estimate.
// Estimates arrive as display strings ("₹1234.50"); missing or unparseable
// values persist as zero.
func treatmentCost(r *models.ScanResult) float64 {
	if r.RecommendedTreatment == nil || r.RecommendedTreatment.Dosage == nil {
		return 0
	}
	raw := r.RecommendedTreatment.Dosage.CostEstimate
	raw = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(raw, "₹"), ",", ""))
	cost, err := strconv.ParseFloat(raw, 64)
	if err != nil || cost < 0 {
		return 0
	}
	return cost
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "capture.jpg"
	}
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, " ", "_")
	return name
}
