package treatments

import (
	"context"

	"github.com/google/uuid"

	"github.com/cropguard/cropguard/internal/application"
	domain "github.com/cropguard/cropguard/internal/domain/treatments"
	"github.com/cropguard/cropguard/pkg/models"
)

// Service implements treatment-tracking use-cases.
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

// RecordCommand is the payload for logging a pesticide application.
type RecordCommand struct {
	ScanID              string
	PesticideUsed       string
	DosageAppliedKg     float64
	AreaTreatedHa       float64
	CostIncurred        float64
	EffectivenessRating int
	Notes               string
}

// Record logs a treatment against a scan and returns its wire form.
func (s *Service) Record(ctx context.Context, cmd RecordCommand) (models.TreatmentRecord, error) {
	t := &domain.Treatment{
		ID:                  domain.TreatmentID(uuid.New().String()),
		ScanID:              cmd.ScanID,
		PesticideUsed:       cmd.PesticideUsed,
		ApplicationDate:     s.Clock.Now(),
		DosageAppliedKg:     cmd.DosageAppliedKg,
		AreaTreatedHa:       cmd.AreaTreatedHa,
		CostIncurred:        cmd.CostIncurred,
		EffectivenessRating: cmd.EffectivenessRating,
		Notes:               cmd.Notes,
	}
	if err := t.Validate(); err != nil {
		return models.TreatmentRecord{}, err
	}
	if err := s.Repo.Save(ctx, t); err != nil {
		return models.TreatmentRecord{}, err
	}
	return t.Wire(), nil
}

// ListByScan returns the treatments applied against one scan.
func (s *Service) ListByScan(ctx context.Context, scanID string, limit int) ([]models.TreatmentRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := s.Repo.ListByScan(ctx, scanID, limit)
	if err != nil {
		return nil, err
	}
	records := make([]models.TreatmentRecord, 0, len(list))
	for _, t := range list {
		records = append(records, t.Wire())
	}
	return records, nil
}
