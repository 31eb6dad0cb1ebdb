package treatments

import (
	"errors"
	"fmt"
	"time"

	"github.com/cropguard/cropguard/pkg/models"
)

// ErrInvalid wraps every validation failure so transports can answer 400.
var ErrInvalid = errors.New("invalid treatment")

// TreatmentID identifier type
type TreatmentID string

// Treatment records an actual pesticide application against a prior scan.
type Treatment struct {
	ID                  TreatmentID
	ScanID              string
	PesticideUsed       string
	ApplicationDate     time.Time
	DosageAppliedKg     float64
	AreaTreatedHa       float64
	CostIncurred        float64
	EffectivenessRating int // 1-5, 0 when not yet rated
	Notes               string
}

// Validate enforces the invariants a treatment row must satisfy.
func (t *Treatment) Validate() error {
	if t.ScanID == "" {
		return fmt.Errorf("%w: scan_id is required", ErrInvalid)
	}
	if t.PesticideUsed == "" {
		return fmt.Errorf("%w: pesticide_used is required", ErrInvalid)
	}
	if t.AreaTreatedHa <= 0 {
		return fmt.Errorf("%w: area_treated must be greater than zero", ErrInvalid)
	}
	if t.EffectivenessRating < 0 || t.EffectivenessRating > 5 {
		return fmt.Errorf("%w: effectiveness_rating must be between 1 and 5", ErrInvalid)
	}
	return nil
}

// Wire converts the treatment into its API representation.
func (t *Treatment) Wire() models.TreatmentRecord {
	return models.TreatmentRecord{
		ID:                  string(t.ID),
		ScanID:              t.ScanID,
		PesticideUsed:       t.PesticideUsed,
		ApplicationDate:     t.ApplicationDate,
		DosageAppliedKg:     t.DosageAppliedKg,
		AreaTreatedHa:       t.AreaTreatedHa,
		CostIncurred:        t.CostIncurred,
		EffectivenessRating: t.EffectivenessRating,
		Notes:               t.Notes,
	}
}
