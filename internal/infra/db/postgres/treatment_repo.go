package postgres

import (
	"context"
	"database/sql"

	domain "github.com/cropguard/cropguard/internal/domain/treatments"
)

type TreatmentRepository struct{ db *sql.DB }

func NewTreatmentRepository(db *sql.DB) *TreatmentRepository { return &TreatmentRepository{db: db} }

func (r *TreatmentRepository) Save(ctx context.Context, t *domain.Treatment) error {
	const q = `
INSERT INTO treatment_history
(id, scan_id, pesticide_used, application_date, dosage_applied, area_treated,
 cost_incurred, effectiveness_rating, notes)
VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,0),$9)
ON CONFLICT (id) DO UPDATE SET
 effectiveness_rating = EXCLUDED.effectiveness_rating,
 notes = EXCLUDED.notes;`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.ScanID, t.PesticideUsed, t.ApplicationDate, t.DosageAppliedKg,
		t.AreaTreatedHa, t.CostIncurred, t.EffectivenessRating, t.Notes,
	)
	return err
}

func (r *TreatmentRepository) ListByScan(ctx context.Context, scanID string, limit int) ([]*domain.Treatment, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, scan_id, pesticide_used, application_date, dosage_applied, area_treated,
       cost_incurred, effectiveness_rating, notes
FROM treatment_history
WHERE scan_id=$1 ORDER BY application_date DESC LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, scanID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Treatment
	for rows.Next() {
		var t domain.Treatment
		var rating sql.NullInt64
		var notes sql.NullString
		if err := rows.Scan(
			&t.ID, &t.ScanID, &t.PesticideUsed, &t.ApplicationDate, &t.DosageAppliedKg,
			&t.AreaTreatedHa, &t.CostIncurred, &rating, &notes,
		); err != nil {
			return nil, err
		}
		t.EffectivenessRating = int(rating.Int64)
		t.Notes = notes.String
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *TreatmentRepository) CountActive(ctx context.Context, sinceDays int) (int, error) {
	if sinceDays <= 0 {
		sinceDays = 14
	}
	const q = `
SELECT COUNT(*) FROM treatment_history
WHERE application_date >= NOW() - ($1 || ' days')::interval;`
	var n int
	if err := r.db.QueryRowContext(ctx, q, sinceDays).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
