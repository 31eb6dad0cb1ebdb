package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/cropguard/cropguard/internal/domain/scans"
)

type ScanRepository struct {
	db *sql.DB
}

func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Save insert/update Scan record
func (r *ScanRepository) Save(ctx context.Context, s *domain.Scan) error {
	const q = `
INSERT INTO crop_scans
(id, crop_type, disease_detected, confidence_score, severity_level,
 farm_size, location, weather_conditions, image_url, treatment_cost, scan_timestamp)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 disease_detected=VALUES(disease_detected),
 confidence_score=VALUES(confidence_score),
 severity_level=VALUES(severity_level),
 image_url=VALUES(image_url),
 treatment_cost=VALUES(treatment_cost);
`
	ts := s.ScanTimestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		s.ID, s.CropType, s.DiseaseDetected, s.ConfidenceScore, s.SeverityLevel,
		s.FarmSizeHa, s.Location, s.WeatherHint, s.ImageURL, s.TreatmentCost, ts,
	)
	return err
}

// Get by ID
func (r *ScanRepository) Get(ctx context.Context, id domain.ScanID) (*domain.Scan, error) {
	const q = `
SELECT id, crop_type, disease_detected, confidence_score, severity_level,
       farm_size, location, weather_conditions, image_url, treatment_cost, scan_timestamp
FROM crop_scans
WHERE id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, id)
	return scanRow(row.Scan)
}

// Latest scans, most recent first, optionally filtered by crop type
func (r *ScanRepository) Latest(ctx context.Context, limit int, cropType string) ([]*domain.Scan, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `
SELECT id, crop_type, disease_detected, confidence_score, severity_level,
       farm_size, location, weather_conditions, image_url, treatment_cost, scan_timestamp
FROM crop_scans
`
	args := []any{}
	if cropType != "" {
		q += "WHERE crop_type=?\n"
		args = append(args, cropType)
	}
	q += "ORDER BY scan_timestamp DESC LIMIT ?;"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Scan
	for rows.Next() {
		s, err := scanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Summary raw aggregates for the dashboard
func (r *ScanRepository) Summary(ctx context.Context) (domain.StatsSummary, error) {
	const q = `
SELECT COUNT(*) AS total_scans,
       COALESCE(SUM(disease_detected='Healthy'),0) AS healthy_scans,
       COALESCE(SUM(treatment_cost),0) AS total_cost
FROM crop_scans;
`
	var sum domain.StatsSummary
	if err := r.db.QueryRowContext(ctx, q).Scan(&sum.TotalScans, &sum.HealthyScans, &sum.TotalCost); err != nil {
		return domain.StatsSummary{}, err
	}
	return sum, nil
}

// scanRow maps one row into the aggregate, shared by Get and Latest.
func scanRow(scan func(dest ...any) error) (*domain.Scan, error) {
	var s domain.Scan
	var location, weather, imageURL sql.NullString
	var cost sql.NullFloat64
	if err := scan(
		&s.ID, &s.CropType, &s.DiseaseDetected, &s.ConfidenceScore, &s.SeverityLevel,
		&s.FarmSizeHa, &location, &weather, &imageURL, &cost, &s.ScanTimestamp,
	); err != nil {
		return nil, err
	}
	s.Location = location.String
	s.WeatherHint = weather.String
	s.ImageURL = imageURL.String
	s.TreatmentCost = cost.Float64
	return &s, nil
}
