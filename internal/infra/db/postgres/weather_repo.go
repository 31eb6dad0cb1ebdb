package postgres

import (
	"context"
	"database/sql"

	domain "github.com/cropguard/cropguard/internal/domain/weather"
)

type WeatherRepository struct{ db *sql.DB }

func NewWeatherRepository(db *sql.DB) *WeatherRepository { return &WeatherRepository{db: db} }

func (r *WeatherRepository) Save(ctx context.Context, o *domain.Observation) error {
	const q = `
INSERT INTO weather_log
(location, temperature, humidity, wind_speed, weather_condition, uv_index, rain_probability, observed_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id;`
	return r.db.QueryRowContext(ctx, q,
		o.Location, o.TemperatureC, o.Humidity, o.WindSpeedKmh,
		o.Condition, o.UVIndex, o.RainProbability, o.ObservedAt,
	).Scan(&o.ID)
}

func (r *WeatherRepository) Latest(ctx context.Context, location string) (*domain.Observation, error) {
	const q = `
SELECT id, location, temperature, humidity, wind_speed, weather_condition, uv_index, rain_probability, observed_at
FROM weather_log
WHERE location=$1 ORDER BY observed_at DESC LIMIT 1;`
	var o domain.Observation
	if err := r.db.QueryRowContext(ctx, q, location).Scan(
		&o.ID, &o.Location, &o.TemperatureC, &o.Humidity, &o.WindSpeedKmh,
		&o.Condition, &o.UVIndex, &o.RainProbability, &o.ObservedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
