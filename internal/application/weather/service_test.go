package weather

import (
	"context"
	"database/sql"
	"testing"
	"time"

	domain "github.com/cropguard/cropguard/internal/domain/weather"
	"github.com/cropguard/cropguard/pkg/models"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeRepo struct {
	saved  []*domain.Observation
	latest *domain.Observation
}

func (r *fakeRepo) Save(_ context.Context, o *domain.Observation) error {
	r.saved = append(r.saved, o)
	return nil
}

func (r *fakeRepo) Latest(_ context.Context, location string) (*domain.Observation, error) {
	if r.latest == nil {
		return nil, sql.ErrNoRows
	}
	return r.latest, nil
}

func newService(repo *fakeRepo) *Service {
	return &Service{Repo: repo, Clock: fixedClock{t: time.Date(2026, 8, 28, 7, 0, 0, 0, time.UTC)}}
}

func TestReportDefaultsWhenNoObservations(t *testing.T) {
	svc := newService(&fakeRepo{})

	report, err := svc.Report(context.Background(), "Pune")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Location != "Pune" {
		t.Errorf("location = %q, want Pune", report.Location)
	}
	if report.TemperatureC != 25.0 || report.Humidity != 65 || report.WindSpeedKmh != 8.5 {
		t.Errorf("default reading = %v/%v/%v, want 25.0/65/8.5",
			report.TemperatureC, report.Humidity, report.WindSpeedKmh)
	}
	if report.Condition != "Partly Cloudy" || report.UVIndex != 3 || report.RainProbability != 15 {
		t.Errorf("default conditions wrong: %+v", report)
	}
	if report.SprayingRecommendation != "Suitable for spraying" {
		t.Errorf("recommendation = %q", report.SprayingRecommendation)
	}
	if len(report.BestSprayingTimes) != 2 {
		t.Errorf("best times = %v, want morning and evening windows", report.BestSprayingTimes)
	}
}

func TestReportAdvice(t *testing.T) {
	cases := []struct {
		name string
		obs  domain.Observation
		want string
		wantTimes bool
	}{
		{
			name: "calm and dry",
			obs:  domain.Observation{WindSpeedKmh: 5, RainProbability: 10, Condition: "Clear"},
			want: "Suitable for spraying",
			wantTimes: true,
		},
		{
			name: "windy",
			obs:  domain.Observation{WindSpeedKmh: 22, RainProbability: 10, Condition: "Clear"},
			want: "Avoid spraying: wind above 15 km/h causes drift",
		},
		{
			name: "rain likely",
			obs:  domain.Observation{WindSpeedKmh: 5, RainProbability: 80, Condition: "Cloudy"},
			want: "Postpone spraying: rain will wash off the application",
		},
		{
			name: "raining now",
			obs:  domain.Observation{WindSpeedKmh: 5, RainProbability: 10, Condition: "Light Rain"},
			want: "Postpone spraying: rain will wash off the application",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obs := tc.obs
			obs.Location = "Nashik"
			svc := newService(&fakeRepo{latest: &obs})

			report, err := svc.Report(context.Background(), "Nashik")
			if err != nil {
				t.Fatalf("Report: %v", err)
			}
			if report.SprayingRecommendation != tc.want {
				t.Errorf("recommendation = %q, want %q", report.SprayingRecommendation, tc.want)
			}
			if tc.wantTimes != (len(report.BestSprayingTimes) > 0) {
				t.Errorf("best times = %v, wantTimes = %v", report.BestSprayingTimes, tc.wantTimes)
			}
		})
	}
}

func TestRecordValidatesLocation(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	if err := svc.Record(context.Background(), models.WeatherObservation{}); err == nil {
		t.Error("expected error for missing location")
	}
	if err := svc.Record(context.Background(), models.WeatherObservation{
		Location: "Pune", TemperatureC: 31, Humidity: 40,
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d observations, want 1", len(repo.saved))
	}
	if repo.saved[0].ObservedAt.IsZero() {
		t.Error("observation saved without a timestamp")
	}
}
