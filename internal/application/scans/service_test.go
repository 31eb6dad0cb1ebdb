package scans

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	domai "github.com/cropguard/cropguard/internal/domain/ai"
	domain "github.com/cropguard/cropguard/internal/domain/scans"
	"github.com/cropguard/cropguard/pkg/models"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeRepo struct {
	saved   []*domain.Scan
	latest  []*domain.Scan
	summary domain.StatsSummary
	saveErr error
}

func (r *fakeRepo) Save(_ context.Context, s *domain.Scan) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, s)
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id domain.ScanID) (*domain.Scan, error) {
	for _, s := range r.saved {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) Latest(_ context.Context, limit int, cropType string) ([]*domain.Scan, error) {
	return r.latest, nil
}

func (r *fakeRepo) Summary(_ context.Context) (domain.StatsSummary, error) {
	return r.summary, nil
}

type fakeStore struct {
	keys []string
	url  string
	err  error
}

func (s *fakeStore) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return s.url, nil
}

type fakeAnalyzer struct {
	result *models.ScanResult
	err    error
	got    domai.Request
}

func (a *fakeAnalyzer) Analyze(_ context.Context, req domai.Request) (*models.ScanResult, error) {
	a.got = req
	if a.err != nil {
		return nil, a.err
	}
	return a.result, nil
}

func newService(repo *fakeRepo, store *fakeStore, analyzer *fakeAnalyzer) *Service {
	return &Service{
		Repo:     repo,
		Analyzer: analyzer,
		Images:   store,
		Clock:    fixedClock{t: time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)},
	}
}

func TestAnalyzeImagePersistsScan(t *testing.T) {
	repo := &fakeRepo{}
	store := &fakeStore{url: "http://minio/crop-images/tomato/x.jpg"}
	analyzer := &fakeAnalyzer{result: &models.ScanResult{
		DiseaseDetected:    "Early Blight",
		ConfidenceScore:    0.87,
		SeverityAssessment: models.SeverityModerate,
		RecommendedTreatment: &models.TreatmentPlan{
			PrimaryPesticides: []string{"Mancozeb"},
			Dosage: &models.Dosage{
				TotalAmountNeeded: "6.25 kg",
				CostEstimate:      "₹3,250.00",
			},
		},
	}}
	svc := newService(repo, store, analyzer)

	result, err := svc.AnalyzeImage(context.Background(), AnalyzeCommand{
		Filename:    "tomato.jpg",
		ContentType: "image/jpeg",
		Image:       []byte("jpeg bytes"),
		Meta:        models.ScanMeta{CropType: models.CropTomato, FarmSizeHa: 2.5},
	})
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if result.ScanID == "" {
		t.Error("result has no scan id")
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d scans, want 1", len(repo.saved))
	}
	scan := repo.saved[0]
	if scan.DiseaseDetected != "Early Blight" || scan.ConfidenceScore != 0.87 {
		t.Errorf("persisted %q/%v, want Early Blight/0.87", scan.DiseaseDetected, scan.ConfidenceScore)
	}
	if scan.TreatmentCost != 3250 {
		t.Errorf("treatment cost = %v, want 3250 parsed from the estimate", scan.TreatmentCost)
	}
	if scan.ImageURL != store.url {
		t.Errorf("image url = %q, want %q", scan.ImageURL, store.url)
	}

	if len(store.keys) != 1 {
		t.Fatalf("stored %d images, want 1", len(store.keys))
	}
	if want := "tomato/20260828_103000_tomato.jpg"; store.keys[0] != want {
		t.Errorf("image key = %q, want %q", store.keys[0], want)
	}
}

func TestAnalyzeImageRejectsBadMeta(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeStore{}, &fakeAnalyzer{})

	cases := []struct {
		name string
		cmd  AnalyzeCommand
	}{
		{
			name: "unsupported crop",
			cmd: AnalyzeCommand{
				Image: []byte("x"),
				Meta:  models.ScanMeta{CropType: "wheat", FarmSizeHa: 1},
			},
		},
		{
			name: "zero farm size",
			cmd: AnalyzeCommand{
				Image: []byte("x"),
				Meta:  models.ScanMeta{CropType: models.CropTomato},
			},
		},
		{
			name: "empty image",
			cmd: AnalyzeCommand{
				Meta: models.ScanMeta{CropType: models.CropTomato, FarmSizeHa: 1},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AnalyzeImage(context.Background(), tc.cmd); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAnalyzeImageAnalyzerFailureDoesNotPersist(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeStore{url: "u"}, &fakeAnalyzer{err: domai.ErrQuotaExceeded})

	_, err := svc.AnalyzeImage(context.Background(), AnalyzeCommand{
		Filename: "tomato.jpg",
		Image:    []byte("x"),
		Meta:     models.ScanMeta{CropType: models.CropTomato, FarmSizeHa: 1},
	})
	if !errors.Is(err, domai.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want quota error to surface", err)
	}
	if len(repo.saved) != 0 {
		t.Errorf("scan persisted despite analyzer failure")
	}
}

func TestStatsFormulas(t *testing.T) {
	repo := &fakeRepo{summary: domain.StatsSummary{
		TotalScans:   3,
		HealthyScans: 1,
		TotalCost:    3000,
	}}
	svc := newService(repo, &fakeStore{}, &fakeAnalyzer{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalScans != 3 {
		t.Errorf("total scans = %d, want 3", stats.TotalScans)
	}
	// 1/3 rounded to one decimal place
	if stats.HealthyCropsPercentage != 33.3 {
		t.Errorf("healthy pct = %v, want 33.3", stats.HealthyCropsPercentage)
	}
	if stats.CostSavings != "₹750.00" {
		t.Errorf("cost savings = %q, want ₹750.00", stats.CostSavings)
	}
	if stats.PesticideSaved != "9.0L" {
		t.Errorf("pesticide saved = %q, want 9.0L", stats.PesticideSaved)
	}
}

func TestStatsEmptyDatabase(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeStore{}, &fakeAnalyzer{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.HealthyCropsPercentage != 0 {
		t.Errorf("healthy pct = %v on empty database, want 0", stats.HealthyCropsPercentage)
	}
}

func TestHistoryMapsEntries(t *testing.T) {
	repo := &fakeRepo{latest: []*domain.Scan{
		{
			ID:              "abc",
			CropType:        models.CropTomato,
			DiseaseDetected: "Early Blight",
			ConfidenceScore: 0.87,
			SeverityLevel:   models.SeverityModerate,
			ScanTimestamp:   time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		},
	}}
	svc := newService(repo, &fakeStore{}, &fakeAnalyzer{})

	entries, err := svc.History(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ID != "abc" || entries[0].DiseaseDetected != "Early Blight" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
}

func TestTreatmentCostParsing(t *testing.T) {
	cases := []struct {
		estimate string
		want     float64
	}{
		{"₹3,250.00", 3250},
		{"₹450", 450},
		{"garbage", 0},
		{"", 0},
	}
	for _, tc := range cases {
		r := &models.ScanResult{RecommendedTreatment: &models.TreatmentPlan{
			Dosage: &models.Dosage{CostEstimate: tc.estimate},
		}}
		if got := treatmentCost(r); got != tc.want {
			t.Errorf("treatmentCost(%q) = %v, want %v", tc.estimate, got, tc.want)
		}
	}
	if got := treatmentCost(&models.ScanResult{}); got != 0 {
		t.Errorf("treatmentCost without plan = %v, want 0", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename("../etc/pass wd"); strings.ContainsAny(got, "/ ") {
		t.Errorf("sanitizeFilename left separators in %q", got)
	}
	if got := sanitizeFilename(""); got != "capture.jpg" {
		t.Errorf("empty filename = %q, want capture.jpg", got)
	}
}
