package httpserver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cropguard/cropguard/internal/application"
	appscans "github.com/cropguard/cropguard/internal/application/scans"
	apptreatments "github.com/cropguard/cropguard/internal/application/treatments"
	appweather "github.com/cropguard/cropguard/internal/application/weather"
	scansdom "github.com/cropguard/cropguard/internal/domain/scans"
	treatdom "github.com/cropguard/cropguard/internal/domain/treatments"
	weatherdom "github.com/cropguard/cropguard/internal/domain/weather"
	"github.com/cropguard/cropguard/internal/infra/ai/canned"
	"github.com/cropguard/cropguard/pkg/models"
)

type memScanRepo struct {
	scans []*scansdom.Scan
}

func (r *memScanRepo) Save(_ context.Context, s *scansdom.Scan) error {
	r.scans = append(r.scans, s)
	return nil
}

func (r *memScanRepo) Get(_ context.Context, id scansdom.ScanID) (*scansdom.Scan, error) {
	for _, s := range r.scans {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memScanRepo) Latest(_ context.Context, limit int, cropType string) ([]*scansdom.Scan, error) {
	out := []*scansdom.Scan{}
	for i := len(r.scans) - 1; i >= 0 && len(out) < limit; i-- {
		if cropType != "" && string(r.scans[i].CropType) != cropType {
			continue
		}
		out = append(out, r.scans[i])
	}
	return out, nil
}

func (r *memScanRepo) Summary(_ context.Context) (scansdom.StatsSummary, error) {
	sum := scansdom.StatsSummary{TotalScans: len(r.scans)}
	for _, s := range r.scans {
		if s.DiseaseDetected == "Healthy" {
			sum.HealthyScans++
		}
		sum.TotalCost += s.TreatmentCost
	}
	return sum, nil
}

type memImageStore struct{}

func (memImageStore) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	io.Copy(io.Discard, r)
	return "http://store/crop-images/" + key, nil
}

type memWeatherRepo struct {
	latest *weatherdom.Observation
}

func (r *memWeatherRepo) Save(_ context.Context, o *weatherdom.Observation) error {
	r.latest = o
	return nil
}

func (r *memWeatherRepo) Latest(_ context.Context, location string) (*weatherdom.Observation, error) {
	if r.latest == nil || r.latest.Location != location {
		return nil, sql.ErrNoRows
	}
	return r.latest, nil
}

type memTreatmentRepo struct {
	treatments []*treatdom.Treatment
}

func (r *memTreatmentRepo) Save(_ context.Context, t *treatdom.Treatment) error {
	r.treatments = append(r.treatments, t)
	return nil
}

func (r *memTreatmentRepo) ListByScan(_ context.Context, scanID string, limit int) ([]*treatdom.Treatment, error) {
	out := []*treatdom.Treatment{}
	for _, t := range r.treatments {
		if t.ScanID == scanID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTreatmentRepo) CountActive(_ context.Context, sinceDays int) (int, error) {
	return len(r.treatments), nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memScanRepo) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	scanRepo := &memScanRepo{}
	treatmentRepo := &memTreatmentRepo{}
	clock := application.SystemClock{}

	scansSvc := &appscans.Service{
		Repo:       scanRepo,
		Analyzer:   canned.NewAnalyzer(),
		Images:     memImageStore{},
		Treatments: treatmentRepo,
		Clock:      clock,
	}
	weatherSvc := &appweather.Service{Repo: &memWeatherRepo{}, Clock: clock}
	treatmentsSvc := &apptreatments.Service{Repo: treatmentRepo, Clock: clock}

	handler := NewRouter(scansSvc, weatherSvc, treatmentsSvc, NewHub(log), log, nil)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, scanRepo
}

func analyzeRequest(t *testing.T, url string, cropType, farmSize string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "tomato.jpg")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("jpeg bytes"))
	mw.WriteField("crop_type", cropType)
	mw.WriteField("farm_size", farmSize)
	mw.Close()

	resp, err := http.Post(url+"/api/analyze-image", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestAnalyzeImageEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	resp := analyzeRequest(t, srv.URL, "tomato", "2.5")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	var result models.ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.ScanID == "" || result.DiseaseDetected == "" {
		t.Errorf("incomplete result %+v", result)
	}
	if len(repo.scans) != 1 {
		t.Errorf("persisted %d scans, want 1", len(repo.scans))
	}
}

func TestAnalyzeImageBadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name     string
		cropType string
		farmSize string
	}{
		{"unsupported crop", "wheat", "2.5"},
		{"zero farm size", "tomato", "0"},
		{"non-numeric farm size", "tomato", "big"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := analyzeRequest(t, srv.URL, tc.cropType, tc.farmSize)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var body struct {
				Detail string `json:"detail"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Detail == "" {
				t.Errorf("error body has no detail (err=%v)", err)
			}
		})
	}
}

func TestScanHistoryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	// Seed two scans through the API.
	for i := 0; i < 2; i++ {
		resp := analyzeRequest(t, srv.URL, "tomato", "1.0")
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/api/scan-history?limit=10")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var entries []models.HistoryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}

	resp, err = http.Get(srv.URL + "/api/scan-history?crop_type=mango")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad crop filter status = %d, want 400", resp.StatusCode)
	}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/dashboard-stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var stats models.DashboardStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalScans != 0 || stats.CostSavings == "" {
		t.Errorf("unexpected empty-db stats %+v", stats)
	}
}

func TestWeatherEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/weather/Pune")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var report models.WeatherReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Location != "Pune" || report.SprayingRecommendation == "" {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestRecordWeatherEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	obs := models.WeatherObservation{
		Location: "Nashik", TemperatureC: 31, Humidity: 40, WindSpeedKmh: 20, Condition: "Clear",
	}
	payload, _ := json.Marshal(obs)
	resp, err := http.Post(srv.URL+"/api/weather", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	// The logged observation now drives the report.
	resp, err = http.Get(srv.URL + "/api/weather/Nashik")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var report models.WeatherReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.WindSpeedKmh != 20 {
		t.Errorf("report not built from the logged observation: %+v", report)
	}
	if report.SprayingRecommendation != "Avoid spraying: wind above 15 km/h causes drift" {
		t.Errorf("recommendation = %q", report.SprayingRecommendation)
	}
}

func TestTreatmentEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	// Missing scan_id fails validation.
	resp, err := http.Post(srv.URL+"/api/treatments", "application/json",
		bytes.NewReader([]byte(`{"pesticide_used":"Mancozeb","area_treated":2}`)))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	payload := []byte(`{"scan_id":"scan-1","pesticide_used":"Mancozeb","dosage_applied":6.25,"area_treated":2.5,"cost_incurred":3250,"effectiveness_rating":4}`)
	resp, err = http.Post(srv.URL+"/api/treatments", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	var record models.TreatmentRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record.ID == "" || record.ApplicationDate.IsZero() {
		t.Errorf("incomplete record %+v", record)
	}

	resp, err = http.Get(srv.URL + "/api/treatments?scan_id=scan-1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var records []models.TreatmentRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestCatalogEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/crops")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var crops struct {
		SupportedCrops []string `json:"supported_crops"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&crops); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(crops.SupportedCrops) != 3 {
		t.Errorf("crops = %v, want 3 entries", crops.SupportedCrops)
	}

	resp, err = http.Get(srv.URL + "/api/diseases/tomato")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var diseases struct {
		CropType string   `json:"crop_type"`
		Diseases []string `json:"diseases"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&diseases); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(diseases.Diseases) == 0 {
		t.Error("no diseases listed for tomato")
	}

	resp, err = http.Get(srv.URL + "/api/diseases/wheat")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown crop status = %d, want 400", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var health struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("status = %q", health.Status)
	}
}
