package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	appscans "github.com/cropguard/cropguard/internal/application/scans"
	apptreatments "github.com/cropguard/cropguard/internal/application/treatments"
	appweather "github.com/cropguard/cropguard/internal/application/weather"
	domai "github.com/cropguard/cropguard/internal/domain/ai"
	domain "github.com/cropguard/cropguard/internal/domain/scans"
	"github.com/cropguard/cropguard/internal/domain/treatments"
	"github.com/cropguard/cropguard/internal/infra/ai/canned"
	"github.com/cropguard/cropguard/internal/middleware"
	"github.com/cropguard/cropguard/pkg/models"
)

// Uploads above this are rejected before the image is read into memory.
const maxUploadBytes = 10 << 20

type Router struct {
	scansSvc      *appscans.Service
	weatherSvc    *appweather.Service
	treatmentsSvc *apptreatments.Service
	log           *logrus.Logger
}

func NewRouter(
	scansSvc *appscans.Service,
	weatherSvc *appweather.Service,
	treatmentsSvc *apptreatments.Service,
	hub *Hub,
	log *logrus.Logger,
	checkers map[string]middleware.HealthChecker,
) http.Handler {
	r := &Router{
		scansSvc:      scansSvc,
		weatherSvc:    weatherSvc,
		treatmentsSvc: treatmentsSvc,
		log:           log,
	}
	mux := chi.NewRouter()

	mux.Use(middleware.LoggingMiddleware(log))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	mux.Get("/health", middleware.HealthHandler(checkers))
	if hub != nil {
		mux.Get("/ws", hub.ServeHTTP)
	}

	mux.Route("/api", func(rt chi.Router) {
		rt.With(middleware.RateLimitMiddleware(10, 1)).
			Post("/analyze-image", r.wrap(r.handleAnalyzeImage))
		rt.Get("/scan-history", r.wrap(r.handleScanHistory))
		rt.Get("/scans/{id}", r.wrap(r.handleGetScan))
		rt.Get("/dashboard-stats", r.wrap(r.handleDashboardStats))
		rt.Get("/weather/{location}", r.wrap(r.handleWeather))
		rt.Post("/weather", r.wrap(r.handleRecordWeather))
		rt.Post("/treatments", r.wrap(r.handleRecordTreatment))
		rt.Get("/treatments", r.wrap(r.handleListTreatments))
		rt.Get("/crops", r.wrap(r.handleCrops))
		rt.Get("/diseases/{crop_type}", r.wrap(r.handleDiseases))
	})

	return mux
}

// badRequestError marks client mistakes so wrap can answer 400 instead of 500.
type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return badRequestError{err: err} }

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var bad badRequestError
			switch {
			case errors.As(err, &bad):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, treatments.ErrInvalid):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, sql.ErrNoRows):
				writeError(w, http.StatusNotFound, "not found")
			case errors.Is(err, domai.ErrQuotaExceeded):
				writeError(w, http.StatusTooManyRequests, "analysis quota exceeded, try again later")
			case errors.Is(err, domai.ErrBadAnalysis):
				writeError(w, http.StatusBadGateway, "analysis backend returned an unusable result")
			default:
				r.log.WithError(err).WithField("path", req.URL.Path).Error("request failed")
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}
	}
}

func writeError(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /api/analyze-image
// multipart form: file, crop_type, farm_size, location?, weather_conditions?
func (r *Router) handleAnalyzeImage(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return badRequest(fmt.Errorf("parse multipart form: %w", err))
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return badRequest(fmt.Errorf("file field is required: %w", err))
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return badRequest(fmt.Errorf("read image: %w", err))
	}

	farmSize, err := strconv.ParseFloat(req.FormValue("farm_size"), 64)
	if err != nil {
		return badRequest(fmt.Errorf("farm_size must be a number: %w", err))
	}

	meta := models.ScanMeta{
		CropType:    models.CropType(req.FormValue("crop_type")),
		FarmSizeHa:  farmSize,
		Location:    req.FormValue("location"),
		WeatherHint: req.FormValue("weather_conditions"),
	}
	if err := meta.Validate(); err != nil {
		return badRequest(err)
	}

	result, err := r.scansSvc.AnalyzeImage(req.Context(), appscans.AnalyzeCommand{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Image:       image,
		Meta:        meta,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, result)
}

// GET /api/scan-history?limit=50&crop_type=tomato
func (r *Router) handleScanHistory(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	cropType := req.URL.Query().Get("crop_type")
	if cropType != "" {
		if _, err := models.ParseCropType(cropType); err != nil {
			return badRequest(err)
		}
	}

	entries, err := r.scansSvc.History(req.Context(), limit, cropType)
	if err != nil {
		return err
	}
	return writeJSON(w, entries)
}

// GET /api/scans/{id}
func (r *Router) handleGetScan(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	scan, err := r.scansSvc.Get(req.Context(), domain.ScanID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, scan.HistoryEntry())
}

// GET /api/dashboard-stats
func (r *Router) handleDashboardStats(w http.ResponseWriter, req *http.Request) error {
	stats, err := r.scansSvc.Stats(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, stats)
}

// GET /api/weather/{location}
func (r *Router) handleWeather(w http.ResponseWriter, req *http.Request) error {
	location := chi.URLParam(req, "location")
	report, err := r.weatherSvc.Report(req.Context(), location)
	if err != nil {
		return err
	}
	return writeJSON(w, report)
}

// POST /api/weather
func (r *Router) handleRecordWeather(w http.ResponseWriter, req *http.Request) error {
	var obs models.WeatherObservation
	if err := json.NewDecoder(req.Body).Decode(&obs); err != nil {
		return badRequest(err)
	}
	if obs.Location == "" {
		return badRequest(fmt.Errorf("location is required"))
	}
	if err := r.weatherSvc.Record(req.Context(), obs); err != nil {
		return err
	}
	w.WriteHeader(http.StatusCreated)
	return writeJSON(w, map[string]string{"status": "recorded"})
}

// POST /api/treatments
func (r *Router) handleRecordTreatment(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ScanID              string  `json:"scan_id"`
		PesticideUsed       string  `json:"pesticide_used"`
		DosageAppliedKg     float64 `json:"dosage_applied"`
		AreaTreatedHa       float64 `json:"area_treated"`
		CostIncurred        float64 `json:"cost_incurred"`
		EffectivenessRating int     `json:"effectiveness_rating"`
		Notes               string  `json:"notes"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}

	record, err := r.treatmentsSvc.Record(req.Context(), apptreatments.RecordCommand{
		ScanID:              body.ScanID,
		PesticideUsed:       body.PesticideUsed,
		DosageAppliedKg:     body.DosageAppliedKg,
		AreaTreatedHa:       body.AreaTreatedHa,
		CostIncurred:        body.CostIncurred,
		EffectivenessRating: body.EffectivenessRating,
		Notes:               body.Notes,
	})
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusCreated)
	return writeJSON(w, record)
}

// GET /api/treatments?scan_id=<id>&limit=50
func (r *Router) handleListTreatments(w http.ResponseWriter, req *http.Request) error {
	scanID := req.URL.Query().Get("scan_id")
	if scanID == "" {
		return badRequest(fmt.Errorf("scan_id query parameter is required"))
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	records, err := r.treatmentsSvc.ListByScan(req.Context(), scanID, limit)
	if err != nil {
		return err
	}
	return writeJSON(w, records)
}

// GET /api/crops
func (r *Router) handleCrops(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, map[string]any{"supported_crops": models.SupportedCrops()})
}

// GET /api/diseases/{crop_type}
func (r *Router) handleDiseases(w http.ResponseWriter, req *http.Request) error {
	crop, err := models.ParseCropType(chi.URLParam(req, "crop_type"))
	if err != nil {
		return badRequest(err)
	}
	return writeJSON(w, map[string]any{
		"crop_type": crop,
		"diseases":  canned.DiseasesFor(crop),
	})
}
