package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	domai "github.com/cropguard/cropguard/internal/domain/ai"
	scansdom "github.com/cropguard/cropguard/internal/domain/scans"
	treatdom "github.com/cropguard/cropguard/internal/domain/treatments"
	weatherdom "github.com/cropguard/cropguard/internal/domain/weather"

	"github.com/cropguard/cropguard/internal/application"
	appscans "github.com/cropguard/cropguard/internal/application/scans"
	apptreatments "github.com/cropguard/cropguard/internal/application/treatments"
	appweather "github.com/cropguard/cropguard/internal/application/weather"
	"github.com/cropguard/cropguard/internal/config"
	"github.com/cropguard/cropguard/internal/infra/ai/canned"
	openaiClient "github.com/cropguard/cropguard/internal/infra/ai/openai"
	mysqlp "github.com/cropguard/cropguard/internal/infra/db/mysql"
	postgresp "github.com/cropguard/cropguard/internal/infra/db/postgres"
	sqlitep "github.com/cropguard/cropguard/internal/infra/db/sqlite"
	"github.com/cropguard/cropguard/internal/infra/httpserver"
	minioStore "github.com/cropguard/cropguard/internal/infra/storage"
	"github.com/cropguard/cropguard/internal/logger"
	"github.com/cropguard/cropguard/internal/middleware"
)

func main() {
	log := logger.Logger

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.WithError(err).Fatal("config load error")
	}

	ctx := context.Background()

	db, scanRepo, weatherRepo, treatmentRepo, err := openDatabase(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("database connect error")
	}
	defer db.Close()

	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.WithError(err).Fatal("minio init error")
	}

	var analyzer domai.Analyzer
	switch cfg.AI.Provider {
	case "openai":
		analyzer = openaiClient.NewClient(cfg.AI.APIKey, cfg.AI.Model)
	default:
		analyzer = canned.NewAnalyzer()
	}
	log.WithField("provider", cfg.AI.Provider).Info("analyzer ready")

	hub := httpserver.NewHub(log)

	scansSvc := &appscans.Service{
		Repo:       scanRepo,
		Analyzer:   analyzer,
		Images:     store,
		Treatments: treatmentRepo,
		Clock:      application.SystemClock{},
		Notify:     hub,
	}
	weatherSvc := &appweather.Service{
		Repo:  weatherRepo,
		Clock: application.SystemClock{},
	}
	treatmentsSvc := &apptreatments.Service{
		Repo:  treatmentRepo,
		Clock: application.SystemClock{},
	}

	handler := httpserver.NewRouter(scansSvc, weatherSvc, treatmentsSvc, hub, log,
		map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: db},
		})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

// openDatabase connects the configured driver and builds its repositories.
func openDatabase(ctx context.Context, cfg *config.Config) (
	*sql.DB, scansdom.Repository, weatherdom.Repository, treatdom.Repository, error,
) {
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return db, mysqlp.NewScanRepository(db), mysqlp.NewWeatherRepository(db), mysqlp.NewTreatmentRepository(db), nil
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return db, postgresp.NewScanRepository(db), postgresp.NewWeatherRepository(db), postgresp.NewTreatmentRepository(db), nil
	case "sqlite":
		db, err := sqlitep.Connect(cfg.SQLitePath())
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return db, sqlitep.NewScanRepository(db), sqlitep.NewWeatherRepository(db), sqlitep.NewTreatmentRepository(db), nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
