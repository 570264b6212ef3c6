package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dogoods/donation-scheduler/internal/advancer"
	"github.com/dogoods/donation-scheduler/internal/config"
	"github.com/dogoods/donation-scheduler/internal/db"
	"github.com/dogoods/donation-scheduler/internal/handlers"
	"github.com/dogoods/donation-scheduler/internal/middleware"
	"github.com/dogoods/donation-scheduler/internal/repo"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.ServiceSecret == "" {
		log.Fatal("SERVICE_SECRET must be set in prod")
	}

	database, err := db.Connect(
		cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database")

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	r := newRouter(database, cfg)

	log.Println("Starting server on :" + cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

// newRouter wires the full middleware chain and routes over the given
// database. Split out of main so integration tests can drive the router with
// a mocked DB.
func newRouter(database *sql.DB, cfg config.Config) chi.Router {
	store := repo.NewStore(database)
	adv := advancer.New(store,
		advancer.WithWorkers(cfg.WorkerPoolSize),
		advancer.WithWriteRate(cfg.WriteRatePerSec),
	)

	processHandler := &handlers.ProcessHandler{
		Runner:  adv,
		Timeout: time.Duration(cfg.RunTimeoutSeconds) * time.Second,
	}
	scheduleHandler := &handlers.ScheduleHandler{Repo: store.Schedules}
	donationHandler := &handlers.DonationHandler{Repo: store.Donations}
	healthHandler := &handlers.HealthHandler{DB: database}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.CORS)

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/schedules", scheduleHandler.ListSchedules)
	r.Get("/history", donationHandler.ListDonations)

	// The trigger answers POST on any path, guarded by the service credential.
	r.Group(func(r chi.Router) {
		r.Use(middleware.TriggerRateLimiter().Middleware)
		r.Use(middleware.ServiceKey(cfg.ServiceSecret))
		r.Use(middleware.MaxBytes(0))
		r.Post("/*", processHandler.ProcessSchedules)
	})

	return r
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}
}
