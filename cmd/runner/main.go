package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dogoods/donation-scheduler/internal/advancer"
	"github.com/dogoods/donation-scheduler/internal/config"
	"github.com/dogoods/donation-scheduler/internal/db"
	"github.com/dogoods/donation-scheduler/internal/repo"
	"github.com/dogoods/donation-scheduler/internal/scheduler"
)

// The runner is the self-hosted stand-in for a platform cron trigger: it
// executes the same processing pass the API trigger does, on CRON_SPEC.
func main() {
	once := flag.Bool("once", false, "run a single processing pass and exit")
	flag.Parse()

	cfg := config.Load()
	if cfg.LogFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	database, err := db.Connect(
		cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	adv := advancer.New(repo.NewStore(database),
		advancer.WithWorkers(cfg.WorkerPoolSize),
		advancer.WithWriteRate(cfg.WriteRatePerSec),
	)
	timeout := time.Duration(cfg.RunTimeoutSeconds) * time.Second

	if *once {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sum, err := adv.Run(ctx)
		if err != nil {
			log.Fatalf("processing run failed: %v", err)
		}
		log.Printf("run complete scanned=%d reminders=%d advanced=%d errors=%d",
			sum.SchedulesScanned, sum.RemindersCreated, sum.SchedulesAdvanced, len(sum.Errors))
		return
	}

	if err := scheduler.Run(cfg.CronSpec, timeout, adv.Run); err != nil {
		log.Fatal(err)
	}
}
