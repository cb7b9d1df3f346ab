package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/argunvaran/wfm-pro/internal/forecast"
	"github.com/argunvaran/wfm-pro/internal/intervals"
	"github.com/argunvaran/wfm-pro/internal/jobs"
	"github.com/argunvaran/wfm-pro/internal/roster"
	"github.com/argunvaran/wfm-pro/internal/scheduling"
	"github.com/argunvaran/wfm-pro/pkg/config"
	"github.com/argunvaran/wfm-pro/pkg/db"
	"github.com/argunvaran/wfm-pro/pkg/enums"
	"github.com/argunvaran/wfm-pro/pkg/logger"
	"github.com/argunvaran/wfm-pro/pkg/metrics"
	"github.com/argunvaran/wfm-pro/pkg/migrate"
	"github.com/argunvaran/wfm-pro/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "wfm-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "wfm-worker"

	logg = logger.New(logger.Options{
		ServiceName: "wfm-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	rosterRepo := roster.NewRepository(dbClient.DB())
	intervalsRepo := intervals.NewRepository(dbClient.DB())
	shiftsRepo := scheduling.NewRepository(dbClient.DB())

	intervalsService, err := intervals.NewService(intervalsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create intervals service", err)
		os.Exit(1)
	}
	forecastService, err := forecast.NewService(intervalsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create forecast service", err)
		os.Exit(1)
	}
	schedulingService, err := scheduling.NewService(shiftsRepo, intervalsRepo, rosterRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduling service", err)
		os.Exit(1)
	}

	aggregateJob, err := jobs.NewAggregateJob(jobs.AggregateJobParams{
		Logger:    logg,
		Tenants:   rosterRepo,
		Intervals: intervalsService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create aggregate job", err)
		os.Exit(1)
	}
	forecastJob, err := jobs.NewForecastJob(jobs.ForecastJobParams{
		Logger:      logg,
		Tenants:     rosterRepo,
		Forecast:    forecastService,
		Model:       enums.ForecastModel(cfg.Planning.ForecastModel),
		HorizonDays: cfg.Planning.ForecastHorizonDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create forecast job", err)
		os.Exit(1)
	}
	scheduleJob, err := jobs.NewScheduleJob(jobs.ScheduleJobParams{
		Logger:      logg,
		Tenants:     rosterRepo,
		Scheduler:   schedulingService,
		HorizonDays: cfg.Planning.ScheduleHorizonDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create schedule job", err)
		os.Exit(1)
	}

	lock, err := jobs.NewRedisLock(redisClient, redisClient.LockKey("planning", cfg.App.Env), cfg.Worker.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create planning lock", err)
		os.Exit(1)
	}

	// Order matters: aggregation feeds the forecast, which feeds the scheduler.
	registry := jobs.NewRegistry(aggregateJob, forecastJob, scheduleJob)

	service, err := jobs.NewService(jobs.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Worker.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create worker service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})

	go serveMetrics(ctx, logg, cfg.Worker.MetricsPort)

	logg.Info(ctx, "starting planning worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "planning worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "planning worker shutting down gracefully")
}

func serveMetrics(ctx context.Context, logg *logger.Logger, port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: ":" + port, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "metrics listener stopped", err)
	}
}
