package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/argunvaran/wfm-pro/api/routes"
	"github.com/argunvaran/wfm-pro/internal/adherence"
	"github.com/argunvaran/wfm-pro/internal/forecast"
	"github.com/argunvaran/wfm-pro/internal/intervals"
	"github.com/argunvaran/wfm-pro/internal/roster"
	"github.com/argunvaran/wfm-pro/internal/scheduling"
	"github.com/argunvaran/wfm-pro/internal/staffing"
	"github.com/argunvaran/wfm-pro/pkg/config"
	"github.com/argunvaran/wfm-pro/pkg/db"
	"github.com/argunvaran/wfm-pro/pkg/logger"
	"github.com/argunvaran/wfm-pro/pkg/migrate"
	"github.com/argunvaran/wfm-pro/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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
	statesRepo := adherence.NewRepository(dbClient.DB())

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
	adherenceService, err := adherence.NewService(statesRepo, shiftsRepo, rosterRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create adherence service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:      cfg,
			Logger:      logg,
			DBPinger:    dbClient,
			RedisPinger: redisClient,
			LockStore:   redisClient,
			Intervals:   intervalsService,
			Forecast:    forecastService,
			Scheduling:  schedulingService,
			Adherence:   adherenceService,
			Roster:      rosterRepo,
			Calculator:  staffing.NewCalculator(),
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "api server stopped")
}
