package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/config"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/mongodb"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/sheets"
	supabaserepo "github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/supabase"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/scheduler"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/server/handlers"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/server/router"
	analyticssvc "github.com/AI-Development-Kosi-Uzo/nourish-note/internal/service/analytics"
	exportsvc "github.com/AI-Development-Kosi-Uzo/nourish-note/internal/service/export"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/store"
	supabaseclient "github.com/AI-Development-Kosi-Uzo/nourish-note/pkg/clients/supabase"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/pkg/logger"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/pkg/metrics"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	m := metrics.New(prometheus.NewRegistry())

	supaClient := supabaseclient.NewClient(cfg.Supabase)
	mealStore := store.NewMealLogStore(supabaserepo.NewMealLogTable(supaClient), cfg.Supabase.Timeout, m, baseLogger.Named("store.meallogs"))
	foodStore := store.NewFoodItemStore(supabaserepo.NewFoodItemTable(supaClient), cfg.Supabase.Timeout, m, baseLogger.Named("store.fooditems"))
	stores := store.NewManager(mealStore, foodStore, baseLogger.Named("store.manager"))

	// First load; failures settle into the demo dataset, never block startup.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	stores.RefreshAll(loadCtx)
	cancelLoad()

	var (
		archive mongodb.Repository
		pinger  handlers.Pinger
	)
	mongoCtx, cancelMongo := context.WithTimeout(context.Background(), 10*time.Second)
	mongoRepo, err := mongodb.NewMongoDBRepository(mongoCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	cancelMongo()
	if err != nil {
		baseLogger.Warn("snapshot archive unavailable, continuing without it", zap.Error(err))
	} else {
		archive = mongoRepo
		pinger = mongoRepo
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
	}

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, spreadsheet export disabled")
	}

	analyticsSvc := analyticssvc.NewService(mealStore, foodStore, baseLogger.Named("svc.analytics"))
	exportSvc := exportsvc.NewService(exporter, mealStore, baseLogger.Named("svc.export"))

	engine := router.New(router.Handlers{
		System:    handlers.NewSystemHandler(stores, pinger, baseLogger.Named("handlers.system")),
		MealLogs:  handlers.NewMealLogHandler(mealStore, baseLogger.Named("handlers.meallogs")),
		FoodItems: handlers.NewFoodHandler(foodStore, baseLogger.Named("handlers.fooditems")),
		Analytics: handlers.NewAnalyticsHandler(analyticsSvc, archive, baseLogger.Named("handlers.analytics")),
		Export:    handlers.NewExportHandler(exportSvc, baseLogger.Named("handlers.export")),
	}, m, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, stores, analyticsSvc, archive, m, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
