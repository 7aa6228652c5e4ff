package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inumeshi/internal/catalog"
	"github.com/mamadbah2/inumeshi/internal/config"
	"github.com/mamadbah2/inumeshi/internal/repository/mongodb"
	"github.com/mamadbah2/inumeshi/internal/repository/sheets"
	"github.com/mamadbah2/inumeshi/internal/scheduler"
	"github.com/mamadbah2/inumeshi/internal/server/handlers"
	"github.com/mamadbah2/inumeshi/internal/server/router"
	diagnosissvc "github.com/mamadbah2/inumeshi/internal/service/diagnosis"
	reportingsvc "github.com/mamadbah2/inumeshi/internal/service/reporting"
	telemetrysvc "github.com/mamadbah2/inumeshi/internal/service/telemetry"
	"github.com/mamadbah2/inumeshi/pkg/clients/telemetry"
	"github.com/mamadbah2/inumeshi/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	catalogStore, err := catalog.NewStore(cfg.Catalog.Dir, baseLogger.Named("catalog"))
	if err != nil {
		baseLogger.Fatal("failed to load catalog", zap.Error(err))
	}

	var sinks []telemetrysvc.Sink
	if cfg.Telemetry.Endpoint != "" {
		sinks = append(sinks, telemetrysvc.NewWebhookSink(telemetry.NewClient(cfg.Telemetry)))
	}

	var reportingSvc *reportingsvc.Service
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks = append(sinks, telemetrysvc.NewSheetsSink(sheetsRepo))
		reportingSvc = reportingsvc.NewService(sheetsRepo, baseLogger.Named("svc.reporting"))
	} else {
		baseLogger.Warn("google sheets not configured, calculation log and usage report disabled")
	}

	if cfg.MongoDB.Enabled() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks = append(sinks, telemetrysvc.NewArchiveSink(mongoRepo))
	}

	dispatcher := telemetrysvc.NewDispatcher(sinks, telemetrysvc.Options{
		QueueSize:   cfg.Telemetry.QueueSize,
		SinkTimeout: cfg.Telemetry.Timeout,
	}, baseLogger.Named("svc.telemetry"))

	diagnosisSvc := diagnosissvc.NewService(catalogStore, dispatcher, baseLogger.Named("svc.diagnosis"))
	calculatorHandler := handlers.NewCalculatorHandler(catalogStore, diagnosisSvc, baseLogger.Named("handlers.calculator"))

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(cfg.Server, calculatorHandler, baseLogger.Named("router"))

	var reporter scheduler.UsageReporter
	if reportingSvc != nil {
		reporter = reportingSvc
	}
	sched, err := scheduler.NewScheduler(cfg.Schedule, catalogStore, reporter, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
	if err := dispatcher.Close(shutdownCtx); err != nil {
		baseLogger.Warn("telemetry queue not fully drained", zap.Error(err))
	}
}
