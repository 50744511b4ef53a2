package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/api/handlers"
	"github.com/sreepuli/AquaAlert-sub000/internal/api/router"
	"github.com/sreepuli/AquaAlert-sub000/internal/config"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/mail"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
	"github.com/sreepuli/AquaAlert-sub000/internal/engine"
	"github.com/sreepuli/AquaAlert-sub000/internal/mailer"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/validator"
	"github.com/sreepuli/AquaAlert-sub000/internal/roster"
	"github.com/sreepuli/AquaAlert-sub000/internal/services"
	"github.com/sreepuli/AquaAlert-sub000/internal/worker"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	log.Infof("Starting AquaAlert v%s (%s)", version, cfg.Server.Environment)

	fleet, err := config.LoadFleet(cfg.Simulation.FleetFile)
	if err != nil {
		log.Fatalf("Failed to load fleet configuration: %v", err)
	}
	sensors := fleet.Build(time.Now())

	// Roster backend with static fallback
	repo, closeRepo, err := buildRoster(cfg, fleet.Officials, log)
	if err != nil {
		log.Fatalf("Failed to initialize roster backend: %v", err)
	}
	if closeRepo != nil {
		defer closeRepo()
	}
	resolver := services.NewRecipientResolver(repo, fleet.Officials, log)

	// Outbound mail transport
	var m mail.Mailer
	if cfg.SMTP.Host == "" {
		log.Warn("SMTP host not configured, using log transport")
		m = mailer.NewLogMailer(log)
	} else {
		m = mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			Timeout:  cfg.SMTP.Timeout,
		}, log)
	}

	dispatcher := services.NewDispatcher(m, resolver, cfg.SMTP.From, cfg.Notify.CCAddresses, log)

	thresholds := alert.DefaultThresholds()
	if fleet.Thresholds != nil {
		thresholds = *fleet.Thresholds
	}
	evaluator := services.NewEvaluator(thresholds)
	source := services.NewSimulatedSource(cfg.Simulation.Seed, log)

	eng := engine.New(engine.Config{
		Interval:   cfg.Simulation.TickInterval,
		Source:     source,
		Evaluator:  evaluator,
		Dispatcher: dispatcher,
		Sensors:    sensors,
		Logger:     log,
	})
	if cfg.Simulation.AutoStart {
		eng.Start()
	}

	summary := services.NewSummaryService(eng, resolver, m, cfg.SMTP.From, cfg.Notify.CCAddresses, log)

	var scheduler *worker.SummaryScheduler
	if cfg.Notify.SummaryEnabled {
		scheduler = worker.NewSummaryScheduler(summary, cfg.Notify.SummarySchedule, log)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start summary scheduler: %v", err)
		}
	}

	val := validator.New()
	h := &router.Handlers{
		Health:     handlers.NewHealthHandler(version),
		Simulation: handlers.NewSimulationHandler(eng, log, val),
		Sensor:     handlers.NewSensorHandler(eng, log),
		Alert:      handlers.NewAlertHandler(eng, log, val),
		Summary:    handlers.NewSummaryHandler(summary, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	if scheduler != nil {
		scheduler.Stop()
	}
	eng.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}

	log.Info("Server stopped")
}

// buildRoster wires the configured roster backend. The sqlite backend
// is seeded with the fleet roster on first run.
func buildRoster(cfg *config.Config, fallback []*official.Official, log *logger.Logger) (official.Repository, func(), error) {
	switch cfg.Roster.Backend {
	case "sqlite":
		repo, err := roster.OpenSQLite(cfg.Roster.Path)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Roster.Timeout)
		defer cancel()
		if err := repo.Seed(ctx, fallback); err != nil {
			repo.Close()
			return nil, nil, err
		}
		log.Infof("Roster backend: sqlite (%s)", cfg.Roster.Path)
		return repo, func() { repo.Close() }, nil
	case "http":
		log.Infof("Roster backend: http (%s)", cfg.Roster.BaseURL)
		return roster.NewHTTPRepository(cfg.Roster.BaseURL, cfg.Roster.Timeout), nil, nil
	default:
		log.Info("Roster backend: static")
		return roster.NewStaticRepository(fallback), nil, nil
	}
}
