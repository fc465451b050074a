package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	httpapi "github.com/i474232898/arca/internal/api/http"
	"github.com/i474232898/arca/internal/app"
	"github.com/i474232898/arca/internal/config"
	"github.com/i474232898/arca/internal/observability"
	"github.com/i474232898/arca/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := observability.ConfigureLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("failed to configure logger: %v", err)
	}

	metrics := observability.NewMetrics()

	service, err := app.Build(cfg, metrics)
	if err != nil {
		log.Fatalf("failed to build service: %v", err)
	}

	// Periodic alert scan over every registered user.
	sched := scheduler.New(service, cfg.AlertScanInterval, metrics.AlertScanDuration)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	server := httpapi.NewApp(service, httpapi.Options{AccessLog: true})

	go func() {
		log.WithField("port", cfg.Port).Info("http server listening")
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
