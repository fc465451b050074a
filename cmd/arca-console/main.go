package main

import (
	"context"
	"math/rand"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/arca/internal/app"
	"github.com/i474232898/arca/internal/config"
	"github.com/i474232898/arca/internal/console"
	"github.com/i474232898/arca/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// Menus own stdout; logs go to stderr and stay quiet unless asked.
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	if err := observability.ConfigureLogger(os.Stderr, level, cfg.LogFormat); err != nil {
		log.Fatalf("failed to configure logger: %v", err)
	}

	service, err := app.Build(cfg, observability.NewMetrics())
	if err != nil {
		log.Fatalf("failed to build service: %v", err)
	}

	users := service.Users()
	initial := users[rand.New(rand.NewSource(cfg.Seed())).Intn(len(users))]

	c, err := console.New(service, os.Stdin, os.Stdout, initial.ID)
	if err != nil {
		log.Fatalf("failed to start console: %v", err)
	}

	if err := c.Run(context.Background()); err != nil {
		log.Fatalf("console stopped: %v", err)
	}
}
