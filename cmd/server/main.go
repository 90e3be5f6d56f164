// Package main implements the entry point for the Lexa progress API server,
// which tracks vocabulary learning progress, streaks, spaced-repetition
// scheduling and the XP economy.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/lexa-app/lexa-api/internal/config"
	"github.com/lexa-app/lexa-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and wires the
// application dependencies.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"timezone", cfg.Engine.Timezone)

	return newApplication(cfg, appLogger)
}
