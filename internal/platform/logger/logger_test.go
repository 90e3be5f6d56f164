// Package logger_test contains tests for the logger package.
package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/lexa-app/lexa-api/internal/platform/logger"
)

func TestSetupValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN", "Info"} {
		log, err := logger.Setup(logger.LoggerConfig{Level: level})
		if err != nil {
			t.Errorf("Setup(%q) returned error: %v", level, err)
		}
		if log == nil {
			t.Errorf("Setup(%q) returned nil logger", level)
		}
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := logger.Setup(logger.LoggerConfig{Level: "verbose"})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if log == nil {
		t.Fatal("Setup returned nil logger")
	}

	// The fallback level is info, so debug records must be discarded.
	if log.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug level to be disabled after invalid config")
	}
	if !log.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info level to be enabled after invalid config")
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	stored := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := logger.WithLogger(context.Background(), stored)
	got := logger.FromContext(ctx)

	if got != stored {
		t.Error("FromContext did not return the logger stored in the context")
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	got := logger.FromContext(context.Background())
	if got == nil {
		t.Fatal("FromContext returned nil for an empty context")
	}
	if got != slog.Default() {
		t.Error("expected the process default logger for an empty context")
	}
}

func TestFromContextOrDefault(t *testing.T) {
	var buf bytes.Buffer
	stored := slog.New(slog.NewJSONHandler(&buf, nil))
	fallback := slog.New(slog.NewJSONHandler(&buf, nil))

	t.Run("prefers context logger", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), stored)
		if got := logger.FromContextOrDefault(ctx, fallback); got != stored {
			t.Error("expected the context logger to take precedence")
		}
	})

	t.Run("falls back to provided default", func(t *testing.T) {
		if got := logger.FromContextOrDefault(context.Background(), fallback); got != fallback {
			t.Error("expected the provided fallback logger")
		}
	})

	t.Run("falls back to global default when both missing", func(t *testing.T) {
		if got := logger.FromContextOrDefault(context.Background(), nil); got != slog.Default() {
			t.Error("expected the process default logger")
		}
	})
}
