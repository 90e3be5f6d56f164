package sync

import (
	"context"
	"log/slog"

	"github.com/lexa-app/lexa-api/internal/events"
)

// LoggingMirror is a Mirror that records pushed events to the log instead of
// an external backend. It is the default when no sync backend is configured,
// keeping the dispatch path exercised in every environment.
type LoggingMirror struct {
	logger *slog.Logger
}

var _ Mirror = (*LoggingMirror)(nil)

// NewLoggingMirror creates a LoggingMirror.
func NewLoggingMirror(logger *slog.Logger) *LoggingMirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingMirror{logger: logger.With("component", "logging_mirror")}
}

// Push logs the event and reports success.
func (m *LoggingMirror) Push(ctx context.Context, event *events.ProgressSyncEvent) error {
	m.logger.InfoContext(ctx, "progress event",
		"event_id", event.ID,
		"event_kind", event.Kind,
		"user_id", event.UserID)
	return nil
}
