package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter is a simple synchronous implementation of EventEmitter
// that dispatches events to registered handlers in the calling goroutine.
// Handler errors are logged and swallowed so that one failing handler does
// not prevent delivery to the rest.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter creates an emitter with no registered handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler adds a handler that will receive all subsequently emitted
// events.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	if handler == nil {
		panic("handler cannot be nil")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
}

// EmitEvent delivers the event to every registered handler. It always
// returns nil; individual handler failures are logged, not propagated.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *ProgressSyncEvent) error {
	e.mu.RLock()
	handlers := make([]EventHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.WarnContext(ctx, "event handler failed",
				"event_id", event.ID,
				"event_kind", event.Kind,
				"error", err)
		}
	}
	return nil
}
