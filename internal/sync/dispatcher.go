// Package sync delivers committed progress events to an external mirror in
// the background. Delivery is fire and forget: a slow or failing mirror can
// never block or fail the local write path, and events are dropped when the
// queue is full rather than applying backpressure to request handlers.
package sync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lexa-app/lexa-api/internal/events"
)

// Mirror pushes a single progress event to the external sync backend.
type Mirror interface {
	Push(ctx context.Context, event *events.ProgressSyncEvent) error
}

// DispatcherConfig holds configuration for the sync dispatcher
type DispatcherConfig struct {
	// QueueSize determines the buffer size for the in-memory event queue
	QueueSize int

	// PushTimeout bounds each mirror push attempt
	PushTimeout time.Duration
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		QueueSize:   256,
		PushTimeout: 10 * time.Second,
	}
}

// Dispatcher queues progress events and pushes them to the mirror from a
// single background worker. It implements events.EventHandler so it can be
// registered directly on the event emitter.
type Dispatcher struct {
	mirror     Mirror
	eventChan  chan *events.ProgressSyncEvent
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     DispatcherConfig
	logger     *slog.Logger
}

var _ events.EventHandler = (*Dispatcher)(nil)

// NewDispatcher creates a new Dispatcher. Start must be called before events
// are delivered.
func NewDispatcher(mirror Mirror, config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if mirror == nil {
		panic("mirror cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultDispatcherConfig().QueueSize
	}
	if config.PushTimeout <= 0 {
		config.PushTimeout = DefaultDispatcherConfig().PushTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		mirror:     mirror,
		eventChan:  make(chan *events.ProgressSyncEvent, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "sync_dispatcher"),
	}
}

// Start launches the background worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.worker()
	d.logger.Info("sync dispatcher started", "queue_size", d.config.QueueSize)
}

// Stop shuts down the worker and waits for it to drain. Events still queued
// at shutdown are dropped.
func (d *Dispatcher) Stop() {
	d.cancelFunc()
	d.wg.Wait()
	d.logger.Info("sync dispatcher stopped")
}

// HandleEvent enqueues the event for background delivery. It never blocks;
// when the queue is full the event is dropped and a warning is logged.
func (d *Dispatcher) HandleEvent(ctx context.Context, event *events.ProgressSyncEvent) error {
	select {
	case d.eventChan <- event:
		return nil
	default:
		d.logger.WarnContext(ctx, "sync queue full, dropping event",
			"event_id", event.ID,
			"event_kind", event.Kind,
			"user_id", event.UserID)
		return nil
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case event := <-d.eventChan:
			d.push(event)
		}
	}
}

func (d *Dispatcher) push(event *events.ProgressSyncEvent) {
	ctx, cancel := context.WithTimeout(d.ctx, d.config.PushTimeout)
	defer cancel()

	if err := d.mirror.Push(ctx, event); err != nil {
		d.logger.Error("mirror push failed",
			"event_id", event.ID,
			"event_kind", event.Kind,
			"user_id", event.UserID,
			"error", err)
		return
	}

	d.logger.Debug("event mirrored",
		"event_id", event.ID,
		"event_kind", event.Kind)
}
