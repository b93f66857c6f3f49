// Package outbox relays draft events to an external broker without blocking
// the session that produced them.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/draft/events"
)

var (
	ErrQueueFull  = errors.New("outbox queue full")
	ErrNotRunning = errors.New("outbox worker not running")
)

type Config struct {
	QueueSize  int
	MaxRetries int
	RetryDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		QueueSize:  1000,
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

// Worker queues events in memory and relays them to a publisher in order
type Worker struct {
	publisher events.Publisher
	metrics   MetricsCollector
	config    Config
	queue     chan *events.Event

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewWorker(publisher events.Publisher, metrics MetricsCollector, cfg Config) *Worker {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	if metrics == nil {
		metrics = &NoOpMetricsCollector{}
	}
	return &Worker{
		publisher: publisher,
		metrics:   metrics,
		config:    cfg,
		queue:     make(chan *events.Event, cfg.QueueSize),
		stopChan:  make(chan struct{}),
	}
}

// Publish enqueues an event for relay. It never blocks.
func (w *Worker) Publish(_ context.Context, event *events.Event) error {
	select {
	case w.queue <- event:
		w.metrics.RecordOutboxLag(len(w.queue))
		return nil
	default:
		w.metrics.RecordDropped(string(event.Type))
		return fmt.Errorf("event %s: %w", event.ID, ErrQueueFull)
	}
}

func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx)

	log.Info().
		Int("queue_size", w.config.QueueSize).
		Int("max_retries", w.config.MaxRetries).
		Msg("outbox worker started")
	return nil
}

// Stop relays whatever is still queued, then returns
func (w *Worker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return ErrNotRunning
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()

	log.Info().Msg("outbox worker stopped")
	return nil
}

// Running reports whether the relay loop is active
func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			w.drain(ctx)
			return
		case event := <-w.queue:
			w.relay(ctx, event)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		select {
		case event := <-w.queue:
			w.relay(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) relay(ctx context.Context, event *events.Event) {
	start := time.Now()
	err := w.publishWithRetry(ctx, event)
	w.metrics.RecordEventProcessed(string(event.Type), err == nil, time.Since(start))
	w.metrics.RecordOutboxLag(len(w.queue))
	if err != nil {
		log.Error().
			Err(err).
			Str("event_id", event.ID).
			Str("event_type", string(event.Type)).
			Msg("failed to publish event")
	}
}

func (w *Worker) publishWithRetry(ctx context.Context, event *events.Event) error {
	var lastErr error

	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.config.RetryDelay * time.Duration(attempt)):
			}
		}

		err := w.publisher.Publish(ctx, event)
		w.metrics.RecordPublishAttempt(string(event.Type), attempt+1, err == nil)
		if err != nil {
			lastErr = err
			log.Warn().
				Err(err).
				Str("event_id", event.ID).
				Int("attempt", attempt+1).
				Msg("failed to publish event, retrying")
			continue
		}

		return nil
	}

	return fmt.Errorf("failed after %d attempts: %w", w.config.MaxRetries+1, lastErr)
}
