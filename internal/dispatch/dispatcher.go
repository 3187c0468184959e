package dispatch

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"brewmetrics/internal/logger"
	"brewmetrics/internal/metrics"
	"brewmetrics/internal/models"
)

const publishTimeout = 10 * time.Second

// Publisher defines the interface for publishing alerts
type Publisher interface {
	Publish(ctx context.Context, alert *models.Alert) error
}

// Pool manages a pool of workers that drain the alert queue and publish to Kafka.
// A nil publisher drops every alert and only keeps the counters.
type Pool struct {
	publisher Publisher
	alertChan chan models.Alert
	workers   int

	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	stopped atomic.Bool

	// Metrics
	processed atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

// Config holds dispatch pool configuration
type Config struct {
	Publisher Publisher
	QueueSize int
	Workers   int
}

// NewPool creates a new dispatch pool
func NewPool(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	ctx, cancel := context.WithCancel(context.Background())

	metrics.DispatchQueueCapacity.Set(float64(cfg.QueueSize))

	return &Pool{
		publisher: cfg.Publisher,
		alertChan: make(chan models.Alert, cfg.QueueSize),
		workers:   cfg.Workers,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins draining the alert queue
func (p *Pool) Start() {
	log := logger.WithComponent("dispatch_pool")
	log.Info().
		Int("workers", p.workers).
		Int("queue_size", cap(p.alertChan)).
		Bool("publisher", p.publisher != nil).
		Msg("starting dispatch pool")

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Enqueue offers an alert to the queue without blocking. It reports
// whether the alert was accepted; a full or stopped queue drops it.
func (p *Pool) Enqueue(alert models.Alert) bool {
	if p.stopped.Load() {
		p.drop(alert, "dispatch pool stopped")
		return false
	}

	select {
	case p.alertChan <- alert:
		metrics.DispatchQueueSize.Set(float64(len(p.alertChan)))
		return true
	default:
		p.drop(alert, "dispatch queue full")
		return false
	}
}

// Stop closes the queue, waits for workers to drain it, and releases resources
func (p *Pool) Stop() {
	if p.stopped.Swap(true) {
		return
	}

	log := logger.WithComponent("dispatch_pool")
	log.Info().Msg("stopping dispatch pool")

	close(p.alertChan)
	p.wg.Wait()
	p.cancel()

	log.Info().Msg("dispatch pool stopped")
}

// worker drains alerts from the queue
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	log := logger.WithComponent("dispatch").With().Int("worker_id", id).Logger()

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			log.Error().
				Interface("panic", r).
				Bytes("stack", stack).
				Msg("dispatch worker panic recovered")
			metrics.PanicsRecovered.WithLabelValues("dispatch").Inc()
		}
	}()

	log.Info().Msg("dispatch worker started")
	defer log.Info().Msg("dispatch worker stopped")

	for {
		select {
		case <-p.ctx.Done():
			return

		case alert, ok := <-p.alertChan:
			if !ok {
				return
			}
			metrics.DispatchQueueSize.Set(float64(len(p.alertChan)))
			p.publish(log, alert)
		}
	}
}

// publish sends a single alert through the publisher
func (p *Pool) publish(log zerolog.Logger, alert models.Alert) {
	if p.publisher == nil {
		p.drop(alert, "no publisher configured")
		return
	}

	ctx, cancel := context.WithTimeout(p.ctx, publishTimeout)
	defer cancel()

	start := time.Now()
	err := p.publisher.Publish(ctx, &alert)
	duration := time.Since(start)

	if err != nil {
		log.Error().
			Err(err).
			Str("alert_id", alert.ID).
			Str("category", string(alert.Category)).
			Dur("duration", duration).
			Msg("failed to dispatch alert")

		p.failed.Add(1)
		metrics.DispatchFailedTotal.Inc()
		return
	}

	log.Debug().
		Str("alert_id", alert.ID).
		Str("category", string(alert.Category)).
		Dur("duration", duration).
		Msg("alert dispatched")

	p.processed.Add(1)
	metrics.DispatchProcessedTotal.Inc()
}

// drop counts an alert that never reached the publisher
func (p *Pool) drop(alert models.Alert, reason string) {
	p.dropped.Add(1)
	metrics.DispatchDroppedTotal.Inc()

	log := logger.WithComponent("dispatch")
	log.Debug().
		Str("alert_id", alert.ID).
		Str("reason", reason).
		Msg("alert dropped")
}

// QueueDepth returns the number of alerts waiting in the queue
func (p *Pool) QueueDepth() int {
	return len(p.alertChan)
}

// QueueCapacity returns the size of the queue buffer
func (p *Pool) QueueCapacity() int {
	return cap(p.alertChan)
}

// Stats returns dispatch pool statistics
func (p *Pool) Stats() Stats {
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
		Dropped:   p.dropped.Load(),
	}
}

// Stats holds dispatch pool counters
type Stats struct {
	Processed uint64
	Failed    uint64
	Dropped   uint64
}
