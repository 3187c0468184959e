package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brewmetrics/internal/analytics"
	"brewmetrics/internal/config"
	"brewmetrics/internal/dispatch"
	"brewmetrics/internal/handlers"
	"brewmetrics/internal/logger"
	"brewmetrics/internal/metrics"
	"brewmetrics/internal/middleware"
	"brewmetrics/internal/queue"
	"brewmetrics/internal/storage"
)

// Server is the high-level coordinator for the analytics API: storage,
// alert rules, dispatch pool and the HTTP surface.
type Server struct {
	cfg        *config.Config
	repo       *storage.Repository
	engine     *analytics.Engine
	producer   *queue.Producer
	pool       *dispatch.Pool
	httpServer *http.Server
	wg         sync.WaitGroup
}

// New constructs a Server with the given config
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:    cfg,
		engine: analytics.NewEngine(),
	}
}

// Run starts background goroutines and blocks until context cancelled
func (s *Server) Run(ctx context.Context) error {
	log := logger.WithComponent("server")
	log.Info().Msg("server starting")

	if err := s.initStorage(); err != nil {
		log.Error().Err(err).Msg("failed to initialize storage")
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer s.repo.Close()

	if err := s.initProducer(); err != nil {
		log.Error().Err(err).Msg("failed to initialize producer")
		return fmt.Errorf("failed to initialize producer: %w", err)
	}

	s.initDispatchPool()
	s.pool.Start()

	s.initHTTPServer()

	// Start HTTP server in background
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info().Str("addr", s.cfg.HTTP.Addr).Msg("starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Stats reporting goroutine
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.reportStats(ctx)
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	return s.shutdown()
}

// initStorage opens the configured backend and wraps it in the repository
func (s *Server) initStorage() error {
	log := logger.WithComponent("server")

	var (
		store storage.Store
		err   error
	)
	switch s.cfg.Storage.Backend {
	case "sqlite":
		store, err = storage.NewSQLite(s.cfg.Storage.SQLitePath)
	case "postgres":
		store, err = storage.NewPostgres(s.cfg.Postgres.ConnectionString())
	case "memory":
		store = storage.NewMemory()
	default:
		return fmt.Errorf("unknown storage backend %q", s.cfg.Storage.Backend)
	}
	if err != nil {
		return err
	}

	s.repo = storage.NewRepository(store)
	log.Info().Str("backend", s.cfg.Storage.Backend).Msg("storage initialized")
	return nil
}

// initProducer initializes the Kafka producer when brokers are configured
func (s *Server) initProducer() error {
	log := logger.WithComponent("server")

	if !s.cfg.Kafka.Enabled() {
		log.Info().Msg("kafka disabled, alerts will be stored but not dispatched")
		return nil
	}

	producer, err := queue.NewProducer(s.cfg.Kafka.Brokers, s.cfg.Kafka.AlertsTopic)
	if err != nil {
		return err
	}

	s.producer = producer
	log.Info().
		Strs("brokers", s.cfg.Kafka.Brokers).
		Str("topic", s.cfg.Kafka.AlertsTopic).
		Msg("kafka producer initialized")
	return nil
}

// initDispatchPool initializes the alert dispatch pool
func (s *Server) initDispatchPool() {
	log := logger.WithComponent("server")

	var publisher dispatch.Publisher
	if s.producer != nil {
		publisher = s.producer
	}

	s.pool = dispatch.NewPool(dispatch.Config{
		Publisher: publisher,
		QueueSize: s.cfg.Dispatch.QueueSize,
		Workers:   s.cfg.Dispatch.Workers,
	})
	log.Info().Int("workers", s.cfg.Dispatch.Workers).Msg("dispatch pool initialized")
}

// initHTTPServer initializes the HTTP server with handlers
func (s *Server) initHTTPServer() {
	mux := http.NewServeMux()

	extraction := handlers.NewExtractionHandler(s.repo, s.engine, s.pool)
	alerts := handlers.NewAlertsHandler(s.repo)
	trends := handlers.NewTrendsHandler(s.repo, s.engine, s.pool)

	// API routes share the middleware chain
	api := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.Recovery, middleware.Logging)
	}

	mux.Handle("/api/extraction", api(extraction.StartExtraction))
	mux.Handle("/api/metrics", api(extraction.GetMetrics))
	mux.Handle("/api/alerts", api(alerts.List))
	mux.Handle("/api/alerts/", api(alerts.Get))
	mux.Handle("/api/trends", api(trends.Calculate))
	mux.Handle("/api/trends/history", api(trends.History))
	mux.Handle("/api/trends/", api(trends.Get))

	// Health check
	mux.HandleFunc("/health", s.healthHandler)

	// Stats endpoint
	mux.HandleFunc("/stats", s.statsHandler)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         s.cfg.HTTP.Addr,
		Handler:      mux,
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
	}
}

// shutdown performs graceful shutdown
func (s *Server) shutdown() error {
	log := logger.WithComponent("server")
	log.Info().Msg("initiating graceful shutdown")

	// 1. Stop accepting new HTTP requests
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info().Msg("stopping HTTP server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the dispatch pool; Stop closes the queue and drains it
	done := make(chan struct{})
	go func() {
		s.pool.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("dispatch pool stopped gracefully")
	case <-time.After(15 * time.Second):
		log.Warn().Msg("dispatch shutdown timeout - forcing exit")
	}

	// 3. Close producer
	if s.producer != nil {
		log.Info().Msg("closing kafka producer")
		if err := s.producer.Close(); err != nil {
			log.Error().Err(err).Msg("producer close error")
		}
	}

	// 4. Wait for all goroutines
	s.wg.Wait()

	log.Info().Msg("server stopped gracefully")
	return nil
}

// reportStats periodically logs statistics
func (s *Server) reportStats(ctx context.Context) {
	log := logger.WithComponent("server")
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dispatchStats := s.pool.Stats()

			// Update metrics
			metrics.DispatchQueueSize.Set(float64(s.pool.QueueDepth()))

			event := log.Info().
				Uint64("dispatch_processed", dispatchStats.Processed).
				Uint64("dispatch_failed", dispatchStats.Failed).
				Uint64("dispatch_dropped", dispatchStats.Dropped).
				Int("queue_size", s.pool.QueueDepth())

			if s.producer != nil {
				producerStats := s.producer.Stats()
				event = event.
					Uint64("producer_sent", producerStats.MessagesSent).
					Uint64("producer_failed", producerStats.MessagesFailed).
					Uint64("producer_bytes", producerStats.BytesWritten)
			}

			event.Msg("stats")
		}
	}
}

// healthHandler handles health check requests
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	// Check storage connectivity
	if err := s.repo.Ping(ctx); err != nil {
		http.Error(w, fmt.Sprintf("unhealthy: %v", err), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

// statsHandler returns current statistics
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	dispatchStats := s.pool.Stats()

	var producerStats queue.ProducerStats
	if s.producer != nil {
		producerStats = s.producer.Stats()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{
		"dispatch": {
			"processed": %d,
			"failed": %d,
			"dropped": %d
		},
		"producer": {
			"messages_sent": %d,
			"messages_failed": %d,
			"bytes_written": %d
		},
		"queue": {
			"buffered": %d,
			"capacity": %d
		}
	}`,
		dispatchStats.Processed,
		dispatchStats.Failed,
		dispatchStats.Dropped,
		producerStats.MessagesSent,
		producerStats.MessagesFailed,
		producerStats.BytesWritten,
		s.pool.QueueDepth(),
		s.pool.QueueCapacity(),
	)
}
