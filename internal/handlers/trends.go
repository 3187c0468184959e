package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"brewmetrics/internal/analytics"
	"brewmetrics/internal/logger"
	"brewmetrics/internal/metrics"
	"brewmetrics/internal/models"
	"brewmetrics/internal/storage"
)

// TrendsHandler serves the trend aggregation endpoints
type TrendsHandler struct {
	repo   *storage.Repository
	engine *analytics.Engine
	sink   AlertSink
}

// NewTrendsHandler creates a new trends handler
func NewTrendsHandler(repo *storage.Repository, engine *analytics.Engine, sink AlertSink) *TrendsHandler {
	return &TrendsHandler{repo: repo, engine: engine, sink: sink}
}

// Calculate handles GET /api/trends?period=
func (h *TrendsHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	period, err := models.ParseTrendPeriod(r.URL.Query().Get("period"))
	if err != nil {
		metrics.ValidationErrors.WithLabelValues("period").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	readings, err := h.repo.ListReadings(ctx)
	if err != nil {
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("failed to list readings")
		writeError(w, http.StatusInternalServerError, "failed to load metrics")
		return
	}

	history := filterWindow(readings, period.Window(), time.Now())
	trends := analytics.CalculateTrends(history, period)
	metrics.TrendsCalculatedTotal.WithLabelValues(string(period)).Inc()

	persistAndDispatch(ctx, h.repo, h.sink, h.engine.EvaluateTrends(trends))

	if _, err := h.repo.AppendTrends(ctx, trends); err != nil {
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("failed to store trends")
		writeError(w, http.StatusInternalServerError, "failed to save trends")
		return
	}

	writeJSON(w, http.StatusOK, trends)
}

// History handles GET /api/trends/history
func (h *TrendsHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	trends, err := h.repo.ListTrends(r.Context())
	if err != nil {
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("failed to list trends")
		writeError(w, http.StatusInternalServerError, "failed to load trends")
		return
	}

	writeJSON(w, http.StatusOK, trends)
}

// Get handles GET /api/trends/{key}
func (h *TrendsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/trends/")
	if key == "" {
		writeError(w, http.StatusNotFound, "Trends not found")
		return
	}

	trends, err := h.repo.GetTrends(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Trends not found")
			return
		}
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Str("key", key).Msg("failed to load trends")
		writeError(w, http.StatusInternalServerError, "failed to load trends")
		return
	}

	writeJSON(w, http.StatusOK, trends)
}

// filterWindow keeps readings whose timestamp falls inside the trailing window
func filterWindow(readings []*models.ExtractionMetrics, window time.Duration, now time.Time) []*models.ExtractionMetrics {
	if window <= 0 {
		return readings
	}

	cutoff := now.Add(-window).Unix()
	if cutoff < 0 {
		return readings
	}

	kept := make([]*models.ExtractionMetrics, 0, len(readings))
	for _, m := range readings {
		if m.Timestamp >= uint64(cutoff) {
			kept = append(kept, m)
		}
	}
	return kept
}
