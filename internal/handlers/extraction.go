package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"brewmetrics/internal/analytics"
	"brewmetrics/internal/logger"
	"brewmetrics/internal/metrics"
	"brewmetrics/internal/models"
	"brewmetrics/internal/simulation"
	"brewmetrics/internal/storage"
)

// AlertSink receives generated alerts for asynchronous dispatch
type AlertSink interface {
	Enqueue(alert models.Alert) bool
}

// ExtractionHandler serves the extraction simulation and metrics endpoints
type ExtractionHandler struct {
	repo   *storage.Repository
	engine *analytics.Engine
	sink   AlertSink
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(repo *storage.Repository, engine *analytics.Engine, sink AlertSink) *ExtractionHandler {
	return &ExtractionHandler{repo: repo, engine: engine, sink: sink}
}

// StartExtraction handles POST /api/extraction
func (h *ExtractionHandler) StartExtraction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	params, err := parseParams(r.URL.Query())
	if err != nil {
		metrics.ValidationErrors.WithLabelValues(validationLabel(err)).Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m := simulation.Simulate(params)

	ctx := r.Context()
	if _, err := h.repo.AppendReading(ctx, m); err != nil {
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("failed to store reading")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save metrics: %v", err))
		return
	}

	metrics.ExtractionsTotal.WithLabelValues(resultLabel(m)).Inc()
	metrics.ExtractionQualityScore.Observe(float64(m.QualityScore))

	persistAndDispatch(ctx, h.repo, h.sink, h.engine.GenerateAlerts(m))

	writeJSON(w, http.StatusOK, m)
}

// GetMetrics handles GET /api/metrics
func (h *ExtractionHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	readings, err := h.repo.ListReadings(r.Context())
	if err != nil {
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("failed to list readings")
		writeError(w, http.StatusInternalServerError, "failed to load metrics")
		return
	}

	if len(readings) == 0 {
		writeError(w, http.StatusNotFound, "No metrics available")
		return
	}

	writeJSON(w, http.StatusOK, readings)
}

// parseParams builds extraction parameters from the query string. Every
// parameter is optional; present ones must parse and sit inside their
// valid range.
func parseParams(values url.Values) (models.ExtractionParams, error) {
	var params models.ExtractionParams

	if raw := values.Get("temperature"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, models.ErrTemperatureOutOfRange
		}
		params.Temperature = &v
	}

	if raw := values.Get("pressure"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, models.ErrPressureOutOfRange
		}
		params.Pressure = &v
	}

	if raw := values.Get("time_seconds"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return params, models.ErrTimeOutOfRange
		}
		params.TimeSeconds = &v
	}

	if raw := values.Get("coffee_type"); raw != "" {
		v, err := models.ParseCoffeeType(raw)
		if err != nil {
			return params, err
		}
		params.CoffeeType = &v
	}

	if raw := values.Get("roast_level"); raw != "" {
		v, err := models.ParseRoastLevel(raw)
		if err != nil {
			return params, err
		}
		params.RoastLevel = &v
	}

	if raw := values.Get("grind_size"); raw != "" {
		v, err := models.ParseGrindSize(raw)
		if err != nil {
			return params, err
		}
		params.GrindSize = &v
	}

	if err := params.Validate(); err != nil {
		return params, err
	}

	return params, nil
}

// validationLabel maps a validation error to its metric label
func validationLabel(err error) string {
	switch {
	case errors.Is(err, models.ErrTemperatureOutOfRange):
		return "temperature"
	case errors.Is(err, models.ErrPressureOutOfRange):
		return "pressure"
	case errors.Is(err, models.ErrTimeOutOfRange):
		return "time_seconds"
	case errors.Is(err, models.ErrInvalidCoffeeType):
		return "coffee_type"
	case errors.Is(err, models.ErrInvalidRoastLevel):
		return "roast_level"
	case errors.Is(err, models.ErrInvalidGrindSize):
		return "grind_size"
	default:
		return "other"
	}
}

func resultLabel(m *models.ExtractionMetrics) string {
	if m.IsPerfect() {
		return "perfect"
	}
	return "suboptimal"
}

// persistAndDispatch stores each alert and offers it to the dispatch queue.
// Both steps are best-effort; a failure never fails the triggering request.
func persistAndDispatch(ctx context.Context, repo *storage.Repository, sink AlertSink, alerts []models.Alert) {
	log := logger.WithComponent("handlers")

	for _, alert := range alerts {
		metrics.AlertsGeneratedTotal.WithLabelValues(string(alert.Severity), string(alert.Category)).Inc()

		if _, err := repo.AppendAlert(ctx, &alert); err != nil {
			log.Error().Err(err).Str("alert_id", alert.ID).Msg("failed to store alert")
		}

		if sink != nil {
			sink.Enqueue(alert)
		}
	}
}
