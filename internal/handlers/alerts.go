package handlers

import (
	"errors"
	"net/http"
	"strings"

	"brewmetrics/internal/logger"
	"brewmetrics/internal/storage"
)

// AlertsHandler serves the stored alert endpoints
type AlertsHandler struct {
	repo *storage.Repository
}

// NewAlertsHandler creates a new alerts handler
func NewAlertsHandler(repo *storage.Repository) *AlertsHandler {
	return &AlertsHandler{repo: repo}
}

// List handles GET /api/alerts
func (h *AlertsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	alerts, err := h.repo.ListAlerts(r.Context())
	if err != nil {
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("failed to list alerts")
		writeError(w, http.StatusInternalServerError, "failed to load alerts")
		return
	}

	writeJSON(w, http.StatusOK, alerts)
}

// Get handles GET /api/alerts/{key}
func (h *AlertsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/alerts/")
	if key == "" {
		writeError(w, http.StatusNotFound, "Alert not found")
		return
	}

	alert, err := h.repo.GetAlert(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alert not found")
			return
		}
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Str("key", key).Msg("failed to load alert")
		writeError(w, http.StatusInternalServerError, "failed to load alert")
		return
	}

	writeJSON(w, http.StatusOK, alert)
}
