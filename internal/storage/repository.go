package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brewmetrics/internal/models"
)

// Repository layers the domain record types over a Store: it owns key
// generation and the JSON codec, so every backend stays byte-oriented.
type Repository struct {
	store Store
}

// NewRepository wraps a backend store
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// newKey builds a kind-prefixed key from the current wall clock. Nanosecond
// resolution keeps rapid appends distinguishable.
func newKey(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s_%d", kind, now.UnixNano())
}

func (r *Repository) append(ctx context.Context, kind Kind, v interface{}) (string, error) {
	value, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", kind, err)
	}

	now := time.Now()
	rec := Record{
		Key:       newKey(kind, now),
		Kind:      kind,
		Value:     value,
		CreatedAt: now.UnixNano(),
	}

	if err := r.store.Append(ctx, rec); err != nil {
		return "", fmt.Errorf("append %s: %w", kind, err)
	}
	return rec.Key, nil
}

// AppendReading stores one extraction reading and returns its key
func (r *Repository) AppendReading(ctx context.Context, m *models.ExtractionMetrics) (string, error) {
	return r.append(ctx, KindReading, m)
}

// AppendAlert stores one alert and returns its key
func (r *Repository) AppendAlert(ctx context.Context, alert *models.Alert) (string, error) {
	return r.append(ctx, KindAlert, alert)
}

// AppendTrends stores one trends record and returns its key
func (r *Repository) AppendTrends(ctx context.Context, trends *models.ExtractionTrends) (string, error) {
	return r.append(ctx, KindTrend, trends)
}

// ListReadings returns all stored readings in insertion order
func (r *Repository) ListReadings(ctx context.Context) ([]*models.ExtractionMetrics, error) {
	recs, err := r.store.List(ctx, KindReading)
	if err != nil {
		return nil, err
	}

	readings := make([]*models.ExtractionMetrics, 0, len(recs))
	for _, rec := range recs {
		var m models.ExtractionMetrics
		if err := json.Unmarshal(rec.Value, &m); err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, rec.Kind, rec.Key, err)
		}
		readings = append(readings, &m)
	}
	return readings, nil
}

// AlertEntry pairs a stored alert with its storage key
type AlertEntry struct {
	Key   string        `json:"key"`
	Alert *models.Alert `json:"alert"`
}

// TrendsEntry pairs a stored trends record with its storage key
type TrendsEntry struct {
	Key    string                   `json:"key"`
	Trends *models.ExtractionTrends `json:"trends"`
}

// ListAlerts returns all stored alerts with their keys in insertion order
func (r *Repository) ListAlerts(ctx context.Context) ([]AlertEntry, error) {
	recs, err := r.store.List(ctx, KindAlert)
	if err != nil {
		return nil, err
	}

	entries := make([]AlertEntry, 0, len(recs))
	for _, rec := range recs {
		var a models.Alert
		if err := json.Unmarshal(rec.Value, &a); err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, rec.Kind, rec.Key, err)
		}
		entries = append(entries, AlertEntry{Key: rec.Key, Alert: &a})
	}
	return entries, nil
}

// ListTrends returns all stored trends records with their keys in insertion order
func (r *Repository) ListTrends(ctx context.Context) ([]TrendsEntry, error) {
	recs, err := r.store.List(ctx, KindTrend)
	if err != nil {
		return nil, err
	}

	entries := make([]TrendsEntry, 0, len(recs))
	for _, rec := range recs {
		var t models.ExtractionTrends
		if err := json.Unmarshal(rec.Value, &t); err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, rec.Kind, rec.Key, err)
		}
		entries = append(entries, TrendsEntry{Key: rec.Key, Trends: &t})
	}
	return entries, nil
}

// GetAlert returns one alert by key, ErrNotFound when absent
func (r *Repository) GetAlert(ctx context.Context, key string) (*models.Alert, error) {
	rec, err := r.store.Get(ctx, KindAlert, key)
	if err != nil {
		return nil, err
	}

	var a models.Alert
	if err := json.Unmarshal(rec.Value, &a); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, rec.Kind, rec.Key, err)
	}
	return &a, nil
}

// GetTrends returns one trends record by key, ErrNotFound when absent
func (r *Repository) GetTrends(ctx context.Context, key string) (*models.ExtractionTrends, error) {
	rec, err := r.store.Get(ctx, KindTrend, key)
	if err != nil {
		return nil, err
	}

	var t models.ExtractionTrends
	if err := json.Unmarshal(rec.Value, &t); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, rec.Kind, rec.Key, err)
	}
	return &t, nil
}

// Ping checks the backend connection
func (r *Repository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// Close releases the backend
func (r *Repository) Close() error {
	return r.store.Close()
}
