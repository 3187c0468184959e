package models

import (
	"errors"
	"strings"
	"time"
)

// TrendPeriod selects which bucket of history a trend summary covers
type TrendPeriod string

const (
	PeriodDaily   TrendPeriod = "Daily"
	PeriodWeekly  TrendPeriod = "Weekly"
	PeriodMonthly TrendPeriod = "Monthly"
	PeriodYearly  TrendPeriod = "Yearly"
)

// TrendDirection classifies where extraction quality is heading
type TrendDirection string

const (
	TrendImproving TrendDirection = "Improving"
	TrendStable    TrendDirection = "Stable"
	TrendDeclining TrendDirection = "Declining"
)

// ErrInvalidTrendPeriod is returned for unknown period names
var ErrInvalidTrendPeriod = errors.New("invalid trend period")

// AverageMetrics holds the arithmetic means over an aggregated history
type AverageMetrics struct {
	Temperature    float64 `json:"temperature"`
	Pressure       float64 `json:"pressure"`
	ExtractionTime float64 `json:"extraction_time"`
}

// QualityDistribution counts readings per quality bucket. Perfect readings
// also satisfy the good predicate, so the perfect and good buckets overlap.
type QualityDistribution struct {
	Perfect    uint32 `json:"perfect"`
	Good       uint32 `json:"good"`
	Suboptimal uint32 `json:"suboptimal"`
}

// ExtractionTrends summarizes a collection of historical readings for one
// reporting period. Produced fresh on every aggregation; never mutated.
type ExtractionTrends struct {
	Period                TrendPeriod         `json:"period"`
	PerfectExtractionRate float64             `json:"perfect_extraction_rate"`
	AvgMetrics            AverageMetrics      `json:"avg_metrics"`
	TrendDirection        TrendDirection      `json:"trend_direction"`
	QualityDistribution   QualityDistribution `json:"quality_distribution"`
}

// IsValid checks if the period is one of the known reporting buckets
func (p TrendPeriod) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	default:
		return false
	}
}

// Window returns the history window a period covers. Bucketing readings by
// this window is the caller's job; the aggregation itself is period-agnostic.
func (p TrendPeriod) Window() time.Duration {
	switch p {
	case PeriodDaily:
		return 24 * time.Hour
	case PeriodWeekly:
		return 7 * 24 * time.Hour
	case PeriodMonthly:
		return 30 * 24 * time.Hour
	case PeriodYearly:
		return 365 * 24 * time.Hour
	default:
		return 0
	}
}

// ParseTrendPeriod parses a period name, accepting any casing
func ParseTrendPeriod(s string) (TrendPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return PeriodDaily, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	case "yearly":
		return PeriodYearly, nil
	default:
		return "", ErrInvalidTrendPeriod
	}
}
