package analytics

import "brewmetrics/internal/models"

// Trend direction thresholds against the percent perfect rate
const (
	improvingRateFloor = 75.0
	stableRateFloor    = 50.0
)

// CalculateTrends aggregates historical readings into one trends record for
// the given period. An empty history yields the zero aggregate: rate 0, zero
// averages, zero distribution, Declining.
func CalculateTrends(history []*models.ExtractionMetrics, period models.TrendPeriod) *models.ExtractionTrends {
	rate := perfectExtractionRate(history)
	return &models.ExtractionTrends{
		Period:                period,
		PerfectExtractionRate: rate,
		AvgMetrics:            averageMetrics(history),
		TrendDirection:        trendDirection(rate),
		QualityDistribution:   qualityDistribution(history),
	}
}

// perfectExtractionRate returns the percent share of perfect readings, 0 for
// an empty history
func perfectExtractionRate(history []*models.ExtractionMetrics) float64 {
	if len(history) == 0 {
		return 0
	}

	perfect := 0
	for _, m := range history {
		if m.IsPerfect() {
			perfect++
		}
	}

	return float64(perfect) / float64(len(history)) * 100.0
}

func averageMetrics(history []*models.ExtractionMetrics) models.AverageMetrics {
	if len(history) == 0 {
		return models.AverageMetrics{}
	}

	var sumTemp, sumPressure, sumTime float64
	for _, m := range history {
		sumTemp += m.Temperature
		sumPressure += m.Pressure
		sumTime += float64(m.TimeSeconds)
	}

	total := float64(len(history))
	return models.AverageMetrics{
		Temperature:    sumTemp / total,
		Pressure:       sumPressure / total,
		ExtractionTime: sumTime / total,
	}
}

func trendDirection(rate float64) models.TrendDirection {
	switch {
	case rate > improvingRateFloor:
		return models.TrendImproving
	case rate > stableRateFloor:
		return models.TrendStable
	default:
		return models.TrendDeclining
	}
}

// qualityDistribution buckets readings by quality. Perfect readings also
// satisfy the good predicate, so the perfect and good counts overlap.
func qualityDistribution(history []*models.ExtractionMetrics) models.QualityDistribution {
	var dist models.QualityDistribution
	for _, m := range history {
		if m.IsPerfect() {
			dist.Perfect++
		}
		if m.IsGood() {
			dist.Good++
		}
		if !m.IsPerfect() && !m.IsGood() {
			dist.Suboptimal++
		}
	}
	return dist
}
