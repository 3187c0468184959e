package analytics_test

import (
	"testing"

	"brewmetrics/internal/analytics"
	"brewmetrics/internal/models"
)

func TestCalculateTrendsEmptyHistory(t *testing.T) {
	trends := analytics.CalculateTrends(nil, models.PeriodWeekly)

	if trends.Period != models.PeriodWeekly {
		t.Errorf("Period = %s, want Weekly", trends.Period)
	}
	if trends.PerfectExtractionRate != 0 {
		t.Errorf("PerfectExtractionRate = %v, want 0", trends.PerfectExtractionRate)
	}
	if trends.AvgMetrics != (models.AverageMetrics{}) {
		t.Errorf("AvgMetrics = %+v, want zero", trends.AvgMetrics)
	}
	if trends.TrendDirection != models.TrendDeclining {
		t.Errorf("TrendDirection = %s, want Declining", trends.TrendDirection)
	}
	if trends.QualityDistribution != (models.QualityDistribution{}) {
		t.Errorf("QualityDistribution = %+v, want zero", trends.QualityDistribution)
	}
}

func TestCalculateTrendsMixedHistory(t *testing.T) {
	history := []*models.ExtractionMetrics{
		reading(93.0, 9.0, 25),  // perfect
		reading(93.0, 9.0, 25),  // perfect
		reading(93.0, 9.0, 45),  // good but slow
		reading(85.0, 12.0, 25), // suboptimal
	}

	trends := analytics.CalculateTrends(history, models.PeriodDaily)

	if trends.PerfectExtractionRate != 50.0 {
		t.Errorf("PerfectExtractionRate = %v, want 50.0", trends.PerfectExtractionRate)
	}

	wantAvg := models.AverageMetrics{
		Temperature:    91.0,
		Pressure:       9.75,
		ExtractionTime: 30.0,
	}
	if trends.AvgMetrics != wantAvg {
		t.Errorf("AvgMetrics = %+v, want %+v", trends.AvgMetrics, wantAvg)
	}

	// Rate 50 sits on the stable floor, which is exclusive.
	if trends.TrendDirection != models.TrendDeclining {
		t.Errorf("TrendDirection = %s, want Declining", trends.TrendDirection)
	}

	// Perfect readings count into both perfect and good.
	wantDist := models.QualityDistribution{Perfect: 2, Good: 3, Suboptimal: 1}
	if trends.QualityDistribution != wantDist {
		t.Errorf("QualityDistribution = %+v, want %+v", trends.QualityDistribution, wantDist)
	}
}

func TestCalculateTrendsAllPerfect(t *testing.T) {
	history := []*models.ExtractionMetrics{
		reading(93.0, 9.0, 25),
		reading(92.0, 8.5, 28),
		reading(95.0, 9.5, 21),
	}

	trends := analytics.CalculateTrends(history, models.PeriodMonthly)

	if trends.PerfectExtractionRate != 100.0 {
		t.Errorf("PerfectExtractionRate = %v, want 100.0", trends.PerfectExtractionRate)
	}
	if trends.TrendDirection != models.TrendImproving {
		t.Errorf("TrendDirection = %s, want Improving", trends.TrendDirection)
	}

	wantDist := models.QualityDistribution{Perfect: 3, Good: 3, Suboptimal: 0}
	if trends.QualityDistribution != wantDist {
		t.Errorf("QualityDistribution = %+v, want %+v", trends.QualityDistribution, wantDist)
	}
}

func TestTrendDirectionThresholds(t *testing.T) {
	perfect := func() *models.ExtractionMetrics { return reading(93.0, 9.0, 25) }
	suboptimal := func() *models.ExtractionMetrics { return reading(85.0, 12.0, 25) }

	tests := []struct {
		name     string
		perfects int
		total    int
		want     models.TrendDirection
	}{
		{"all perfect", 5, 5, models.TrendImproving},
		{"four of five", 4, 5, models.TrendImproving},
		{"exactly three quarters", 3, 4, models.TrendStable},
		{"three of five", 3, 5, models.TrendStable},
		{"exactly half", 2, 4, models.TrendDeclining},
		{"none perfect", 0, 5, models.TrendDeclining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var history []*models.ExtractionMetrics
			for i := 0; i < tt.perfects; i++ {
				history = append(history, perfect())
			}
			for i := tt.perfects; i < tt.total; i++ {
				history = append(history, suboptimal())
			}

			trends := analytics.CalculateTrends(history, models.PeriodYearly)
			if trends.TrendDirection != tt.want {
				t.Errorf("TrendDirection = %s, want %s (rate %v)",
					trends.TrendDirection, tt.want, trends.PerfectExtractionRate)
			}
		})
	}
}
