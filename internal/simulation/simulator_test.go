package simulation_test

import (
	"reflect"
	"testing"

	"brewmetrics/internal/models"
	"brewmetrics/internal/simulation"
)

func floatPtr(v float64) *float64                 { return &v }
func uintPtr(v uint64) *uint64                    { return &v }
func coffeePtr(c models.CoffeeType) *models.CoffeeType { return &c }
func roastPtr(r models.RoastLevel) *models.RoastLevel  { return &r }
func grindPtr(g models.GrindSize) *models.GrindSize    { return &g }

func TestSimulateDefaults(t *testing.T) {
	m := simulation.Simulate(models.ExtractionParams{})

	if m.Timestamp == 0 {
		t.Error("Timestamp should be set")
	}
	if m.Temperature != models.DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", m.Temperature, models.DefaultTemperature)
	}
	if m.Pressure != models.DefaultPressure {
		t.Errorf("Pressure = %v, want %v", m.Pressure, models.DefaultPressure)
	}
	if m.TimeSeconds != models.DefaultTimeSeconds {
		t.Errorf("TimeSeconds = %v, want %v", m.TimeSeconds, models.DefaultTimeSeconds)
	}
	if m.WaterVolumeOz != models.WaterVolumeOz {
		t.Errorf("WaterVolumeOz = %v, want %v", m.WaterVolumeOz, models.WaterVolumeOz)
	}
	if m.CoffeeType != models.CoffeeArabica || m.RoastLevel != models.RoastMedium || m.GrindSize != models.GrindMedium {
		t.Errorf("bean defaults = %v/%v/%v, want Arabica/Medium/Medium", m.CoffeeType, m.RoastLevel, m.GrindSize)
	}
	if m.Result != models.ResultSuboptimal {
		t.Errorf("Result = %q, want %q", m.Result, models.ResultSuboptimal)
	}

	// temperature 98.6 scores -12 (the float64 literal sits just under 98.6,
	// so the raw score is -12.99... and truncates toward zero), pressure
	// 1013.25 scores -15048, time 60 scores -90, plus the Arabica/Medium
	// bonus.
	if m.QualityScore != -15145 {
		t.Errorf("QualityScore = %d, want -15145", m.QualityScore)
	}

	wantRecs := []string{
		"decrease temperature to 96.0 degrees",
		"decrease pressure to 10.0 psi",
		"decrease extraction time to 30 seconds",
		"try a light roast to highlight the arabica acidity",
	}
	if !reflect.DeepEqual(m.Recommendations, wantRecs) {
		t.Errorf("Recommendations = %v, want %v", m.Recommendations, wantRecs)
	}
}

func TestSimulatePerfectShot(t *testing.T) {
	m := simulation.Simulate(models.ExtractionParams{
		Temperature: floatPtr(92.0),
		Pressure:    floatPtr(9.0),
		TimeSeconds: uintPtr(25),
	})

	if m.Result != models.ResultPerfect {
		t.Errorf("Result = %q, want %q", m.Result, models.ResultPerfect)
	}

	// 30 per dimension, +5 for Arabica/Medium, +5 for a medium grind running
	// in the nominal window.
	if m.QualityScore != 100 {
		t.Errorf("QualityScore = %d, want 100", m.QualityScore)
	}

	wantRecs := []string{"try a light roast to highlight the arabica acidity"}
	if !reflect.DeepEqual(m.Recommendations, wantRecs) {
		t.Errorf("Recommendations = %v, want %v", m.Recommendations, wantRecs)
	}
}

func TestSimulatePerfectShotWithoutBonuses(t *testing.T) {
	m := simulation.Simulate(models.ExtractionParams{
		Temperature: floatPtr(93.0),
		Pressure:    floatPtr(9.0),
		TimeSeconds: uintPtr(25),
		RoastLevel:  roastPtr(models.RoastDark),
		GrindSize:   grindPtr(models.GrindFine),
	})

	if m.Result != models.ResultPerfect {
		t.Errorf("Result = %q, want %q", m.Result, models.ResultPerfect)
	}
	if m.QualityScore != 90 {
		t.Errorf("QualityScore = %d, want 90", m.QualityScore)
	}
	if len(m.Recommendations) != 0 {
		t.Errorf("Recommendations = %v, want none", m.Recommendations)
	}
}

func TestQualityScoreDimensions(t *testing.T) {
	// Arabica/Dark and a fine grind at 25s keep both bonuses out of the way
	// so each case isolates one dimension formula.
	base := func() models.ExtractionParams {
		return models.ExtractionParams{
			Temperature: floatPtr(93.0),
			Pressure:    floatPtr(9.0),
			TimeSeconds: uintPtr(25),
			RoastLevel:  roastPtr(models.RoastDark),
			GrindSize:   grindPtr(models.GrindFine),
		}
	}

	tests := []struct {
		name   string
		modify func(*models.ExtractionParams)
		want   int
	}{
		{"all in range", func(p *models.ExtractionParams) {}, 90},
		{"temperature below min", func(p *models.ExtractionParams) { p.Temperature = floatPtr(45.0) }, 75},
		{"temperature just below min truncates to zero", func(p *models.ExtractionParams) { p.Temperature = floatPtr(89.0) }, 60},
		// 98.6 as a float64 is below 98.6, so its dimension score is -12, not -13.
		{"temperature above max", func(p *models.ExtractionParams) { p.Temperature = floatPtr(98.6) }, 48},
		{"pressure below min", func(p *models.ExtractionParams) { p.Pressure = floatPtr(4.0) }, 75},
		{"pressure above max", func(p *models.ExtractionParams) { p.Pressure = floatPtr(12.0) }, 30},
		{"pressure overshoot truncates toward zero", func(p *models.ExtractionParams) { p.Pressure = floatPtr(10.5) }, 53},
		{"time below min", func(p *models.ExtractionParams) { p.TimeSeconds = uintPtr(10) }, 75},
		{
			// Medium grind so the fine/slow pairing cannot kick in.
			"time above max cancels the window",
			func(p *models.ExtractionParams) {
				p.TimeSeconds = uintPtr(50)
				p.GrindSize = grindPtr(models.GrindMedium)
			},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base()
			tt.modify(&params)
			m := simulation.Simulate(params)
			if m.QualityScore != tt.want {
				t.Errorf("QualityScore = %d, want %d", m.QualityScore, tt.want)
			}
		})
	}
}

func TestQualityScoreBonusPairs(t *testing.T) {
	tests := []struct {
		name   string
		coffee models.CoffeeType
		roast  models.RoastLevel
		want   int
	}{
		{"arabica medium", models.CoffeeArabica, models.RoastMedium, 95},
		{"robusta dark", models.CoffeeRobusta, models.RoastDark, 95},
		{"blend medium", models.CoffeeBlend, models.RoastMedium, 95},
		{"single origin light", models.CoffeeSingleOrigin, models.RoastLight, 95},
		{"arabica dark unmatched", models.CoffeeArabica, models.RoastDark, 90},
		{"robusta extra dark unmatched", models.CoffeeRobusta, models.RoastExtraDark, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := simulation.Simulate(models.ExtractionParams{
				Temperature: floatPtr(93.0),
				Pressure:    floatPtr(9.0),
				TimeSeconds: uintPtr(25),
				CoffeeType:  coffeePtr(tt.coffee),
				RoastLevel:  roastPtr(tt.roast),
				GrindSize:   grindPtr(models.GrindFine),
			})
			if m.QualityScore != tt.want {
				t.Errorf("QualityScore = %d, want %d", m.QualityScore, tt.want)
			}
		})
	}
}

func TestQualityScoreGrindPairs(t *testing.T) {
	tests := []struct {
		name    string
		grind   models.GrindSize
		seconds uint64
		bonus   bool
	}{
		{"coarse fast", models.GrindCoarse, 15, true},
		{"coarse slow", models.GrindCoarse, 25, false},
		{"medium nominal", models.GrindMedium, 25, true},
		{"medium slow", models.GrindMedium, 40, false},
		{"fine slow", models.GrindFine, 35, true},
		{"fine nominal", models.GrindFine, 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			with := simulation.Simulate(models.ExtractionParams{
				Temperature: floatPtr(93.0),
				Pressure:    floatPtr(9.0),
				TimeSeconds: uintPtr(tt.seconds),
				RoastLevel:  roastPtr(models.RoastDark),
				GrindSize:   grindPtr(tt.grind),
			})
			// An unmatchable grind for the same time isolates the bonus.
			var other models.GrindSize
			if tt.grind == models.GrindCoarse {
				other = models.GrindFine
			} else {
				other = models.GrindCoarse
			}
			without := simulation.Simulate(models.ExtractionParams{
				Temperature: floatPtr(93.0),
				Pressure:    floatPtr(9.0),
				TimeSeconds: uintPtr(tt.seconds),
				RoastLevel:  roastPtr(models.RoastDark),
				GrindSize:   grindPtr(other),
			})

			diff := with.QualityScore - without.QualityScore
			wantDiff := 0
			if tt.bonus {
				wantDiff = 5
			}
			if diff != wantDiff {
				t.Errorf("grind bonus diff = %d, want %d", diff, wantDiff)
			}
		})
	}
}

func TestRecommendationOrder(t *testing.T) {
	m := simulation.Simulate(models.ExtractionParams{
		Temperature: floatPtr(85.0),
		Pressure:    floatPtr(12.0),
		TimeSeconds: uintPtr(35),
		CoffeeType:  coffeePtr(models.CoffeeSingleOrigin),
		RoastLevel:  roastPtr(models.RoastLight),
		GrindSize:   grindPtr(models.GrindFine),
	})

	wantRecs := []string{
		"increase temperature to 90.0 degrees",
		"decrease pressure to 10.0 psi",
		"decrease extraction time to 30 seconds",
		"use a coarser grind to shorten the extraction",
		"try a medium roast to round out the single origin cup",
	}
	if !reflect.DeepEqual(m.Recommendations, wantRecs) {
		t.Errorf("Recommendations = %v, want %v", m.Recommendations, wantRecs)
	}
}

func TestRecommendationsFastCoarseShot(t *testing.T) {
	m := simulation.Simulate(models.ExtractionParams{
		Temperature: floatPtr(93.0),
		Pressure:    floatPtr(9.0),
		TimeSeconds: uintPtr(15),
		CoffeeType:  coffeePtr(models.CoffeeBlend),
		RoastLevel:  roastPtr(models.RoastMedium),
		GrindSize:   grindPtr(models.GrindCoarse),
	})

	wantRecs := []string{
		"increase extraction time to 20 seconds",
		"use a finer grind to lengthen the extraction",
		"try a dark roast to deepen the blend body",
	}
	if !reflect.DeepEqual(m.Recommendations, wantRecs) {
		t.Errorf("Recommendations = %v, want %v", m.Recommendations, wantRecs)
	}

	// 30 + 30 + 7 for a 15s pull, +5 blend/medium, +5 coarse grind on a
	// fast shot.
	if m.QualityScore != 77 {
		t.Errorf("QualityScore = %d, want 77", m.QualityScore)
	}
}
