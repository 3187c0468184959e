package simulation

import (
	"time"

	"brewmetrics/internal/models"
)

const (
	// Points awarded per in-range parameter
	dimensionPoints = 30

	// Points awarded per matched pairing
	pairBonus = 5
)

// Simulate derives a complete extraction reading from the supplied
// parameters, falling back to the package defaults for anything absent. The
// reading is built in two phases: raw fields first, then the derived fields
// (result, quality score, recommendations) from that raw snapshot. Callers
// must not mutate the returned record.
func Simulate(params models.ExtractionParams) *models.ExtractionMetrics {
	m := &models.ExtractionMetrics{
		Timestamp:     uint64(time.Now().Unix()),
		Temperature:   models.DefaultTemperature,
		Pressure:      models.DefaultPressure,
		TimeSeconds:   models.DefaultTimeSeconds,
		WaterVolumeOz: models.WaterVolumeOz,
		CoffeeType:    models.DefaultCoffeeType,
		RoastLevel:    models.DefaultRoastLevel,
		GrindSize:     models.DefaultGrindSize,
	}

	if params.Temperature != nil {
		m.Temperature = *params.Temperature
	}
	if params.Pressure != nil {
		m.Pressure = *params.Pressure
	}
	if params.TimeSeconds != nil {
		m.TimeSeconds = *params.TimeSeconds
	}
	if params.CoffeeType != nil {
		m.CoffeeType = *params.CoffeeType
	}
	if params.RoastLevel != nil {
		m.RoastLevel = *params.RoastLevel
	}
	if params.GrindSize != nil {
		m.GrindSize = *params.GrindSize
	}

	// Derive from the raw snapshot. Nothing below touches the raw fields.
	m.Result = models.ResultSuboptimal
	if m.IsPerfect() {
		m.Result = models.ResultPerfect
	}
	m.QualityScore = qualityScore(m)
	m.Recommendations = recommendations(m)

	return m
}

// qualityScore sums the three dimension scores plus the pairing bonuses.
// The total is intentionally unclamped: parameters far outside their nominal
// ranges drive it strongly negative, and bonuses can push a perfect shot
// past 100.
func qualityScore(m *models.ExtractionMetrics) int {
	score := dimensionScore(m.Temperature, models.TemperatureMin, models.TemperatureMax)
	score += dimensionScore(m.Pressure, models.PressureMin, models.PressureMax)
	score += dimensionScore(float64(m.TimeSeconds), models.TimeSecondsMin, models.TimeSecondsMax)

	if coffeeRoastMatched(m.CoffeeType, m.RoastLevel) {
		score += pairBonus
	}
	if grindTimeMatched(m.GrindSize, m.TimeSeconds) {
		score += pairBonus
	}

	return score
}

// dimensionScore awards up to 30 points for one parameter. In-range values
// take full points; out-of-range values are scored proportionally and may go
// negative. Conversions truncate toward zero.
func dimensionScore(value, min, max float64) int {
	switch {
	case value >= min && value <= max:
		return dimensionPoints
	case value < min:
		return int(dimensionPoints * (1 - value/min))
	default:
		return int(dimensionPoints * (max - value) / (max - min))
	}
}

// coffeeRoastMatched reports whether the roast level suits the bean variety
func coffeeRoastMatched(c models.CoffeeType, r models.RoastLevel) bool {
	switch c {
	case models.CoffeeArabica:
		return r == models.RoastMedium
	case models.CoffeeRobusta:
		return r == models.RoastDark
	case models.CoffeeBlend:
		return r == models.RoastMedium
	case models.CoffeeSingleOrigin:
		return r == models.RoastLight
	default:
		return false
	}
}

// grindTimeMatched reports whether the grind size suits the observed
// extraction time: coarse grinds run fast, fine grinds run slow, medium
// grinds land in the nominal window.
func grindTimeMatched(g models.GrindSize, seconds uint64) bool {
	switch g {
	case models.GrindCoarse:
		return seconds < models.TimeSecondsMin
	case models.GrindMedium:
		return models.TimeInRange(seconds)
	case models.GrindFine:
		return seconds > models.TimeSecondsMax
	default:
		return false
	}
}

// recommendations builds the ordered improvement hints for a reading. Each
// check appends at most one hint; the order is temperature, pressure, time,
// grind pairing, roast pairing. The roast hint fires whenever the bean and
// roast match a known pairing, even on an otherwise perfect shot.
func recommendations(m *models.ExtractionMetrics) []string {
	recs := []string{}

	if m.Temperature < models.TemperatureMin {
		recs = append(recs, "increase temperature to 90.0 degrees")
	} else if m.Temperature > models.TemperatureMax {
		recs = append(recs, "decrease temperature to 96.0 degrees")
	}

	if m.Pressure < models.PressureMin {
		recs = append(recs, "increase pressure to 8.0 psi")
	} else if m.Pressure > models.PressureMax {
		recs = append(recs, "decrease pressure to 10.0 psi")
	}

	if m.TimeSeconds < models.TimeSecondsMin {
		recs = append(recs, "increase extraction time to 20 seconds")
	} else if m.TimeSeconds > models.TimeSecondsMax {
		recs = append(recs, "decrease extraction time to 30 seconds")
	}

	if m.GrindSize == models.GrindFine && m.TimeSeconds > models.TimeSecondsMax {
		recs = append(recs, "use a coarser grind to shorten the extraction")
	} else if m.GrindSize == models.GrindCoarse && m.TimeSeconds < models.TimeSecondsMin {
		recs = append(recs, "use a finer grind to lengthen the extraction")
	}

	switch {
	case m.CoffeeType == models.CoffeeArabica && m.RoastLevel == models.RoastMedium:
		recs = append(recs, "try a light roast to highlight the arabica acidity")
	case m.CoffeeType == models.CoffeeRobusta && m.RoastLevel == models.RoastDark:
		recs = append(recs, "try a medium roast to soften the robusta bitterness")
	case m.CoffeeType == models.CoffeeBlend && m.RoastLevel == models.RoastMedium:
		recs = append(recs, "try a dark roast to deepen the blend body")
	case m.CoffeeType == models.CoffeeSingleOrigin && m.RoastLevel == models.RoastLight:
		recs = append(recs, "try a medium roast to round out the single origin cup")
	}

	return recs
}
