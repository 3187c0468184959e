package models

import (
	"errors"
	"strings"
)

// CoffeeType identifies the bean variety loaded for a shot
type CoffeeType string

const (
	CoffeeArabica      CoffeeType = "Arabica"
	CoffeeRobusta      CoffeeType = "Robusta"
	CoffeeBlend        CoffeeType = "Blend"
	CoffeeSingleOrigin CoffeeType = "SingleOrigin"
)

// RoastLevel identifies how dark the beans were roasted
type RoastLevel string

const (
	RoastLight     RoastLevel = "Light"
	RoastMedium    RoastLevel = "Medium"
	RoastDark      RoastLevel = "Dark"
	RoastExtraDark RoastLevel = "ExtraDark"
)

// GrindSize identifies the grinder setting
type GrindSize string

const (
	GrindCoarse GrindSize = "Coarse"
	GrindMedium GrindSize = "Medium"
	GrindFine   GrindSize = "Fine"
)

// Nominal extraction ranges. A shot with all three parameters inside these
// bounds is a perfect extraction.
const (
	TemperatureMin = 90.0
	TemperatureMax = 96.0
	PressureMin    = 8.0
	PressureMax    = 10.0
	TimeSecondsMin = 20
	TimeSecondsMax = 30
)

// Simulation defaults applied when a parameter is not supplied. These sit
// deliberately outside the nominal ranges, so a default shot is suboptimal.
const (
	DefaultTemperature = 98.6
	DefaultPressure    = 1013.25
	DefaultTimeSeconds = 60

	// WaterVolumeOz is fixed for every simulated shot.
	WaterVolumeOz = 8.0
)

// Default bean parameters.
const (
	DefaultCoffeeType = CoffeeArabica
	DefaultRoastLevel = RoastMedium
	DefaultGrindSize  = GrindMedium
)

// Extraction result classifications.
const (
	ResultPerfect    = "Perfect Extraction"
	ResultSuboptimal = "Suboptimal Extraction"
)

// Parse errors for the closed enum sets
var (
	ErrInvalidCoffeeType = errors.New("invalid coffee type")
	ErrInvalidRoastLevel = errors.New("invalid roast level")
	ErrInvalidGrindSize  = errors.New("invalid grind size")
)

// ExtractionMetrics is one fully derived extraction reading. It is built in
// a single pass by the simulator; the derived fields (Result, QualityScore,
// Recommendations) are consistent with the raw parameters at construction
// time and the record is never mutated afterwards.
type ExtractionMetrics struct {
	// Creation time, seconds since epoch
	Timestamp uint64 `json:"timestamp"`

	// Raw shot parameters
	Temperature   float64 `json:"temperature"`
	Pressure      float64 `json:"pressure"`
	TimeSeconds   uint64  `json:"time_seconds"`
	WaterVolumeOz float64 `json:"water_volume_oz"`

	// Bean parameters
	CoffeeType CoffeeType `json:"coffee_type"`
	RoastLevel RoastLevel `json:"roast_level"`
	GrindSize  GrindSize  `json:"grind_size"`

	// Derived fields
	Result          string   `json:"result"`
	QualityScore    int      `json:"quality_score"`
	Recommendations []string `json:"recommendations"`
}

// TemperatureInRange reports whether a brew temperature sits inside the
// nominal window.
func TemperatureInRange(temp float64) bool {
	return temp >= TemperatureMin && temp <= TemperatureMax
}

// PressureInRange reports whether a brew pressure sits inside the nominal
// window.
func PressureInRange(pressure float64) bool {
	return pressure >= PressureMin && pressure <= PressureMax
}

// TimeInRange reports whether an extraction time sits inside the nominal
// window.
func TimeInRange(seconds uint64) bool {
	return seconds >= TimeSecondsMin && seconds <= TimeSecondsMax
}

// IsPerfect reports whether temperature, pressure and extraction time are all
// inside their nominal ranges.
func (m *ExtractionMetrics) IsPerfect() bool {
	return TemperatureInRange(m.Temperature) &&
		PressureInRange(m.Pressure) &&
		TimeInRange(m.TimeSeconds)
}

// IsGood reports whether temperature and pressure are in range regardless of
// extraction time. Every perfect reading is also good.
func (m *ExtractionMetrics) IsGood() bool {
	return m.IsPerfect() ||
		(TemperatureInRange(m.Temperature) && PressureInRange(m.Pressure))
}

// IsValid checks if the coffee type is one of the known varieties
func (c CoffeeType) IsValid() bool {
	switch c {
	case CoffeeArabica, CoffeeRobusta, CoffeeBlend, CoffeeSingleOrigin:
		return true
	default:
		return false
	}
}

// IsValid checks if the roast level is valid
func (r RoastLevel) IsValid() bool {
	switch r {
	case RoastLight, RoastMedium, RoastDark, RoastExtraDark:
		return true
	default:
		return false
	}
}

// IsValid checks if the grind size is valid
func (g GrindSize) IsValid() bool {
	switch g {
	case GrindCoarse, GrindMedium, GrindFine:
		return true
	default:
		return false
	}
}

// ParseCoffeeType parses a coffee type, accepting any casing
func ParseCoffeeType(s string) (CoffeeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arabica":
		return CoffeeArabica, nil
	case "robusta":
		return CoffeeRobusta, nil
	case "blend":
		return CoffeeBlend, nil
	case "singleorigin", "single_origin":
		return CoffeeSingleOrigin, nil
	default:
		return "", ErrInvalidCoffeeType
	}
}

// ParseRoastLevel parses a roast level, accepting any casing
func ParseRoastLevel(s string) (RoastLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return RoastLight, nil
	case "medium":
		return RoastMedium, nil
	case "dark":
		return RoastDark, nil
	case "extradark", "extra_dark":
		return RoastExtraDark, nil
	default:
		return "", ErrInvalidRoastLevel
	}
}

// ParseGrindSize parses a grind size, accepting any casing
func ParseGrindSize(s string) (GrindSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coarse":
		return GrindCoarse, nil
	case "medium":
		return GrindMedium, nil
	case "fine":
		return GrindFine, nil
	default:
		return "", ErrInvalidGrindSize
	}
}
