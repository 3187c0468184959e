package models

import "errors"

// Range validation errors. The text doubles as the API error message, so it
// keeps the user-facing form.
var (
	ErrTemperatureOutOfRange = errors.New("Temperature must be between 90.0 and 96.0")
	ErrPressureOutOfRange    = errors.New("Pressure must be between 8.0 and 10.0")
	ErrTimeOutOfRange        = errors.New("Time must be between 20 and 30 seconds")
)

// ExtractionParams carries the optional simulation inputs. A nil field means
// "not supplied" and falls back to the simulator default.
type ExtractionParams struct {
	Temperature *float64
	Pressure    *float64
	TimeSeconds *uint64
	CoffeeType  *CoffeeType
	RoastLevel  *RoastLevel
	GrindSize   *GrindSize
}

// Validate rejects explicitly supplied values outside the declared ranges.
// Range enforcement is the request layer's concern; the simulator itself
// never rejects, it only defaults. Absent fields always pass.
func (p ExtractionParams) Validate() error {
	if p.Temperature != nil && !TemperatureInRange(*p.Temperature) {
		return ErrTemperatureOutOfRange
	}

	if p.Pressure != nil && !PressureInRange(*p.Pressure) {
		return ErrPressureOutOfRange
	}

	if p.TimeSeconds != nil && !TimeInRange(*p.TimeSeconds) {
		return ErrTimeOutOfRange
	}

	return nil
}
