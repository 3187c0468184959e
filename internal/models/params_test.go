package models_test

import (
	"testing"

	"brewmetrics/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func uintPtr(v uint64) *uint64    { return &v }

func TestExtractionParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  models.ExtractionParams
		wantErr error
	}{
		{"empty params", models.ExtractionParams{}, nil},
		{
			"all in range",
			models.ExtractionParams{
				Temperature: floatPtr(93.0),
				Pressure:    floatPtr(9.0),
				TimeSeconds: uintPtr(25),
			},
			nil,
		},
		{
			"boundary values",
			models.ExtractionParams{
				Temperature: floatPtr(90.0),
				Pressure:    floatPtr(10.0),
				TimeSeconds: uintPtr(30),
			},
			nil,
		},
		{
			"temperature too low",
			models.ExtractionParams{Temperature: floatPtr(89.9)},
			models.ErrTemperatureOutOfRange,
		},
		{
			"temperature too high",
			models.ExtractionParams{Temperature: floatPtr(97.0)},
			models.ErrTemperatureOutOfRange,
		},
		{
			"pressure too low",
			models.ExtractionParams{Pressure: floatPtr(7.5)},
			models.ErrPressureOutOfRange,
		},
		{
			"pressure too high",
			models.ExtractionParams{Pressure: floatPtr(11.0)},
			models.ErrPressureOutOfRange,
		},
		{
			"time too short",
			models.ExtractionParams{TimeSeconds: uintPtr(10)},
			models.ErrTimeOutOfRange,
		},
		{
			"time too long",
			models.ExtractionParams{TimeSeconds: uintPtr(45)},
			models.ErrTimeOutOfRange,
		},
		{
			"temperature checked before pressure",
			models.ExtractionParams{
				Temperature: floatPtr(80.0),
				Pressure:    floatPtr(20.0),
			},
			models.ErrTemperatureOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	// The error text is served verbatim by the API, so the wording is part
	// of the contract.
	cases := []struct {
		err  error
		want string
	}{
		{models.ErrTemperatureOutOfRange, "Temperature must be between 90.0 and 96.0"},
		{models.ErrPressureOutOfRange, "Pressure must be between 8.0 and 10.0"},
		{models.ErrTimeOutOfRange, "Time must be between 20 and 30 seconds"},
	}

	for _, tc := range cases {
		if tc.err.Error() != tc.want {
			t.Errorf("error message = %q, want %q", tc.err.Error(), tc.want)
		}
	}
}
