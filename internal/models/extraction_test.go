package models_test

import (
	"testing"

	"brewmetrics/internal/models"
)

func TestCoffeeTypeIsValid(t *testing.T) {
	validTypes := []models.CoffeeType{
		models.CoffeeArabica,
		models.CoffeeRobusta,
		models.CoffeeBlend,
		models.CoffeeSingleOrigin,
	}
	for _, c := range validTypes {
		if !c.IsValid() {
			t.Errorf("CoffeeType %s should be valid", c)
		}
	}

	if models.CoffeeType("Decaf").IsValid() {
		t.Error("Unknown coffee type should return false")
	}
}

func TestRoastLevelIsValid(t *testing.T) {
	validLevels := []models.RoastLevel{
		models.RoastLight,
		models.RoastMedium,
		models.RoastDark,
		models.RoastExtraDark,
	}
	for _, r := range validLevels {
		if !r.IsValid() {
			t.Errorf("RoastLevel %s should be valid", r)
		}
	}

	if models.RoastLevel("Burnt").IsValid() {
		t.Error("Unknown roast level should return false")
	}
}

func TestGrindSizeIsValid(t *testing.T) {
	validSizes := []models.GrindSize{
		models.GrindCoarse,
		models.GrindMedium,
		models.GrindFine,
	}
	for _, g := range validSizes {
		if !g.IsValid() {
			t.Errorf("GrindSize %s should be valid", g)
		}
	}

	if models.GrindSize("Powder").IsValid() {
		t.Error("Unknown grind size should return false")
	}
}

func TestParseCoffeeType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.CoffeeType
		wantErr error
	}{
		{"canonical", "Arabica", models.CoffeeArabica, nil},
		{"lowercase", "robusta", models.CoffeeRobusta, nil},
		{"uppercase", "BLEND", models.CoffeeBlend, nil},
		{"padded", "  arabica  ", models.CoffeeArabica, nil},
		{"single origin joined", "SingleOrigin", models.CoffeeSingleOrigin, nil},
		{"single origin snake", "single_origin", models.CoffeeSingleOrigin, nil},
		{"unknown", "decaf", "", models.ErrInvalidCoffeeType},
		{"empty", "", "", models.ErrInvalidCoffeeType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := models.ParseCoffeeType(tt.input)
			if err != tt.wantErr {
				t.Errorf("ParseCoffeeType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCoffeeType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRoastLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.RoastLevel
		wantErr error
	}{
		{"canonical", "Medium", models.RoastMedium, nil},
		{"lowercase", "light", models.RoastLight, nil},
		{"uppercase", "DARK", models.RoastDark, nil},
		{"extra dark joined", "ExtraDark", models.RoastExtraDark, nil},
		{"extra dark snake", "extra_dark", models.RoastExtraDark, nil},
		{"unknown", "burnt", "", models.ErrInvalidRoastLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := models.ParseRoastLevel(tt.input)
			if err != tt.wantErr {
				t.Errorf("ParseRoastLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRoastLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseGrindSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.GrindSize
		wantErr error
	}{
		{"canonical", "Coarse", models.GrindCoarse, nil},
		{"lowercase", "medium", models.GrindMedium, nil},
		{"uppercase", "FINE", models.GrindFine, nil},
		{"unknown", "powder", "", models.ErrInvalidGrindSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := models.ParseGrindSize(tt.input)
			if err != tt.wantErr {
				t.Errorf("ParseGrindSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseGrindSize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRangeBounds(t *testing.T) {
	tempCases := []struct {
		value float64
		want  bool
	}{
		{90.0, true},
		{96.0, true},
		{93.0, true},
		{89.9, false},
		{96.1, false},
	}
	for _, tc := range tempCases {
		if got := models.TemperatureInRange(tc.value); got != tc.want {
			t.Errorf("TemperatureInRange(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}

	pressureCases := []struct {
		value float64
		want  bool
	}{
		{8.0, true},
		{10.0, true},
		{9.0, true},
		{7.9, false},
		{10.1, false},
	}
	for _, tc := range pressureCases {
		if got := models.PressureInRange(tc.value); got != tc.want {
			t.Errorf("PressureInRange(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}

	timeCases := []struct {
		value uint64
		want  bool
	}{
		{20, true},
		{30, true},
		{25, true},
		{19, false},
		{31, false},
	}
	for _, tc := range timeCases {
		if got := models.TimeInRange(tc.value); got != tc.want {
			t.Errorf("TimeInRange(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestIsPerfectAndIsGood(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		pressure    float64
		seconds     uint64
		wantPerfect bool
		wantGood    bool
	}{
		{"all in range", 93.0, 9.0, 25, true, true},
		{"slow shot", 93.0, 9.0, 45, false, true},
		{"fast shot", 93.0, 9.0, 10, false, true},
		{"cold", 85.0, 9.0, 25, false, false},
		{"over pressure", 93.0, 12.0, 25, false, false},
		{"everything off", 98.6, 1013.25, 60, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &models.ExtractionMetrics{
				Temperature: tt.temperature,
				Pressure:    tt.pressure,
				TimeSeconds: tt.seconds,
			}
			if got := m.IsPerfect(); got != tt.wantPerfect {
				t.Errorf("IsPerfect() = %v, want %v", got, tt.wantPerfect)
			}
			if got := m.IsGood(); got != tt.wantGood {
				t.Errorf("IsGood() = %v, want %v", got, tt.wantGood)
			}
		})
	}
}
