package models_test

import (
	"testing"

	"brewmetrics/internal/models"
)

func TestAlertSeverityIsValid(t *testing.T) {
	validSeverities := []models.AlertSeverity{
		models.SeverityInfo,
		models.SeverityWarning,
		models.SeverityCritical,
	}
	for _, s := range validSeverities {
		if !s.IsValid() {
			t.Errorf("AlertSeverity %s should be valid", s)
		}
	}

	if models.AlertSeverity("Fatal").IsValid() {
		t.Error("Unknown severity should return false")
	}
}

func TestAlertCategoryIsValid(t *testing.T) {
	validCategories := []models.AlertCategory{
		models.CategoryExtractionQuality,
		models.CategoryParameterDeviation,
		models.CategoryPerformanceTrend,
		models.CategorySystemHealth,
	}
	for _, c := range validCategories {
		if !c.IsValid() {
			t.Errorf("AlertCategory %s should be valid", c)
		}
	}

	if models.AlertCategory("Billing").IsValid() {
		t.Error("Unknown category should return false")
	}
}
