package models

import "time"

// AlertSeverity represents alert severity levels
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "Info"
	SeverityWarning  AlertSeverity = "Warning"
	SeverityCritical AlertSeverity = "Critical"
)

// AlertCategory classifies what an alert is about
type AlertCategory string

const (
	CategoryExtractionQuality  AlertCategory = "ExtractionQuality"
	CategoryParameterDeviation AlertCategory = "ParameterDeviation"
	CategoryPerformanceTrend   AlertCategory = "PerformanceTrend"
	CategorySystemHealth       AlertCategory = "SystemHealth"
)

// Alert is one rule firing against a metrics snapshot. Alerts are created by
// the rule engine only; whoever persists or dispatches them owns them
// afterwards.
type Alert struct {
	// Unique identifier, collision-resistant under concurrent generation
	ID string `json:"id"`

	// Generation time
	Timestamp time.Time `json:"timestamp"`

	Severity AlertSeverity `json:"severity"`
	Category AlertCategory `json:"category"`

	// Human-readable description
	Message string `json:"message"`

	// Triggering values, keyed per rule
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// IsValid checks if the severity level is valid
func (s AlertSeverity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	default:
		return false
	}
}

// IsValid checks if the category is valid
func (c AlertCategory) IsValid() bool {
	switch c {
	case CategoryExtractionQuality, CategoryParameterDeviation,
		CategoryPerformanceTrend, CategorySystemHealth:
		return true
	default:
		return false
	}
}
