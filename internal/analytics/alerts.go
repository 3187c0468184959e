package analytics

import (
	"time"

	"github.com/google/uuid"

	"brewmetrics/internal/models"
)

// The perfect extraction rate is percent-scaled, so this threshold trips
// only when perfect shots have all but vanished from the aggregate.
const lowPerfectRateThreshold = 0.4

// Snapshot is the view of the system a rule evaluates against. A nil field
// means the value is unknown in this evaluation context, and rules keyed on
// it stay silent.
type Snapshot struct {
	Temperature *float64
	Pressure    *float64

	// Perfect extraction rate in percent, present only when evaluating an
	// aggregated trends record
	PerfectRate *float64
}

// Rule is one named, independent alert predicate. Evaluate returns nil when
// the rule does not fire.
type Rule struct {
	Name     string
	Evaluate func(Snapshot) *models.Alert
}

// Engine evaluates an ordered rule set against metric snapshots. Rules run
// independently; one firing never masks another, and output order always
// follows registration order.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine loaded with the built-in rules
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			lowPerfectRateRule(),
			temperatureDeviationRule(),
			pressureInstabilityRule(),
		},
	}
}

// Register appends a custom rule after the built-ins. Registration order is
// evaluation order.
func (e *Engine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// GenerateAlerts evaluates a single reading. Per-reading snapshots carry no
// aggregate rate, so rate-based rules stay silent here.
func (e *Engine) GenerateAlerts(m *models.ExtractionMetrics) []models.Alert {
	return e.evaluate(Snapshot{
		Temperature: &m.Temperature,
		Pressure:    &m.Pressure,
	})
}

// EvaluateTrends evaluates an aggregated trends record, which carries only
// the perfect extraction rate.
func (e *Engine) EvaluateTrends(t *models.ExtractionTrends) []models.Alert {
	return e.evaluate(Snapshot{
		PerfectRate: &t.PerfectExtractionRate,
	})
}

func (e *Engine) evaluate(snap Snapshot) []models.Alert {
	var alerts []models.Alert
	for _, rule := range e.rules {
		if alert := rule.Evaluate(snap); alert != nil {
			alerts = append(alerts, *alert)
		}
	}
	return alerts
}

// newAlert stamps a fresh id and timestamp on a fired alert
func newAlert(severity models.AlertSeverity, category models.AlertCategory, message string, metadata map[string]interface{}) *models.Alert {
	return &models.Alert{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Severity:  severity,
		Category:  category,
		Message:   message,
		Metadata:  metadata,
	}
}

func lowPerfectRateRule() Rule {
	return Rule{
		Name: "low_perfect_rate",
		Evaluate: func(snap Snapshot) *models.Alert {
			if snap.PerfectRate != nil && *snap.PerfectRate < lowPerfectRateThreshold {
				return newAlert(
					models.SeverityWarning,
					models.CategoryExtractionQuality,
					"Low perfect extraction rate detected.",
					map[string]interface{}{"perfect_rate": *snap.PerfectRate},
				)
			}
			return nil
		},
	}
}

func temperatureDeviationRule() Rule {
	return Rule{
		Name: "temperature_deviation",
		Evaluate: func(snap Snapshot) *models.Alert {
			if snap.Temperature != nil && !models.TemperatureInRange(*snap.Temperature) {
				return newAlert(
					models.SeverityCritical,
					models.CategoryParameterDeviation,
					"Temperature outside acceptable range",
					map[string]interface{}{"temperature": *snap.Temperature},
				)
			}
			return nil
		},
	}
}

func pressureInstabilityRule() Rule {
	return Rule{
		Name: "pressure_instability",
		Evaluate: func(snap Snapshot) *models.Alert {
			if snap.Pressure != nil && !models.PressureInRange(*snap.Pressure) {
				return newAlert(
					models.SeverityWarning,
					models.CategoryParameterDeviation,
					"Pressure outside stable range",
					map[string]interface{}{"pressure": *snap.Pressure},
				)
			}
			return nil
		},
	}
}
