package notification

import (
	"context"
	"errors"
	"fmt"

	"brewmetrics/internal/logger"
	"brewmetrics/internal/models"
)

// Notifier delivers an alert through one outbound channel
type Notifier interface {
	Name() string
	Send(ctx context.Context, alert *models.Alert) error
}

// Orchestrator fans an alert out to every configured notifier. Every channel
// gets its attempt even when an earlier one fails; the returned error joins
// all failures.
type Orchestrator struct {
	notifiers []Notifier
}

// NewOrchestrator creates an orchestrator over the given notifiers
func NewOrchestrator(notifiers ...Notifier) *Orchestrator {
	return &Orchestrator{notifiers: notifiers}
}

// Channels returns the names of the configured notifiers
func (o *Orchestrator) Channels() []string {
	names := make([]string, 0, len(o.notifiers))
	for _, n := range o.notifiers {
		names = append(names, n.Name())
	}
	return names
}

// Notify delivers the alert through all channels
func (o *Orchestrator) Notify(ctx context.Context, alert *models.Alert) error {
	log := logger.WithComponent("notification")

	var errs []error
	for _, n := range o.notifiers {
		if err := n.Send(ctx, alert); err != nil {
			log.Error().
				Err(err).
				Str("channel", n.Name()).
				Str("alert_id", alert.ID).
				Msg("notification delivery failed")
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}

		log.Debug().
			Str("channel", n.Name()).
			Str("alert_id", alert.ID).
			Msg("notification delivered")
	}

	return errors.Join(errs...)
}
