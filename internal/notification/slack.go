package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"brewmetrics/internal/config"
	"brewmetrics/internal/logger"
	"brewmetrics/internal/models"
)

// SlackNotifier posts alerts to a Slack incoming webhook
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a new Slack notifier
func NewSlackNotifier(cfg config.SlackConfig) *SlackNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &SlackNotifier{
		webhookURL: cfg.WebhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *SlackNotifier) Name() string { return "slack" }

// FormatSlackText renders the webhook message text for an alert
func FormatSlackText(alert *models.Alert) string {
	return fmt.Sprintf("Alert [%s] %s: %s", alert.Severity, alert.Category, alert.Message)
}

// Send posts the alert to the webhook. An empty webhook URL logs and skips.
func (s *SlackNotifier) Send(ctx context.Context, alert *models.Alert) error {
	if s.webhookURL == "" {
		log := logger.WithComponent("slack")
		log.Info().
			Str("alert_id", alert.ID).
			Msg("slack webhook not configured, skipping")
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"text": FormatSlackText(alert),
	})
	if err != nil {
		return fmt.Errorf("failed to serialize slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send alert: %s", resp.Status)
	}

	return nil
}
