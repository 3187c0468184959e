package notification_test

import (
	"context"
	"strings"
	"testing"

	"brewmetrics/internal/config"
	"brewmetrics/internal/notification"
)

func TestFormatEmail(t *testing.T) {
	subject, body, err := notification.FormatEmail(criticalAlert())
	if err != nil {
		t.Fatalf("FormatEmail failed: %v", err)
	}

	if subject != "[Critical] Temperature outside acceptable range" {
		t.Errorf("subject = %q", subject)
	}

	for _, want := range []string{
		"Severity: Critical",
		"Category: ParameterDeviation",
		"Alert ID: a-1",
		"Temperature outside acceptable range",
		"temperature: 98.6",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestFormatEmailWithoutMetadata(t *testing.T) {
	alert := criticalAlert()
	alert.Metadata = nil

	_, body, err := notification.FormatEmail(alert)
	if err != nil {
		t.Fatalf("FormatEmail failed: %v", err)
	}

	if strings.Contains(body, "Details:") {
		t.Errorf("body should omit the details section without metadata:\n%s", body)
	}
}

func TestEmailSendSkipsWhenUnconfigured(t *testing.T) {
	notifier := notification.NewEmailNotifier(config.SMTPConfig{Host: ""})

	if err := notifier.Send(context.Background(), criticalAlert()); err != nil {
		t.Errorf("unconfigured SMTP should skip silently, got %v", err)
	}
}
