package notification

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"
	"time"

	"brewmetrics/internal/config"
	"brewmetrics/internal/logger"
	"brewmetrics/internal/models"
)

var emailBodyTemplate = template.Must(template.New("alert_email").Parse(`
Espresso Extraction Alert
=========================

Severity: {{.Severity}}
Category: {{.Category}}
Time:     {{.Timestamp.Format "2006-01-02 15:04:05 MST"}}
Alert ID: {{.ID}}

{{.Message}}
{{- if .Metadata}}

Details:
{{- range $key, $value := .Metadata}}
  {{$key}}: {{$value}}
{{- end}}
{{- end}}

---
BrewMetrics Notification System
`))

// EmailNotifier sends alert emails over SMTP
type EmailNotifier struct {
	config config.SMTPConfig
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{config: cfg}
}

func (e *EmailNotifier) Name() string { return "email" }

// FormatEmail renders the subject and body for an alert email
func FormatEmail(alert *models.Alert) (subject, body string, err error) {
	subject = fmt.Sprintf("[%s] %s", alert.Severity, alert.Message)

	var buf bytes.Buffer
	if err := emailBodyTemplate.Execute(&buf, alert); err != nil {
		return "", "", fmt.Errorf("failed to render email template: %w", err)
	}

	return subject, buf.String(), nil
}

// Send delivers the alert by email. An empty SMTP host logs and skips.
func (e *EmailNotifier) Send(ctx context.Context, alert *models.Alert) error {
	subject, body, err := FormatEmail(alert)
	if err != nil {
		return err
	}

	if e.config.Host == "" {
		log := logger.WithComponent("email")
		log.Info().
			Str("subject", subject).
			Msg("smtp not configured, skipping email")
		return nil
	}

	message := fmt.Sprintf("From: %s\r\n", e.config.From)
	message += fmt.Sprintf("To: %s\r\n", e.config.To)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	message += "\r\n"
	message += body

	var auth smtp.Auth
	if e.config.Username != "" {
		auth = smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)
	}

	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	if err := smtp.SendMail(addr, auth, e.config.From, []string{e.config.To}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log := logger.WithComponent("email")
	log.Info().
		Str("subject", subject).
		Str("to", e.config.To).
		Msg("email sent")
	return nil
}
