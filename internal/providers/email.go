package providers

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"alerting-service/internal/config"
	"alerting-service/internal/models"
)

// EmailSender delivers alerts over SMTP to a configured recipient list.
type EmailSender struct {
	cfg config.Config
}

// NewEmailSender creates an email sender from the SMTP configuration.
func NewEmailSender(cfg config.Config) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send emails the alert to every configured recipient in one message.
func (s *EmailSender) Send(_ context.Context, p models.AlertPayload) error {
	email := s.cfg.Email
	if email.SMTPServer == "" || email.SMTPPort == 0 || email.Username == "" || email.Password == "" {
		return fmt.Errorf("missing Email configuration: SMTPServer, SMTPPort, Username, or Password is empty")
	}
	if len(email.Recipients) == 0 {
		return fmt.Errorf("no alert email recipients configured")
	}

	subject := fmt.Sprintf("[%s] %s", strings.ToUpper(string(p.Severity)), p.Type)
	body := fmt.Sprintf(
		"%s\n\nAlert: %s\nSeverity: %s\nValue: %.2f\nThreshold: %.2f\nTime: %s\nID: %s%s",
		p.Description, p.Type, p.Severity, p.Value, p.Threshold,
		p.Timestamp.Format("2006-01-02 15:04:05"), p.ID, formatContext(p.Context),
	)
	message := fmt.Sprintf("From: %s <%s>\nTo: %s\nSubject: %s\n\n%s",
		email.FromName, email.Username, strings.Join(email.Recipients, ", "), subject, body)

	auth := smtp.PlainAuth("", email.Username, email.Password, email.SMTPServer)
	addr := fmt.Sprintf("%s:%d", email.SMTPServer, email.SMTPPort)

	if err := smtp.SendMail(addr, auth, email.Username, email.Recipients, []byte(message)); err != nil {
		return fmt.Errorf("failed to send alert email to %v: %w", email.Recipients, err)
	}
	return nil
}
