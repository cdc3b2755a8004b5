package providers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"alerting-service/internal/logging"
	"alerting-service/internal/models"
)

// ConsoleSender writes alerts to the service log at a level matching the
// alert severity.
type ConsoleSender struct {
	logger *logging.Logger
}

// NewConsoleSender creates a console (log sink) sender.
func NewConsoleSender(logger *logging.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

// Send logs the alert. It never fails.
func (s *ConsoleSender) Send(_ context.Context, p models.AlertPayload) error {
	line := fmt.Sprintf("ALERT [%s] %s: %s (value=%.2f threshold=%.2f%s)",
		strings.ToUpper(string(p.Severity)), p.Type, p.Description, p.Value, p.Threshold, formatContext(p.Context))

	switch p.Severity {
	case models.SeverityCritical:
		s.logger.Error(line)
	case models.SeverityWarning:
		s.logger.Warn(line)
	default:
		s.logger.Info(line)
	}
	return nil
}

func formatContext(context map[string]string) string {
	if len(context) == 0 {
		return ""
	}
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(context[k])
	}
	return b.String()
}
