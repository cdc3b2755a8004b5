package alerting

import (
	"strconv"
	"time"

	"alerting-service/internal/config"
	"alerting-service/internal/models"
)

// DefaultRules is the built-in alert rule catalog covering the monitored
// metric families: API error rate, response latency, auth failures, and
// rate-limit remaining. Ids match the alert types the classifier emits.
func DefaultRules() map[string]models.AlertRule {
	return map[string]models.AlertRule{
		"error_rate_warning": {
			Threshold:   5,
			Comparison:  models.ComparisonGreaterThan,
			Severity:    models.SeverityWarning,
			Description: "API error rate above 5%",
			Cooldown:    5 * time.Minute,
			Enabled:     true,
		},
		"error_rate_critical": {
			Threshold:   15,
			Comparison:  models.ComparisonGreaterThan,
			Severity:    models.SeverityCritical,
			Description: "API error rate above 15%",
			Cooldown:    2 * time.Minute,
			Enabled:     true,
		},
		"response_time_warning": {
			Threshold:   2000,
			Comparison:  models.ComparisonGreaterThan,
			Severity:    models.SeverityWarning,
			Description: "API response time above 2s",
			Cooldown:    5 * time.Minute,
			Enabled:     true,
		},
		"response_time_critical": {
			Threshold:   5000,
			Comparison:  models.ComparisonGreaterThan,
			Severity:    models.SeverityCritical,
			Description: "API response time above 5s",
			Cooldown:    2 * time.Minute,
			Enabled:     true,
		},
		"auth_failures_warning": {
			Threshold:   10,
			Comparison:  models.ComparisonGreaterThan,
			Severity:    models.SeverityWarning,
			Description: "Elevated authentication failures",
			Cooldown:    10 * time.Minute,
			Enabled:     true,
		},
		"auth_failures_critical": {
			Threshold:   50,
			Comparison:  models.ComparisonGreaterThan,
			Severity:    models.SeverityCritical,
			Description: "Authentication failure spike",
			Cooldown:    5 * time.Minute,
			Enabled:     true,
		},
		"rate_limit_warning": {
			Threshold:   1000,
			Comparison:  models.ComparisonLessThan,
			Severity:    models.SeverityWarning,
			Description: "API rate limit remaining below 1000",
			Cooldown:    15 * time.Minute,
			Enabled:     true,
		},
		"rate_limit_critical": {
			Threshold:   100,
			Comparison:  models.ComparisonLessThan,
			Severity:    models.SeverityCritical,
			Description: "API rate limit nearly exhausted",
			Cooldown:    time.Minute,
			Enabled:     true,
		},
	}
}

// DefaultThresholds is the classifier table. Only greater-is-worse metrics
// belong here; rate-limit alerts enter through Evaluate directly with
// less_than rules.
func DefaultThresholds() map[string]Thresholds {
	return map[string]Thresholds{
		"error_rate":    {Warning: 5, Critical: 15},
		"response_time": {Warning: 2000, Critical: 5000},
		"auth_failures": {Warning: 10, Critical: 50},
	}
}

// ChannelsFromConfig builds the channel set, deriving each channel's enabled
// flag from the presence of its delivery configuration. Console and the
// WebSocket feed need no credentials and are always on.
func ChannelsFromConfig(cfg config.Config) map[string]models.NotificationChannel {
	all := []models.Severity{models.SeverityInfo, models.SeverityWarning, models.SeverityCritical}
	warnUp := []models.Severity{models.SeverityWarning, models.SeverityCritical}

	channels := map[string]models.NotificationChannel{
		models.ChannelConsole: {
			Enabled:    true,
			Severities: all,
		},
		models.ChannelWebSocket: {
			Enabled:    true,
			Severities: all,
		},
		models.ChannelEmail: {
			Enabled:    cfg.Email.SMTPServer != "" && len(cfg.Email.Recipients) > 0,
			Severities: warnUp,
			Config: map[string]string{
				"smtp_server": cfg.Email.SMTPServer,
				"recipients":  strconv.Itoa(len(cfg.Email.Recipients)) + " configured",
			},
		},
		models.ChannelTelegram: {
			Enabled:    cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0,
			Severities: warnUp,
			Config: map[string]string{
				"chat_id": strconv.FormatInt(cfg.Telegram.ChatID, 10),
			},
		},
		models.ChannelWebhook: {
			Enabled:    cfg.Webhook.URL != "",
			Severities: []models.Severity{models.SeverityCritical},
			Config: map[string]string{
				"url": cfg.Webhook.URL,
			},
		},
	}
	return channels
}
