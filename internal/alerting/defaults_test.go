package alerting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerting-service/internal/config"
	"alerting-service/internal/models"
)

func TestDefaultRules_CoverClassifierAlertTypes(t *testing.T) {
	rules := DefaultRules()
	for metric := range DefaultThresholds() {
		assert.Contains(t, rules, metric+"_warning")
		assert.Contains(t, rules, metric+"_critical")
	}
}

func TestChannelsFromConfig_EnablementDerivedFromPresence(t *testing.T) {
	var cfg config.Config

	channels := ChannelsFromConfig(cfg)
	assert.True(t, channels[models.ChannelConsole].Enabled, "console needs no configuration")
	assert.True(t, channels[models.ChannelWebSocket].Enabled)
	assert.False(t, channels[models.ChannelEmail].Enabled)
	assert.False(t, channels[models.ChannelTelegram].Enabled)
	assert.False(t, channels[models.ChannelWebhook].Enabled)

	cfg.Email.SMTPServer = "smtp.example.com"
	cfg.Email.Recipients = []string{"ops@example.com"}
	cfg.Telegram.BotToken = "token"
	cfg.Telegram.ChatID = 42
	cfg.Webhook.URL = "https://hooks.example.com/alerts"

	channels = ChannelsFromConfig(cfg)
	assert.True(t, channels[models.ChannelEmail].Enabled)
	assert.True(t, channels[models.ChannelTelegram].Enabled)
	assert.True(t, channels[models.ChannelWebhook].Enabled)
}

func TestChannelsFromConfig_WebhookIsCriticalOnly(t *testing.T) {
	var cfg config.Config
	cfg.Webhook.URL = "https://hooks.example.com/alerts"

	ch := ChannelsFromConfig(cfg)[models.ChannelWebhook]
	require.True(t, ch.Enabled)
	assert.True(t, ch.Allows(models.SeverityCritical))
	assert.False(t, ch.Allows(models.SeverityWarning))
	assert.False(t, ch.Allows(models.SeverityInfo))
}
