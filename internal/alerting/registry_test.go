package alerting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerting-service/internal/models"
)

func TestRuleRegistry_UpdateMergesOnlyProvidedFields(t *testing.T) {
	reg := NewRuleRegistry(map[string]models.AlertRule{
		"error_rate_warning": {
			Threshold:   5,
			Comparison:  models.ComparisonGreaterThan,
			Severity:    models.SeverityWarning,
			Description: "API error rate above 5%",
			Cooldown:    5 * time.Minute,
			Enabled:     true,
		},
	})

	threshold := 8.0
	cooldownMS := int64(120000)
	ok := reg.UpdateRule("error_rate_warning", models.RuleUpdate{
		Threshold:  &threshold,
		CooldownMS: &cooldownMS,
	})
	require.True(t, ok)

	rule, found := reg.GetRule("error_rate_warning")
	require.True(t, found)
	assert.Equal(t, 8.0, rule.Threshold)
	assert.Equal(t, 2*time.Minute, rule.Cooldown)
	// Untouched fields keep their values
	assert.Equal(t, models.ComparisonGreaterThan, rule.Comparison)
	assert.Equal(t, models.SeverityWarning, rule.Severity)
	assert.Equal(t, "API error rate above 5%", rule.Description)
	assert.True(t, rule.Enabled)
}

func TestRuleRegistry_UpdateUnknownRuleReturnsFalse(t *testing.T) {
	reg := NewRuleRegistry(nil)
	threshold := 1.0
	assert.False(t, reg.UpdateRule("nope", models.RuleUpdate{Threshold: &threshold}))
}

func TestRuleRegistry_ListReturnsCopy(t *testing.T) {
	reg := NewRuleRegistry(map[string]models.AlertRule{
		"rate_limit_critical": {Threshold: 100, Enabled: true},
	})

	rules := reg.ListRules()
	rules["rate_limit_critical"] = models.AlertRule{Threshold: 999}

	rule, _ := reg.GetRule("rate_limit_critical")
	assert.Equal(t, 100.0, rule.Threshold)
}

func TestRuleRegistry_IDsFilledFromKeys(t *testing.T) {
	reg := NewRuleRegistry(DefaultRules())
	rule, ok := reg.GetRule("rate_limit_critical")
	require.True(t, ok)
	assert.Equal(t, "rate_limit_critical", rule.ID)
}

func TestChannelRegistry_SetEnabled(t *testing.T) {
	reg := NewChannelRegistry(map[string]models.NotificationChannel{
		"webhook": {Enabled: false, Severities: []models.Severity{models.SeverityCritical}},
	})

	assert.True(t, reg.SetEnabled("webhook", true))
	ch, _ := reg.GetChannel("webhook")
	assert.True(t, ch.Enabled)

	assert.False(t, reg.SetEnabled("pager", true))
}

func TestChannel_Allows(t *testing.T) {
	ch := models.NotificationChannel{Severities: []models.Severity{models.SeverityCritical}}
	assert.True(t, ch.Allows(models.SeverityCritical))
	assert.False(t, ch.Allows(models.SeverityWarning))
	assert.False(t, ch.Allows(models.SeverityInfo))
}
