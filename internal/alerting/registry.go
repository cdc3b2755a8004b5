package alerting

import (
	"sync"
	"time"

	"alerting-service/internal/models"
)

// RuleRegistry holds the mutable alert rule catalog.
type RuleRegistry struct {
	mu    sync.RWMutex
	rules map[string]models.AlertRule
}

// NewRuleRegistry copies the given catalog into a registry.
func NewRuleRegistry(rules map[string]models.AlertRule) *RuleRegistry {
	r := &RuleRegistry{rules: make(map[string]models.AlertRule, len(rules))}
	for id, rule := range rules {
		rule.ID = id
		r.rules[id] = rule
	}
	return r
}

// GetRule returns the rule for an alert type.
func (r *RuleRegistry) GetRule(alertType string) (models.AlertRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[alertType]
	return rule, ok
}

// UpdateRule merges the provided fields into an existing rule. Returns false
// if the alert type is unknown. No cross-field validation happens here; the
// comparison enum is checked on the evaluation path.
func (r *RuleRegistry) UpdateRule(alertType string, upd models.RuleUpdate) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[alertType]
	if !ok {
		return false
	}
	if upd.Threshold != nil {
		rule.Threshold = *upd.Threshold
	}
	if upd.Comparison != nil {
		rule.Comparison = *upd.Comparison
	}
	if upd.Severity != nil {
		rule.Severity = *upd.Severity
	}
	if upd.Description != nil {
		rule.Description = *upd.Description
	}
	if upd.CooldownMS != nil {
		rule.Cooldown = time.Duration(*upd.CooldownMS) * time.Millisecond
	}
	if upd.Enabled != nil {
		rule.Enabled = *upd.Enabled
	}
	r.rules[alertType] = rule
	return true
}

// ListRules returns a copy of the full catalog.
func (r *RuleRegistry) ListRules() map[string]models.AlertRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]models.AlertRule, len(r.rules))
	for id, rule := range r.rules {
		out[id] = rule
	}
	return out
}

// ChannelRegistry holds the notification channel definitions. Enabled state
// is computed once at construction from configuration presence.
type ChannelRegistry struct {
	mu       sync.RWMutex
	channels map[string]models.NotificationChannel
}

// NewChannelRegistry copies the given channel set into a registry.
func NewChannelRegistry(channels map[string]models.NotificationChannel) *ChannelRegistry {
	r := &ChannelRegistry{channels: make(map[string]models.NotificationChannel, len(channels))}
	for id, ch := range channels {
		ch.ID = id
		r.channels[id] = ch
	}
	return r
}

// GetChannel returns the channel definition for an id.
func (r *ChannelRegistry) GetChannel(id string) (models.NotificationChannel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[id]
	return ch, ok
}

// SetEnabled toggles a channel explicitly. Returns false on unknown id.
func (r *ChannelRegistry) SetEnabled(id string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.channels[id]
	if !ok {
		return false
	}
	ch.Enabled = enabled
	r.channels[id] = ch
	return true
}

// ListChannels returns a copy of all channel definitions.
func (r *ChannelRegistry) ListChannels() map[string]models.NotificationChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]models.NotificationChannel, len(r.channels))
	for id, ch := range r.channels {
		out[id] = ch
	}
	return out
}
