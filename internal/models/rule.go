package models

import (
	"encoding/json"
	"time"
)

// Comparison is the operator applied between an observed value and a rule threshold.
type Comparison string

const (
	ComparisonGreaterThan Comparison = "greater_than"
	ComparisonLessThan    Comparison = "less_than"
	ComparisonEquals      Comparison = "equals"
	ComparisonNotEquals   Comparison = "not_equals"
)

// Severity classifies how urgent an alert is. Channels filter on it.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AlertRule describes when an alert type fires and how often it may repeat.
type AlertRule struct {
	ID          string        `json:"id"`
	Threshold   float64       `json:"threshold"`
	Comparison  Comparison    `json:"comparison"`
	Severity    Severity      `json:"severity"`
	Description string        `json:"description"`
	Cooldown    time.Duration `json:"-"`
	Enabled     bool          `json:"enabled"`
}

// RuleUpdate carries a partial rule update. Only non-nil fields are applied.
type RuleUpdate struct {
	Threshold   *float64    `json:"threshold,omitempty"`
	Comparison  *Comparison `json:"comparison,omitempty"`
	Severity    *Severity   `json:"severity,omitempty"`
	Description *string     `json:"description,omitempty"`
	CooldownMS  *int64      `json:"cooldown_ms,omitempty"`
	Enabled     *bool       `json:"enabled,omitempty"`
}

// MarshalJSON serializes the cooldown as milliseconds.
func (r AlertRule) MarshalJSON() ([]byte, error) {
	type Alias AlertRule
	return json.Marshal(&struct {
		CooldownMS int64 `json:"cooldown_ms"`
		*Alias
	}{
		CooldownMS: r.Cooldown.Milliseconds(),
		Alias:      (*Alias)(&r),
	})
}

// UnmarshalJSON accepts the cooldown as milliseconds.
func (r *AlertRule) UnmarshalJSON(data []byte) error {
	type Alias AlertRule
	aux := &struct {
		CooldownMS int64 `json:"cooldown_ms"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	r.Cooldown = time.Duration(aux.CooldownMS) * time.Millisecond
	return nil
}
