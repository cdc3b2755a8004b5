package models

import "time"

// AlertInstance is one triggered alert. A new trigger of the same alert key
// replaces the previous instance wholesale; the embedded rule is a snapshot
// taken at trigger time so later rule edits do not rewrite history.
type AlertInstance struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Value         float64           `json:"value"`
	Context       map[string]string `json:"context,omitempty"`
	Rule          AlertRule         `json:"rule"`
	Timestamp     time.Time         `json:"timestamp"`
	LastTriggered time.Time         `json:"-"`
}

// AlertPayload is the normalized message handed to every channel sender.
type AlertPayload struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Severity    Severity          `json:"severity"`
	Description string            `json:"description"`
	Value       float64           `json:"value"`
	Threshold   float64           `json:"threshold"`
	Context     map[string]string `json:"context,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// NewAlertPayload flattens an instance into the outbound payload shape.
func NewAlertPayload(inst AlertInstance) AlertPayload {
	return AlertPayload{
		ID:          inst.ID,
		Type:        inst.Type,
		Severity:    inst.Rule.Severity,
		Description: inst.Rule.Description,
		Value:       inst.Value,
		Threshold:   inst.Rule.Threshold,
		Context:     inst.Context,
		Timestamp:   inst.Timestamp,
	}
}

// Observation is a raw metric sample, as consumed from Kafka or the API.
type Observation struct {
	Metric  string            `json:"metric" binding:"required"`
	Value   float64           `json:"value"`
	Context map[string]string `json:"context,omitempty"`
}

// ConfigSnapshot is the introspection view of the engine's configuration.
type ConfigSnapshot struct {
	Rules       map[string]AlertRule           `json:"rules"`
	Channels    map[string]NotificationChannel `json:"channels"`
	ActiveCount int                            `json:"active_count"`
}
