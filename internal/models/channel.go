package models

// Channel identifiers. Senders are registered with the dispatcher under these ids.
const (
	ChannelConsole   = "console"
	ChannelEmail     = "email"
	ChannelTelegram  = "telegram"
	ChannelWebhook   = "webhook"
	ChannelWebSocket = "websocket"
)

// NotificationChannel describes one notification transport: whether it is
// usable, which severities it accepts, and its delivery parameters.
// Enabled is derived once at startup from configuration presence.
type NotificationChannel struct {
	ID         string            `json:"id"`
	Enabled    bool              `json:"enabled"`
	Severities []Severity        `json:"severities"`
	Config     map[string]string `json:"config,omitempty"`
}

// Allows reports whether the channel accepts alerts of the given severity.
func (c NotificationChannel) Allows(sev Severity) bool {
	for _, s := range c.Severities {
		if s == sev {
			return true
		}
	}
	return false
}
