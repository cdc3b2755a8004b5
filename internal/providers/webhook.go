package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"alerting-service/internal/models"
)

// WebhookSender POSTs the normalized alert payload as JSON to an outbound
// webhook URL.
type WebhookSender struct {
	url    string
	client *http.Client
}

// NewWebhookSender creates a generic webhook sender. The caller's dispatch
// context bounds the request, so the client itself carries no timeout.
func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{},
	}
}

// Send delivers the payload. A non-2xx response is a delivery failure.
func (s *WebhookSender) Send(ctx context.Context, p models.AlertPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal alert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
