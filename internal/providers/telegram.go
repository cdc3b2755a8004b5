package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"golang.org/x/time/rate"

	"alerting-service/internal/logging"
	"alerting-service/internal/models"
	"alerting-service/internal/utils"
)

// TelegramSender delivers alerts as Markdown messages to a Telegram chat.
type TelegramSender struct {
	token   string
	chatID  int64
	limiter *rate.Limiter
	logger  *logging.Logger
}

// NewTelegramSender creates a Telegram sender. ratePerSecond bounds outgoing
// messages to stay inside the Bot API limits.
func NewTelegramSender(token string, chatID int64, ratePerSecond int, logger *logging.Logger) *TelegramSender {
	return &TelegramSender{
		token:   token,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond),
		logger:  logger,
	}
}

// Send posts the alert to the configured chat, retrying transient failures.
func (s *TelegramSender) Send(ctx context.Context, p models.AlertPayload) error {
	if s.token == "" {
		return fmt.Errorf("missing bot token in Telegram configuration")
	}
	if s.chatID == 0 {
		return fmt.Errorf("missing chat_id in Telegram configuration")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limit exceeded: %w", err)
	}

	text := fmt.Sprintf(
		"*%s alert: %s*\n%s\n\n"+
			"*Value:* %.2f\n"+
			"*Threshold:* %.2f\n"+
			"*Time:* %s",
		p.Severity,
		p.Type,
		p.Description,
		p.Value,
		p.Threshold,
		p.Timestamp.Format("2006-01-02 15:04:05"),
	)
	for k, v := range p.Context {
		text += fmt.Sprintf("\n*%s:* %s", k, v)
	}

	return utils.Retry(s.logger, 3, time.Second, func() error {
		b, err := bot.New(s.token)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram bot: %w", err)
		}

		params := &bot.SendMessageParams{
			ChatID:    s.chatID,
			Text:      text,
			ParseMode: "Markdown",
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			return fmt.Errorf("failed to send Telegram message to chat_id %d: %w", s.chatID, err)
		}
		return nil
	})
}
