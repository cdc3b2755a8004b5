package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	API struct {
		Port     string
		BasePath string
	}
	Logging struct {
		Dir   string
		Level string
	}
	Email struct {
		SMTPServer string
		SMTPPort   int
		Username   string
		Password   string
		FromName   string
		Recipients []string
	}
	Telegram struct {
		BotToken string
		ChatID   int64
	}
	Webhook struct {
		URL string
	}
	Alerting struct {
		ChannelTimeout time.Duration
		TelegramRate   int
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
// Channel credentials are all optional: a channel whose configuration is
// absent simply starts disabled.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Kafka settings (consumer is started only when a broker is configured)
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// Logging settings
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Email channel settings
	cfg.Email.SMTPServer = os.Getenv("EMAIL_SMTP_SERVER")
	if p, err := strconv.Atoi(os.Getenv("EMAIL_SMTP_PORT")); err == nil {
		cfg.Email.SMTPPort = p
	}
	cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	cfg.Email.FromName = os.Getenv("EMAIL_FROM_NAME")
	if rcpts := os.Getenv("ALERT_EMAIL_RECIPIENTS"); rcpts != "" {
		for _, r := range strings.Split(rcpts, ",") {
			if r = strings.TrimSpace(r); r != "" {
				cfg.Email.Recipients = append(cfg.Email.Recipients, r)
			}
		}
	}

	// Telegram channel settings
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if id, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64); err == nil {
		cfg.Telegram.ChatID = id
	}

	// Webhook channel settings
	cfg.Webhook.URL = os.Getenv("ALERT_WEBHOOK_URL")

	// Dispatch settings
	if secs, err := strconv.Atoi(os.Getenv("CHANNEL_TIMEOUT_SEC")); err == nil && secs > 0 {
		cfg.Alerting.ChannelTimeout = time.Duration(secs) * time.Second
	}
	if r, err := strconv.Atoi(os.Getenv("TELEGRAM_RATE_LIMIT")); err == nil && r > 0 {
		cfg.Alerting.TelegramRate = r
	}

	// Apply defaults
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v0"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "metric_observations"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "alerting-service"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Alerting.ChannelTimeout == 0 {
		cfg.Alerting.ChannelTimeout = 10 * time.Second
	}
	if cfg.Alerting.TelegramRate == 0 {
		cfg.Alerting.TelegramRate = 1
	}

	return cfg, nil
}
