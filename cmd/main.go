package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"alerting-service/internal/alerting"
	"alerting-service/internal/api"
	"alerting-service/internal/config"
	"alerting-service/internal/kafka"
	"alerting-service/internal/logging"
	"alerting-service/internal/models"
	"alerting-service/internal/providers"
	"alerting-service/internal/ws"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Close()

	// Build the alerting engine
	rules := alerting.NewRuleRegistry(alerting.DefaultRules())
	channels := alerting.NewChannelRegistry(alerting.ChannelsFromConfig(cfg))
	dispatcher := alerting.NewDispatcher(channels, cfg.Alerting.ChannelTimeout, logger)

	hub := ws.NewHub(logger)
	defer hub.Close()

	// Senders are registered unconditionally; the channel registry's
	// enabled flags decide which of them the dispatcher actually uses.
	dispatcher.Register(models.ChannelConsole, providers.NewConsoleSender(logger))
	dispatcher.Register(models.ChannelEmail, providers.NewEmailSender(cfg))
	dispatcher.Register(models.ChannelTelegram, providers.NewTelegramSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Alerting.TelegramRate, logger))
	dispatcher.Register(models.ChannelWebhook, providers.NewWebhookSender(cfg.Webhook.URL))
	dispatcher.Register(models.ChannelWebSocket, hub)

	engine := alerting.NewEngine(rules, channels, alerting.NewClassifier(alerting.DefaultThresholds()), dispatcher, logger)

	for id, ch := range channels.ListChannels() {
		logger.Infof("Channel %s enabled=%v severities=%v", id, ch.Enabled, ch.Severities)
	}

	// Start Kafka consumer if a broker is configured
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	var consumer *kafka.Consumer
	if cfg.Kafka.Broker != "" {
		consumer = kafka.NewConsumer(cfg, engine, logger)
		consumer.Start(ctx, &wg)
	} else {
		logger.Info("KAFKA_BROKER not set, metric ingestion over Kafka disabled")
	}

	// Start API server
	r := api.NewRouter(engine, hub, logger, cfg)
	go func() {
		logger.Infof("API started on %s", cfg.API.Port)
		if err := r.Run(cfg.API.Port); err != nil {
			logger.Errorf("API run failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Info("Shutting down...")
	cancel()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Errorf("Kafka consumer close failed: %v", err)
		}
	}
	wg.Wait()
	logger.Info("Service stopped")
}
