package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/segmentio/kafka-go"

	"alerting-service/internal/alerting"
	"alerting-service/internal/config"
	"alerting-service/internal/logging"
	"alerting-service/internal/models"
)

// Consumer reads metric observations from Kafka and feeds them into the
// alerting engine.
type Consumer struct {
	reader *kafka.Reader
	engine *alerting.Engine
	logger *logging.Logger
}

// NewConsumer creates a consumer for the configured observations topic.
func NewConsumer(cfg config.Config, engine *alerting.Engine, logger *logging.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Kafka.Broker},
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	return &Consumer{reader: reader, engine: engine, logger: logger}
}

// Start runs the read loop until ctx is cancelled. Malformed messages are
// logged and skipped, never fatal.
func (c *Consumer) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.logger.Info("Kafka consumer started")

		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
					c.logger.Info("Kafka consumer stopped")
					return
				}
				c.logger.Errorf("Read message failed: %v", err)
				continue
			}

			var obs models.Observation
			if err := json.Unmarshal(msg.Value, &obs); err != nil {
				c.logger.Errorf("Unmarshal observation failed: %v", err)
				continue
			}
			if obs.Metric == "" {
				c.logger.Error("Invalid observation: missing metric name")
				continue
			}

			triggered := c.engine.Observe(obs.Metric, obs.Value, obs.Context)
			if len(triggered) > 0 {
				c.logger.Infof("Observation %s=%.2f triggered alerts: %v", obs.Metric, obs.Value, triggered)
			}
		}
	}()
}

// Close shuts down the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
