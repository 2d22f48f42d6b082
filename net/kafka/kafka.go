package kafka

import (
	"context"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
)

// Config structure
type Config struct {
	Brokers []string          `mapstructure:"brokers"`
	GroupID string            `mapstructure:"group_id"`
	Topics  map[string]string `mapstructure:"topics"`
}

// TopicName resolves a logical topic id to its configured name, falling
// back to the id itself
func (c Config) TopicName(id string) string {
	if name, ok := c.Topics[id]; ok && name != "" {
		return name
	}
	return id
}

// Consumer wraps a kafka reader for one topic
type Consumer interface {
	ReadMessage(ctx context.Context) (kafkaGo.Message, error)
	Close() error
}

// NewConsumer creates a kafka reader for the given topic as part of the
// configured consumer group
func NewConsumer(cfg Config, topic string) Consumer {
	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.TopicName(topic),
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
}
