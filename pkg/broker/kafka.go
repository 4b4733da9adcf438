package broker

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Writes flush per message; the writer's default one second linger would
// otherwise delay every publish on the request path.
const (
	batchSize    = 1
	batchTimeout = 10 * time.Millisecond
)

type Config struct {
	Brokers []string
	Topic   string
}

// Producer writes keyed messages to a single topic.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg *Config) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchSize:              batchSize,
			BatchTimeout:           batchTimeout,
			WriteTimeout:           5 * time.Second,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
