package broker

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerFlushesEachMessage(t *testing.T) {
	p := NewProducer(&Config{Brokers: []string{"127.0.0.1:9092"}, Topic: "catalog.events"})
	defer p.Close()

	assert.Equal(t, "catalog.events", p.writer.Topic)
	assert.Equal(t, 1, p.writer.BatchSize)
	assert.Equal(t, 10*time.Millisecond, p.writer.BatchTimeout)
	assert.Equal(t, kafka.RequireOne, p.writer.RequiredAcks)
}

func TestPublishFailsFastWithoutBroker(t *testing.T) {
	p := NewProducer(&Config{Brokers: []string{"127.0.0.1:1"}, Topic: "catalog.events"})
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := p.Publish(ctx, "p1", []byte(`{}`))
	require.Error(t, err)
}
