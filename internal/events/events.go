package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ProductTypeCreated = "product_type.created"
	ProductTypeUpdated = "product_type.updated"
	ProductTypeDeleted = "product_type.deleted"
	ProductCreated     = "product.created"
	ProductUpdated     = "product.updated"
	ProductDeleted     = "product.deleted"
	VariantCreated     = "variant.created"
	VariantUpdated     = "variant.updated"
	VariantDeleted     = "variant.deleted"
	AddOnCreated       = "add_on.created"
	AddOnUpdated       = "add_on.updated"
	AddOnDeleted       = "add_on.deleted"
)

type Event struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	EntityID  string    `json:"entityId"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher announces catalog changes. Delivery is best effort: failures are
// logged and never surface to the caller.
type Publisher interface {
	Publish(ctx context.Context, eventType, entityID string, payload any)
}

// Producer is the transport a BrokerPublisher writes to.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type BrokerPublisher struct {
	producer Producer
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewBrokerPublisher(producer Producer, log logger.ZapLogger) *BrokerPublisher {
	return &BrokerPublisher{producer: producer, logger: log, now: time.Now}
}

func (p *BrokerPublisher) Publish(ctx context.Context, eventType, entityID string, payload any) {
	evt := Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		EntityID:  entityID,
		Payload:   payload,
		Timestamp: p.now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("failed to encode catalog event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	// Entity id as key keeps events for one entity ordered within a partition.
	if err := p.producer.Publish(ctx, entityID, data); err != nil {
		p.logger.Warn("failed to publish catalog event",
			zap.String("event_type", eventType),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		return
	}
	p.logger.Debug("catalog event published", zap.String("event_type", eventType), zap.String("entity_id", entityID))
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) {}
