package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/23sarmiento78/BOLUSHOP/pkg/kafka"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
)

// Kafka topic constants for store domain events.
const (
	TopicCatalogImported = "bolushop.catalog.imported"
	TopicOrderCreated    = "bolushop.order.created"
	TopicOrderPaid       = "bolushop.order.paid"
	TopicOrderCancelled  = "bolushop.order.cancelled"
)

// Aggregate type constants.
const (
	AggregateTypeCatalog = "catalog"
	AggregateTypeOrder   = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "bolushop"

// CatalogImportedData is the payload for a catalog.imported event.
type CatalogImportedData struct {
	Count  int    `json:"count"`
	Source string `json:"source"`
}

// OrderData is the payload for order lifecycle events.
type OrderData struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Total     int64  `json:"total"`
	PaymentID string `json:"payment_id,omitempty"`
}

// Producer publishes store domain events to Kafka. A nil Producer is a
// no-op, so event publishing stays optional in local setups.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCatalogImported publishes a catalog.imported event.
func (p *Producer) PublishCatalogImported(ctx context.Context, count int, source string) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := CatalogImportedData{Count: count, Source: source}

	event, err := pkgkafka.NewEvent(TopicCatalogImported, source, AggregateTypeCatalog, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create catalog.imported event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCatalogImported, event); err != nil {
		return fmt.Errorf("publish catalog.imported event: %w", err)
	}

	p.logger.DebugContext(ctx, "published catalog.imported event",
		slog.Int("count", count),
		slog.String("source", source),
	)

	return nil
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publishOrderEvent(ctx, TopicOrderCreated, order)
}

// PublishOrderPaid publishes an order.paid event.
func (p *Producer) PublishOrderPaid(ctx context.Context, order *domain.Order) error {
	return p.publishOrderEvent(ctx, TopicOrderPaid, order)
}

// PublishOrderCancelled publishes an order.cancelled event.
func (p *Producer) PublishOrderCancelled(ctx context.Context, order *domain.Order) error {
	return p.publishOrderEvent(ctx, TopicOrderCancelled, order)
}

func (p *Producer) publishOrderEvent(ctx context.Context, topic string, order *domain.Order) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := OrderData{
		ID:        order.ID,
		Status:    string(order.Status),
		Total:     order.Total,
		PaymentID: order.PaymentID,
	}

	event, err := pkgkafka.NewEvent(topic, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published order event",
		slog.String("topic", topic),
		slog.String("order_id", order.ID),
	)

	return nil
}
