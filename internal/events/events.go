// Package events carries page-level signals (product list refresh, order
// placed) to whoever listens: other components in the same process and,
// optionally, a RabbitMQ exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

const (
	EventsExchange = "storefront.events"

	ProductListRefreshRoutingKey = "product-list.refresh"
	OrderPlacedRoutingKey        = "order.placed"

	defaultProducer = "storefront-go"
)

// Bus publishes payloads under a routing key.
type Bus interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// Envelope is the wire shape shared by every bus implementation.
type Envelope struct {
	EventName     string          `json:"eventName"`
	EventVersion  int             `json:"eventVersion"`
	EventID       string          `json:"eventId"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Producer      string          `json:"producer"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}

type ProductListRefresh struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type OrderPlacedItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderPlaced struct {
	UserEmail string            `json:"userEmail"`
	Items     []OrderPlacedItem `json:"items"`
	Total     float64           `json:"total"`
}

func newEnvelope(ctx context.Context, producer, routingKey string, payload any, now time.Time) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", routingKey, err)
	}
	return Envelope{
		EventName:     routingKey,
		EventVersion:  1,
		EventID:       uuid.NewString(),
		CorrelationID: middleware.GetCorrelationID(ctx),
		Producer:      producer,
		OccurredAt:    now.UTC(),
		Payload:       body,
	}, nil
}

// Decode unmarshals the envelope payload into out.
func (e Envelope) Decode(out any) error {
	if err := json.Unmarshal(e.Payload, out); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.EventName, err)
	}
	return nil
}

// Tee publishes to every bus in order and reports the first failure.
// All buses are attempted even when an earlier one fails.
func Tee(buses ...Bus) Bus { return tee(buses) }

type tee []Bus

func (t tee) Publish(ctx context.Context, routingKey string, payload any) error {
	var first error
	for _, b := range t {
		if err := b.Publish(ctx, routingKey, payload); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t tee) Close() error {
	var first error
	for _, b := range t {
		if err := b.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
