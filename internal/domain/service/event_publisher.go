package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Event types carried on the message bus.
const (
	EventTypeIdentityCreated = "identity.created"
	EventTypeOrderPlaced     = "order.placed"
)

// IdentityCreatedEvent is emitted by the identity provider when a sign-up completes.
type IdentityCreatedEvent struct {
	IdentityID   string `json:"identity_id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// OrderPlacedEvent is emitted after an order and its aggregates are committed.
type OrderPlacedEvent struct {
	OrderID      string          `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	SellerID     string          `json:"seller_id"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PlacedAt     time.Time       `json:"placed_at"`
}

// DomainEvent is the envelope published to the event bus. Exactly one payload is set.
type DomainEvent struct {
	RequestID       string                `json:"request_id,omitempty"` // For distributed tracing
	EventID         string                `json:"event_id"`
	Type            string                `json:"type"`
	IdentityCreated *IdentityCreatedEvent `json:"identity_created,omitempty"`
	OrderPlaced     *OrderPlacedEvent     `json:"order_placed,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish sends one event for async processing
	Publish(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
