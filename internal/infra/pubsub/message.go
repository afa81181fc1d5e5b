package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"agromart/internal/domain/service"

	"github.com/pkg/errors"
)

// Message attribute keys set on every published event.
const (
	AttrEventID   = "event_id"
	AttrEventType = "event_type"
	AttrRequestID = "request_id"
)

// PushMessage is the body Pub/Sub sends to a push subscription endpoint.
// The local publisher produces the same shape so the worker sees one format.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// Attributes returns the routing and tracing attributes for event.
func Attributes(event *service.DomainEvent) map[string]string {
	attributes := map[string]string{
		AttrEventID:   event.EventID,
		AttrEventType: event.Type,
	}
	if event.RequestID != "" {
		attributes[AttrRequestID] = event.RequestID
	}

	return attributes
}

// OrderingKey groups the events of one seller (or one identity) so a
// subscription sees them in publish order.
func OrderingKey(event *service.DomainEvent) string {
	switch {
	case event.OrderPlaced != nil:
		return "seller:" + event.OrderPlaced.SellerID
	case event.IdentityCreated != nil:
		return "identity:" + event.IdentityCreated.IdentityID
	default:
		return ""
	}
}

// NewPushMessage wraps event the way a push subscription delivers it.
func NewPushMessage(event *service.DomainEvent, subscription string, publishedAt time.Time) (*PushMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	msg := &PushMessage{Subscription: subscription}
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = Attributes(event)
	msg.Message.MessageID = event.EventID
	msg.Message.PublishTime = publishedAt.UTC().Format(time.RFC3339)

	return msg, nil
}

// DecodeEvent extracts the domain event carried by a push message.
func (m *PushMessage) DecodeEvent() (*service.DomainEvent, error) {
	data, err := base64.StdEncoding.DecodeString(m.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode message data")
	}

	var event service.DomainEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "failed to parse domain event")
	}
	if event.Type == "" {
		event.Type = m.Message.Attributes[AttrEventType]
	}
	if event.EventID == "" {
		event.EventID = m.Message.Attributes[AttrEventID]
	}

	return &event, nil
}
