package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/cart"
)

const (
	OrderSubmittedEventName    = "OrderSubmitted"
	OrderSubmittedEventVersion = 1
	storefrontProducer         = "storefront"
)

// EventEnvelope wraps an OrderSubmitted payload with the delivery
// metadata consumers key on: ordering per partition, producer, ids.
type EventEnvelope struct {
	EventName    string                `json:"eventName"`
	EventVersion int                   `json:"eventVersion"`
	EventID      string                `json:"eventId"`
	Producer     string                `json:"producer"`
	PartitionKey string                `json:"partitionKey"`
	Sequence     int64                 `json:"sequence"`
	OccurredAt   time.Time             `json:"occurredAt"`
	Payload      OrderSubmittedPayload `json:"payload"`
}

// OrderSubmittedPayload carries the formatted order a shopper produced at
// checkout, for the shop owner's notification tooling.
type OrderSubmittedPayload struct {
	SessionKey  string               `json:"sessionKey"`
	ReferenceID string               `json:"referenceId"`
	Items       []OrderSubmittedItem `json:"items"`
	TotalAmount float64              `json:"totalAmount"`
	Message     string               `json:"message"`
}

type OrderSubmittedItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// EnvelopeOptions override envelope defaults. Zero values are filled in
// by BuildOrderSubmittedEvent.
type EnvelopeOptions struct {
	PartitionKey string
	Sequence     int64
	Producer     string
	EventID      string
	OccurredAt   time.Time
}

func BuildOrderSubmittedEvent(sessionKey, referenceID, message string, items []cart.LineItem, total float64, opts EnvelopeOptions) EventEnvelope {
	eventID := opts.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	occurredAt := opts.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	producer := opts.Producer
	if producer == "" {
		producer = storefrontProducer
	}

	payload := OrderSubmittedPayload{
		SessionKey:  sessionKey,
		ReferenceID: referenceID,
		TotalAmount: total,
		Message:     message,
	}
	for _, it := range items {
		payload.Items = append(payload.Items, OrderSubmittedItem{
			ProductID: it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	return EventEnvelope{
		EventName:    OrderSubmittedEventName,
		EventVersion: OrderSubmittedEventVersion,
		EventID:      eventID,
		Producer:     producer,
		PartitionKey: opts.PartitionKey,
		Sequence:     opts.Sequence,
		OccurredAt:   occurredAt,
		Payload:      payload,
	}
}
