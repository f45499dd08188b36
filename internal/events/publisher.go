package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/cart"
)

// Publisher emits enveloped OrderSubmitted events on the storefront topic
// exchange. Sequences come from the per-partition sequence repository so
// consumers can detect gaps and reorderings.
type Publisher struct {
	ch  *amqp.Channel
	seq SequenceRepository
}

func NewPublisher(conn *amqp.Connection, seq SequenceRepository) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareEventsExchange(ch); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{ch: ch, seq: seq}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderSubmitted(ctx context.Context, sessionKey, referenceID, message string, items []cart.LineItem, total float64) error {
	sequence, err := p.seq.NextSequence(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	env := BuildOrderSubmittedEvent(sessionKey, referenceID, message, items, total, EnvelopeOptions{
		PartitionKey: sessionKey,
		Sequence:     sequence,
	})

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderSubmitted: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		EventsExchange,
		OrderSubmittedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    env.EventID,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish OrderSubmitted: %w", err)
	}
	return nil
}
