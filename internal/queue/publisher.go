package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher sends reservation events to a durable queue on the default
// exchange.  Each Publish opens its own connection, so the publisher holds
// no state that can go stale while the broker restarts.
type Publisher struct {
	url     string
	queue   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewPublisher returns a Publisher for the given broker URL and queue.
func NewPublisher(url, queue string, log zerolog.Logger) *Publisher {
	return &Publisher{url: url, queue: queue, timeout: 5 * time.Second, log: log}
}

// Publish delivers ev as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, ev ReservationEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.timeout)})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	msg := newPublishing(ev.Type, body)
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return err
	}
	p.log.Debug().Str("message_id", msg.MessageId).Str("type", ev.Type).Uint64("reservation_id", ev.ReservationID).Msg("event published")
	return nil
}

func newPublishing(eventType string, body []byte) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    uuid.NewString(),
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
}
