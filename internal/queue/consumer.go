package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iliyamo/hotel-reservation/internal/mailer"
)

// Consumer reads reservation events and emails the guest about each one.
type Consumer struct {
	url    string
	queue  string
	sender mailer.Sender
	log    zerolog.Logger
}

// NewConsumer returns a Consumer for the given broker URL and queue.
func NewConsumer(url, queue string, sender mailer.Sender, log zerolog.Logger) *Consumer {
	return &Consumer{url: url, queue: queue, sender: sender, log: log}
}

// Run connects to the broker and consumes until ctx is cancelled,
// reconnecting with exponential backoff (capped at 30s) whenever the
// connection drops.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("event consumer: dial failed")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Msg("event consumer: loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		c.log.Warn().Err(err).Msg("event consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				c.log.Error().Err(err).Str("message_id", d.MessageId).Msg("event consumer: handle message failed")
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.GuestEmail == "" {
		return errors.New("event without guest email")
	}
	msg, ok := notification(ev)
	if !ok {
		c.log.Debug().Str("type", ev.Type).Msg("event consumer: nothing to send")
		return nil
	}
	if err := c.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	c.log.Info().Str("type", ev.Type).Uint64("reservation_id", ev.ReservationID).Msg("guest notified")
	return nil
}

// notification renders the guest email for an event.
func notification(ev ReservationEvent) (mailer.Message, bool) {
	var subject, lead string
	switch ev.Type {
	case EventReservationCreated:
		subject = fmt.Sprintf("Reserva #%d recibida", ev.ReservationID)
		lead = "Recibimos tu reserva. Quedará confirmada al registrar el pago."
	case EventReservationPaid:
		subject = fmt.Sprintf("Reserva #%d confirmada", ev.ReservationID)
		lead = "Tu reserva está pagada y confirmada."
	case EventReservationCancelled:
		subject = fmt.Sprintf("Reserva #%d cancelada", ev.ReservationID)
		lead = "Tu reserva fue cancelada."
	default:
		return mailer.Message{}, false
	}
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>%s</p><ul><li>Habitación: %s</li><li>Entrada: %s</li><li>Salida: %s</li><li>Total: %.2f</li></ul>",
		html.EscapeString(ev.GuestName), lead, html.EscapeString(ev.RoomType), ev.EntryDate, ev.ExitDate, ev.Total)
	return mailer.Message{To: ev.GuestEmail, Subject: subject, HTML: body}, true
}
