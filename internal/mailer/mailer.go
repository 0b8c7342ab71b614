// Package mailer sends HTML email through an SMTP relay.
package mailer

import (
	"context"
	"errors"
	"strings"
	"time"

	"gopkg.in/mail.v2"

	"github.com/iliyamo/hotel-reservation/internal/config"
)

// ErrNotConfigured is returned when no SMTP host is set.
var ErrNotConfigured = errors.New("smtp not configured")

// Message is a single HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer is a Sender backed by an SMTP relay.  A connection is opened
// per message.
type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

// New builds an SMTPMailer from cfg.
func New(cfg config.SMTPConfig) *SMTPMailer {
	if cfg.Host == "" {
		return &SMTPMailer{from: cfg.Sender()}
	}
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	d.Timeout = 10 * time.Second
	return &SMTPMailer{dialer: d, from: cfg.Sender()}
}

// Send delivers msg.  The context is only consulted before dialing; the
// SMTP exchange itself is bounded by the dialer timeout.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.dialer == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(buildMessage(m.from, msg))
}

func buildMessage(from string, msg Message) *mail.Message {
	mm := mail.NewMessage()
	mm.SetHeader("From", from)
	mm.SetHeader("To", strings.TrimSpace(msg.To))
	mm.SetHeader("Subject", msg.Subject)
	mm.SetBody("text/html", msg.HTML)
	return mm
}
