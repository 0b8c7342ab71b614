package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iliyamo/hotel-reservation/internal/config"
)

func TestBuildMessageHeaders(t *testing.T) {
	var buf bytes.Buffer
	m := buildMessage("hotel@x.com", Message{To: " guest@x.com ", Subject: "Hola", HTML: "<p>hola</p>"})
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	raw := buf.String()
	for _, want := range []string{"From: hotel@x.com", "To: guest@x.com", "Subject: Hola", "Content-Type: text/html", "<p>hola</p>"} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestSendNotConfigured(t *testing.T) {
	m := New(config.SMTPConfig{})
	if err := m.Send(context.Background(), Message{To: "a@x.com"}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v", err)
	}
}

func TestSendCancelledContext(t *testing.T) {
	m := New(config.SMTPConfig{Host: "localhost", Port: 2525})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, Message{To: "a@x.com"}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}
