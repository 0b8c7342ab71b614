package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iliyamo/hotel-reservation/internal/mailer"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

type stubMailer struct {
	sent []mailer.Message
	err  error
}

func (s *stubMailer) Send(_ context.Context, msg mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestContactHandler(t *testing.T) {
	m := &stubMailer{}
	h := NewContactHandler(m, zerolog.Nop())
	e := newTestEcho()
	e.POST("/contacto", h.Send)
	e.POST("/contacto/responder", h.Reply)

	rec, _ := do(t, e, http.MethodPost, "/contacto", `{"correo":"ana@x.com","asunto":"Hola","mensaje":"<p>hi</p>"}`)
	expectStatus(t, rec, http.StatusOK)
	rec, _ = do(t, e, http.MethodPost, "/contacto/responder", `{"to":"ana@x.com","subject":"Re","html":"<p>ok</p>"}`)
	expectStatus(t, rec, http.StatusOK)
	if len(m.sent) != 2 || m.sent[0].Subject != "Hola" || m.sent[1].HTML != "<p>ok</p>" {
		t.Fatalf("unexpected sent %+v", m.sent)
	}

	rec, _ = do(t, e, http.MethodPost, "/contacto", `{"correo":"ana@x.com"}`)
	expectStatus(t, rec, http.StatusBadRequest)

	m.err = errors.New("smtp down")
	rec, resp := do(t, e, http.MethodPost, "/contacto", `{"correo":"ana@x.com","asunto":"Hola","mensaje":"x"}`)
	expectStatus(t, rec, http.StatusInternalServerError)
	if resp["message"] != "No se pudo enviar el correo" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
}

type stubReports struct{ err error }

func (s stubReports) Counts(context.Context) (repository.Counts, error) {
	return repository.Counts{Users: 3, Reservations: 5, Rooms: 2}, s.err
}

func TestReportHandler_Summary(t *testing.T) {
	e := newTestEcho()
	e.GET("/reportes", NewReportHandler(stubReports{}).Summary)
	rec, resp := do(t, e, http.MethodGet, "/reportes", "")
	expectStatus(t, rec, http.StatusOK)
	if resp["usuarios"] != 3.0 || resp["reservas"] != 5.0 || resp["habitaciones"] != 2.0 {
		t.Fatalf("unexpected counts %v", resp)
	}

	e = newTestEcho()
	e.GET("/reportes", NewReportHandler(stubReports{err: errors.New("boom")}).Summary)
	rec, _ = do(t, e, http.MethodGet, "/reportes", "")
	expectStatus(t, rec, http.StatusInternalServerError)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("down") })

	cases := map[string]struct {
		db    Pinger
		redis func(context.Context) error
		code  int
	}{
		"all up":     {up, up, http.StatusOK},
		"no redis":   {up, nil, http.StatusOK},
		"redis down": {up, down, http.StatusOK},
		"db down":    {down, up, http.StatusServiceUnavailable},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := NewHealthHandler(tc.db, tc.redis)
			e := newTestEcho()
			e.GET("/healthz", h.Live)
			e.GET("/healthz/ready", h.Ready)

			rec, _ := do(t, e, http.MethodGet, "/healthz", "")
			expectStatus(t, rec, http.StatusOK)
			rec, _ = do(t, e, http.MethodGet, "/healthz/ready", "")
			expectStatus(t, rec, tc.code)
		})
	}
}
