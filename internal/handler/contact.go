package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/hotel-reservation/internal/mailer"
)

// ContactHandler relays operator replies to guests by email.
type ContactHandler struct {
	Mail mailer.Sender
	Log  zerolog.Logger
}

func NewContactHandler(m mailer.Sender, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{Mail: m, Log: log}
}

type contactReq struct {
	Correo  string `json:"correo" validate:"required,email"`
	Asunto  string `json:"asunto" validate:"required"`
	Mensaje string `json:"mensaje" validate:"required"`
}

type replyReq struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	HTML    string `json:"html" validate:"required"`
}

// Send handles POST /contacto.
func (h *ContactHandler) Send(c echo.Context) error {
	var req contactReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return h.deliver(c, mailer.Message{To: req.Correo, Subject: req.Asunto, HTML: req.Mensaje}, "Respuesta enviada correctamente")
}

// Reply handles POST /contacto/responder.
func (h *ContactHandler) Reply(c echo.Context) error {
	var req replyReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return h.deliver(c, mailer.Message{To: req.To, Subject: req.Subject, HTML: req.HTML}, "Respuesta enviada")
}

func (h *ContactHandler) deliver(c echo.Context, msg mailer.Message, done string) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Mail.Send(ctx, msg); err != nil {
		h.Log.Error().Err(err).Str("to", msg.To).Msg("contact email failed")
		return c.JSON(http.StatusInternalServerError, fail("No se pudo enviar el correo"))
	}
	return c.JSON(http.StatusOK, ok(done))
}
