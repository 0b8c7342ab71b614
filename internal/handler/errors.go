package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - maps model sentinels to their HTTP status codes;
//   - logs unexpected errors without leaking details to the client;
//   - renders every failure as {"success": false, "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, fail(msg))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil && he.Code >= http.StatusInternalServerError {
			log.Error().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, model.ErrInvalidAction):
		return http.StatusBadRequest, "Acción inválida"
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, model.ErrRoomNotFound):
		return http.StatusNotFound, "Habitación no encontrada"
	case errors.Is(err, model.ErrReservationNotFound):
		return http.StatusNotFound, "Reserva no encontrada"
	case errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound, "Usuario no encontrado"
	case errors.Is(err, model.ErrNotPayable):
		return http.StatusBadRequest, "La reserva no se puede pagar."
	case errors.Is(err, model.ErrInvalidState):
		return http.StatusConflict, "La reserva ya no está pendiente."
	case errors.Is(err, model.ErrEmailExists):
		return http.StatusBadRequest, "El correo ya está registrado"
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Correo o contraseña incorrectos"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
	return http.StatusInternalServerError, "Error interno del servidor"
}

// validationMessage strips the sentinel prefix from a validation error.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), model.ErrValidation.Error()+": ")
	if msg == "" || msg == model.ErrValidation.Error() {
		return "Datos inválidos"
	}
	return msg
}
