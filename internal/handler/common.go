// Package handler implements the HTTP endpoints.  Handlers bind and
// validate a request DTO, call a service or repository, and either write
// a {success, message, ...} envelope or return an error for the central
// error handler to render.
package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// requestTimeout bounds the storage work of a single request.
const requestTimeout = 5 * time.Second

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// bindValid binds the request body into dst and runs the validator.
func bindValid(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return model.Validationf("cuerpo de la solicitud inválido")
	}
	return c.Validate(dst)
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, model.Validationf("%s inválido", name)
	}
	return id, nil
}

func ok(msg string) echo.Map {
	return echo.Map{"success": true, "message": msg}
}

func fail(msg string) echo.Map {
	return echo.Map{"success": false, "message": msg}
}
