package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// ClaimsFrom returns the token claims stored by JWTAuth.
func ClaimsFrom(c echo.Context) (utils.Claims, bool) {
	cl, ok := c.Get(ctxClaims).(utils.Claims)
	return cl, ok
}

// currentUserID returns the authenticated user id as text, or "anon".
func currentUserID(c echo.Context) string {
	if id, ok := c.Get(ctxUserID).(uint64); ok && id != 0 {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
