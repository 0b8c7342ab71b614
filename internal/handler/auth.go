package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

// Authenticator is the auth workflow used by AuthHandler.
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) (model.User, error)
	Login(ctx context.Context, email, password string) (service.LoginResult, error)
	Profile(ctx context.Context, id uint64) (model.Profile, error)
}

// AuthHandler serves /auth.
type AuthHandler struct {
	Auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

type registerReq struct {
	Nombre   string `json:"nombre" validate:"required"`
	Apellido string `json:"apellido"`
	Correo   string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginReq struct {
	Correo   string `json:"correo" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a customer account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.Auth.Register(ctx, service.RegisterInput{
		FirstName: req.Nombre, LastName: req.Apellido, Email: req.Correo, Password: req.Password,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ok("Usuario registrado correctamente"))
}

// Login verifies credentials and returns a token with the user profile.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Auth.Login(ctx, req.Correo, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Inicio de sesión exitoso",
		"token":   res.Token.Token,
		"expira":  res.Token.Exp,
		"user":    res.User,
	})
}

// Profile returns the authenticated user's current profile.
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, found := middleware.ClaimsFrom(c)
	if !found {
		return c.JSON(http.StatusUnauthorized, fail("Token no proporcionado"))
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.Auth.Profile(ctx, claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": p})
}
