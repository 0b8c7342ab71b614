package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

// UserAdmin manages accounts from the admin panel.
type UserAdmin interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, in service.CreateUserInput) (model.User, error)
	Update(ctx context.Context, id uint64, in service.UpdateUserInput) error
	Delete(ctx context.Context, id uint64) error
}

// UserHandler serves /usuarios.
type UserHandler struct {
	Users UserAdmin
}

func NewUserHandler(users UserAdmin) *UserHandler { return &UserHandler{Users: users} }

type createUserReq struct {
	Nombre     string `json:"nombre" validate:"required"`
	Apellido   string `json:"apellido"`
	Correo     string `json:"correo" validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required"`
	Rol        string `json:"rol"`
}

type updateUserReq struct {
	Nombre           string `json:"nombre" validate:"required"`
	Apellido         string `json:"apellido"`
	Correo           string `json:"correo" validate:"required,email"`
	Rol              string `json:"rol"`
	ContrasenaActual string `json:"contrasenaActual"`
	ContrasenaNueva  string `json:"contrasenaNueva"`
}

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	users, err := h.Users.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(users))
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	u, err := h.Users.Create(ctx, service.CreateUserInput{
		FirstName: req.Nombre, LastName: req.Apellido, Email: req.Correo, Password: req.Contrasena, Role: req.Rol,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Usuario agregado correctamente", "id": u.ID})
}

// Update edits a profile.  A wrong current password is reported as 401
// with its own message rather than the login one.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateUserReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	err = h.Users.Update(ctx, id, service.UpdateUserInput{
		FirstName:       req.Nombre,
		LastName:        req.Apellido,
		Email:           req.Correo,
		Role:            req.Rol,
		CurrentPassword: req.ContrasenaActual,
		NewPassword:     req.ContrasenaNueva,
	})
	if errors.Is(err, model.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, fail("Contraseña actual incorrecta"))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Perfil actualizado correctamente"))
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Users.Delete(ctx, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Usuario eliminado correctamente"))
}
