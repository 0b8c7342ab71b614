package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// UserService implements the staff user-administration workflows.
type UserService struct {
	users UserStore
	cost  int
	log   zerolog.Logger
}

func NewUserService(users UserStore, bcryptCost int, log zerolog.Logger) *UserService {
	return &UserService{users: users, cost: bcryptCost, log: log}
}

func validRole(role string) bool {
	return role == model.RoleCustomer || role == model.RoleOperator || role == model.RoleAdmin
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// CreateUserInput is an account created from the admin panel.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string // plain text, or an existing bcrypt hash stored as is
	Role      string // defaults to operador
}

// Create adds a user.  A password is mandatory; there is no default.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (model.User, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return model.User{}, model.Validationf("Faltan campos obligatorios")
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = model.RoleOperator
	}
	if !validRole(role) {
		return model.User{}, model.Validationf("rol inválido: %s", role)
	}

	password := in.Password
	if !utils.IsBcryptHash(password) {
		hash, err := utils.HashPassword(password, s.cost)
		if err != nil {
			return model.User{}, err
		}
		password = hash
	}
	u := model.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     in.Email,
		Password:  password,
		Role:      role,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return model.User{}, err
	}
	s.log.Info().Uint64("user_id", u.ID).Str("role", role).Msg("user created")
	return u, nil
}

// UpdateUserInput edits a profile.  Role is optional.  Changing the
// password requires the current one.
type UpdateUserInput struct {
	FirstName       string
	LastName        string
	Email           string
	Role            string
	CurrentPassword string
	NewPassword     string
}

// Update edits a user's profile.
func (s *UserService) Update(ctx context.Context, id uint64, in UpdateUserInput) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.Email) == "" {
		return model.Validationf("Faltan campos obligatorios")
	}
	role := strings.TrimSpace(in.Role)
	if role != "" && !validRole(role) {
		return model.Validationf("rol inválido: %s", role)
	}
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	u := model.User{
		ID:        id,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     in.Email,
		Role:      role,
	}
	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return model.Validationf("Debes ingresar tu contraseña actual")
		}
		if !utils.ClassifyCredential(current.Password).Verify(in.CurrentPassword) {
			return model.ErrInvalidCredentials
		}
		hash, err := utils.HashPassword(in.NewPassword, s.cost)
		if err != nil {
			return err
		}
		u.Password = hash
	}
	return s.users.Update(ctx, u)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	return s.users.Delete(ctx, id)
}
