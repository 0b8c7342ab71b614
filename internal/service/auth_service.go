package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// UserStore is the persistence contract used by AuthService and UserService.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u model.User) error
	UpdatePassword(ctx context.Context, id uint64, password string) error
	Delete(ctx context.Context, id uint64) error
}

// AuthService registers customers and issues access tokens.
type AuthService struct {
	users  UserStore
	secret string
	ttl    time.Duration
	cost   int
	log    zerolog.Logger
}

func NewAuthService(users UserStore, secret string, ttl time.Duration, bcryptCost int, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl, cost: bcryptCost, log: log}
}

// RegisterInput is a self-service sign-up.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a customer account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return model.User{}, model.Validationf("Faltan datos obligatorios")
	}
	hash, err := utils.HashPassword(in.Password, s.cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     in.Email,
		Password:  hash,
		Role:      model.RoleCustomer,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token utils.AccessToken
	User  model.Profile
}

// Login checks the credentials and issues a token.  An account still
// holding a plain-text password has it replaced by a bcrypt hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return LoginResult{}, model.Validationf("Faltan credenciales")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return LoginResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	cred := utils.ClassifyCredential(u.Password)
	if !cred.Verify(password) {
		return LoginResult{}, model.ErrInvalidCredentials
	}
	if cred.NeedsRehash() {
		s.rehash(ctx, u.ID, password)
	}

	tok, err := utils.NewAccessToken(s.secret, u, s.ttl)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: tok, User: u.Profile()}, nil
}

func (s *AuthService) rehash(ctx context.Context, id uint64, password string) {
	hash, err := utils.HashPassword(password, s.cost)
	if err == nil {
		err = s.users.UpdatePassword(ctx, id, hash)
	}
	if err != nil {
		s.log.Warn().Err(err).Uint64("user_id", id).Msg("legacy password rehash failed")
		return
	}
	s.log.Info().Uint64("user_id", id).Msg("legacy password migrated to bcrypt")
}

// Profile returns the current profile of a user.
func (s *AuthService) Profile(ctx context.Context, id uint64) (model.Profile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}
	return u.Profile(), nil
}
