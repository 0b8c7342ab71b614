package utils // package utils provides helper functions for tokens and password hashing

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// AccessToken represents a signed JWT access token along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the identity carried by an access token.
type Claims struct {
	UserID    uint64
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// Profile returns the claims as a public user profile.
func (c Claims) Profile() model.Profile {
	return model.Profile{ID: c.UserID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email, Role: c.Role}
}

var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user.  Besides the
// standard sub/exp/iat claims the token carries the user's id, names,
// email and role so clients can render a session without another call.
func NewAccessToken(secret string, u model.User, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(u.ID, 10),
		"id":       u.ID,
		"nombre":   u.FirstName,
		"apellido": u.LastName,
		"correo":   u.Email,
		"rol":      u.Role,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw with secret and extracts its claims.
// Only HMAC-signed tokens are accepted.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	var c Claims
	sub, _ := mc["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		// tokens always carry a numeric id claim too; JSON numbers decode as float64
		f, ok := mc["id"].(float64)
		if !ok {
			return Claims{}, ErrInvalidToken
		}
		id = uint64(f)
	}
	c.UserID = id
	c.FirstName, _ = mc["nombre"].(string)
	c.LastName, _ = mc["apellido"].(string)
	c.Email, _ = mc["correo"].(string)
	c.Role, _ = mc["rol"].(string)
	return c, nil
}
