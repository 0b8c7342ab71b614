package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialKind tells how a stored password must be checked.
type CredentialKind int

const (
	// Hashed credentials are bcrypt hashes.
	Hashed CredentialKind = iota
	// Legacy credentials are plain text left over from before hashing was
	// introduced.  They are compared directly and replaced on login.
	Legacy
)

// Credential is a stored password together with its kind.
type Credential struct {
	Kind  CredentialKind
	Value string
}

// ClassifyCredential inspects a stored password value.
func ClassifyCredential(stored string) Credential {
	if IsBcryptHash(stored) {
		return Credential{Kind: Hashed, Value: stored}
	}
	return Credential{Kind: Legacy, Value: stored}
}

// IsBcryptHash reports whether s looks like a bcrypt hash ($2a$, $2b$ or $2y$).
func IsBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Verify checks plain against the credential.
func (c Credential) Verify(plain string) bool {
	switch c.Kind {
	case Hashed:
		return VerifyPassword(c.Value, plain)
	default:
		return c.Value != "" && c.Value == plain
	}
}

// NeedsRehash reports whether the credential should be replaced by a
// bcrypt hash after a successful login.
func (c Credential) NeedsRehash() bool { return c.Kind == Legacy }

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
