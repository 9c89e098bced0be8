package farmstand

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialProvider resolves submitted login credentials to a Principal.
// Implementations return ErrUnauthorized when the credentials do not match;
// route handlers never see the configured secret.
type CredentialProvider interface {
	Authenticate(username, password string) (Principal, error)
}

// StaticCredentials is a single-admin CredentialProvider backed by one
// configured username/password pair. The configured password may be either
// plaintext or a bcrypt hash (as produced by HashPassword); hashes are
// recognized by their prefix.
type StaticCredentials struct {
	username string
	password string
}

// NewStaticCredentials builds a StaticCredentials provider.
func NewStaticCredentials(username, password string) StaticCredentials {
	return StaticCredentials{username: username, password: password}
}

// Authenticate checks the submitted pair against the configured admin pair.
// Plaintext comparison is constant-time.
func (c StaticCredentials) Authenticate(username, password string) (Principal, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1

	var passOK bool
	if isBcryptHash(c.password) {
		passOK = bcrypt.CompareHashAndPassword([]byte(c.password), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
	}

	if !userOK || !passOK {
		return Principal{}, fmt.Errorf("authenticate: %w", ErrUnauthorized)
	}

	return Principal{ID: c.username, Username: c.username}, nil
}

// HashPassword returns a bcrypt hash of the given password, suitable for use
// as the configured admin password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
