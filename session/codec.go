package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ivhu/farmstand"
)

// Codec signs session ids for transport in a cookie. The cookie value is
// "<id>.<base64url(HMAC-SHA256(id))>"; a value whose tag does not verify is
// treated as no session at all, so a tampered cookie cannot name an arbitrary
// session id.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec keyed with the configured session secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode returns the signed cookie value for a session id.
func (c *Codec) Encode(id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(c.sign(id))
}

// Decode verifies a cookie value and returns the session id it carries.
func (c *Codec) Decode(value string) (string, error) {
	id, tag, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", fmt.Errorf("decode session cookie: %w", farmstand.ErrUnauthorized)
	}

	got, err := base64.RawURLEncoding.DecodeString(tag)
	if err != nil {
		return "", fmt.Errorf("decode session cookie: %w", farmstand.ErrUnauthorized)
	}

	if !hmac.Equal(got, c.sign(id)) {
		return "", fmt.Errorf("decode session cookie: bad signature: %w", farmstand.ErrUnauthorized)
	}

	return id, nil
}

func (c *Codec) sign(id string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(id))
	return mac.Sum(nil)
}
