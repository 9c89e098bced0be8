package farmstand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivhu/farmstand"
)

func TestStaticCredentials_Plaintext(t *testing.T) {
	creds := farmstand.NewStaticCredentials("admin", "s3cret")

	t.Run("match", func(t *testing.T) {
		p, err := creds.Authenticate("admin", "s3cret")
		assert.NoError(t, err)
		assert.Equal(t, farmstand.Principal{ID: "admin", Username: "admin"}, p)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := creds.Authenticate("admin", "wrong")
		assert.ErrorIs(t, err, farmstand.ErrUnauthorized)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, err := creds.Authenticate("root", "s3cret")
		assert.ErrorIs(t, err, farmstand.ErrUnauthorized)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, err := creds.Authenticate("", "")
		assert.ErrorIs(t, err, farmstand.ErrUnauthorized)
	})
}

func TestStaticCredentials_BcryptHash(t *testing.T) {
	hash, err := farmstand.HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	creds := farmstand.NewStaticCredentials("admin", hash)

	p, err := creds.Authenticate("admin", "s3cret")
	assert.NoError(t, err)
	assert.Equal(t, "admin", p.Username)

	// the hash itself must not work as a password
	_, err = creds.Authenticate("admin", hash)
	assert.ErrorIs(t, err, farmstand.ErrUnauthorized)

	_, err = creds.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, farmstand.ErrUnauthorized)
}
