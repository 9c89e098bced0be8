package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ivhu/farmstand"
	farmhttp "github.com/ivhu/farmstand/http"
	"github.com/ivhu/farmstand/session"
)

func setupGuard(t *testing.T) (*session.MemoryStore, *session.Codec, http.Handler) {
	t.Helper()

	sessions := session.NewMemoryStore(time.Hour)
	codec := session.NewCodec("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := farmhttp.PrincipalFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "admin", principal.Username)
		w.WriteHeader(http.StatusOK)
	})

	return sessions, codec, farmhttp.RequireAdmin(sessions, codec)(next)
}

func TestRequireAdmin_NoCookie(t *testing.T) {
	_, _, guard := setupGuard(t)

	req := httptest.NewRequest("GET", "/admin/api/products", nil)
	rec := httptest.NewRecorder()

	guard.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestRequireAdmin_ValidSession(t *testing.T) {
	sessions, codec, guard := setupGuard(t)

	id, err := sessions.Create(context.Background(), farmstand.Principal{ID: "admin", Username: "admin"})
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/api/products", nil)
	req.AddCookie(&http.Cookie{Name: farmhttp.SessionCookie, Value: codec.Encode(id)})
	rec := httptest.NewRecorder()

	guard.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_TamperedCookie(t *testing.T) {
	sessions, codec, guard := setupGuard(t)

	id, err := sessions.Create(context.Background(), farmstand.Principal{ID: "admin", Username: "admin"})
	assert.NoError(t, err)

	// A tag signed with a different secret must not verify, even for a real id
	forged := session.NewCodec("other-secret").Encode(id)
	assert.NotEqual(t, codec.Encode(id), forged)

	req := httptest.NewRequest("GET", "/admin/api/products", nil)
	req.AddCookie(&http.Cookie{Name: farmhttp.SessionCookie, Value: forged})
	rec := httptest.NewRecorder()

	guard.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_UnknownSession(t *testing.T) {
	_, codec, guard := setupGuard(t)

	req := httptest.NewRequest("GET", "/admin/api/products", nil)
	req.AddCookie(&http.Cookie{Name: farmhttp.SessionCookie, Value: codec.Encode("no-such-session")})
	rec := httptest.NewRecorder()

	guard.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
