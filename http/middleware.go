package http

import (
	"context"
	"net/http"

	"github.com/ivhu/farmstand"
	"github.com/ivhu/farmstand/session"
)

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "farmstand_session"

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext returns the authenticated Principal placed in the
// request context by RequireAdmin.
func PrincipalFromContext(ctx context.Context) (farmstand.Principal, bool) {
	p, ok := ctx.Value(principalKey).(farmstand.Principal)
	return p, ok
}

// RequireAdmin creates middleware that rejects requests without a valid admin
// session. A missing, tampered, or expired cookie all read as unauthenticated;
// on success the Principal is placed in the request context.
func RequireAdmin(sessions session.Store, codec *session.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			id, err := codec.Decode(cookie.Value)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			principal, err := sessions.Get(r.Context(), id)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
