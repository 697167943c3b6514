package middleware

import (
	"net/http"
	"strings"

	"github.com/de-tools/maturity-atlas/pkg/handlers/render"
	"github.com/de-tools/maturity-atlas/pkg/services/admin"
	"github.com/rs/zerolog"
)

const AdminCookie = "admin_session"

type SessionValidator interface {
	Validate(token string) error
}

// AdminToken reads the session token from the admin cookie or an
// Authorization: Bearer header, in that order.
func AdminToken(r *http.Request) string {
	if c, err := r.Cookie(AdminCookie); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func RequireAdmin(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sessions.Validate(AdminToken(r)); err != nil {
				zerolog.Ctx(r.Context()).Warn().Msg("admin request rejected")
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
				render.Error(w, r, http.StatusUnauthorized, admin.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
