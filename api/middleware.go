package api

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/linesmerrill/fiscal-cidadao/session"
)

// SessionCookie is the cookie holding the session id
const SessionCookie = "fc_session"

// SessionMiddleware attaches the caller's session to the request, opening a new one and setting
// the cookie when the caller has none or an expired one
func SessionMiddleware(sessions *session.Manager, baseURL string) func(http.Handler) http.Handler {
	secure := strings.HasPrefix(baseURL, "https://")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = c.Value
			}

			s, created := sessions.GetOrCreate(id)
			if created {
				zap.S().Debugw("new session", "session", s.ID, "previous", id, "path", r.URL.Path)
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    s.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
