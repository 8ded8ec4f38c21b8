package middleware

import (
	"net/http"
	"strings"

	"github.com/choppersalon/platform/internal/auth"
)

// EnsureSession guarantees every request carries a session id. A valid
// session cookie is read back; anything else gets a fresh id and cookie. The
// id is injected into the request context for downstream handlers.
func EnsureSession(mgr *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := mgr.ReadSessionID(r)
			if !ok {
				fresh, err := mgr.IssueSessionID(w)
				if err != nil {
					http.Error(w, "session unavailable", http.StatusInternalServerError)
					return
				}
				id = fresh
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSessionID(r.Context(), id)))
		})
	}
}

// RequireSession gates routes behind a logged-in session. Page requests are
// redirected to the login page; API requests get a JSON 401.
func RequireSession(mgr *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := auth.SessionIDFromContext(r.Context())
			if mgr.Authenticated(r.Context(), id) {
				next.ServeHTTP(w, r)
				return
			}
			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})
	}
}
