package middleware

import (
	"net/http"

	"szabo-data/inkwell/internal/shared/session"
)

// LoginPath is where guards send unauthenticated visitors.
const LoginPath = "/auth/login"

// RequireAuth redirects unauthenticated visitors to the login page. While
// the session state is still unknown it refuses to decide: redirecting on a
// stale "unauthenticated" reading is exactly the bug this guard exists to
// prevent, so it answers 503 and lets the visitor retry.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if !sess.Resolved() {
			http.Error(w, "session temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		if !sess.IsAuthenticated() {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin additionally sends authenticated non-admins home.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).IsAdmin() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
