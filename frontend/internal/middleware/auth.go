package middleware

import (
	"net/http"

	"github.com/aribt/hackathon-cms/frontend/internal/notify"
)

const LoginPath = "/login"

// SessionChecker reports whether an organizer is logged in.
type SessionChecker interface {
	Authenticated() bool
}

// RequireSession sends visitors without a session to the login page. Only
// GET requests leave a notice.
func RequireSession(s SessionChecker, n notify.Notifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}
			if r.Method == http.MethodGet {
				n.Error("Please log in to continue")
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		})
	}
}

// RedirectAuthenticated keeps a logged-in organizer away from the login page.
func RedirectAuthenticated(s SessionChecker, target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && s.Authenticated() {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
