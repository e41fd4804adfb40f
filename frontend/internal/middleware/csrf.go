package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aribt/hackathon-cms/shared/csrf"
	"github.com/aribt/hackathon-cms/shared/logger"
)

const (
	csrfCookieName = "csrf_token"
	CSRFFormField  = "csrf_token"
)

type csrfContextKey string

const csrfTokenContextKey csrfContextKey = "csrf_token"

type CSRFConfig struct {
	SecureCookies bool  // Use Secure flag on cookies (requires HTTPS)
	MaxFormSize   int64 // multipart bodies are parsed up to this size
}

// GenerateCSRFToken issues the double-submit cookie and exposes its value to
// templates through the request context.
func GenerateCSRFToken(config CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token, err = csrf.GenerateToken()
				if err != nil {
					logger.Log.Error("failed to generate CSRF token", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   config.SecureCookies,
					SameSite: http.SameSiteStrictMode,
					MaxAge:   12 * 60 * 60,
				})
			}

			ctx := context.WithValue(r.Context(), csrfTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateCSRFToken rejects state-changing requests whose form token does not
// match the cookie.
func ValidateCSRFToken(config CSRFConfig) func(http.Handler) http.Handler {
	maxFormSize := config.MaxFormSize
	if maxFormSize <= 0 {
		maxFormSize = 32 << 20
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrfCookieName)
			if err != nil {
				logger.Log.Warn("CSRF token cookie missing", "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}

			if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
				if err := r.ParseMultipartForm(maxFormSize); err != nil {
					logger.Log.Warn("failed to parse multipart form", "path", r.URL.Path, "error", err)
					http.Error(w, "Invalid form data", http.StatusBadRequest)
					return
				}
			} else if err := r.ParseForm(); err != nil {
				logger.Log.Warn("failed to parse form", "path", r.URL.Path, "error", err)
				http.Error(w, "Invalid form data", http.StatusBadRequest)
				return
			}

			if !csrf.ValidateToken(cookie.Value, r.FormValue(CSRFFormField)) {
				logger.Log.Warn("CSRF token validation failed", "path", r.URL.Path)
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetCSRFTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenContextKey).(string)
	return token
}
