package handler

import (
	"net/http"

	frontend_domain "github.com/aribt/hackathon-cms/frontend/internal/domain"
	"github.com/aribt/hackathon-cms/frontend/internal/middleware"
	"github.com/aribt/hackathon-cms/frontend/internal/query"
	"github.com/aribt/hackathon-cms/shared/domain"
)

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", "login", frontend_domain.LoginPageData{})
}

// LoginPostHandler re-renders the form with the email kept when the login
// fails; the reason is already in the notification queue.
func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.Notifications.Error(err.Error())
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	creds := domain.Credentials{
		Email:    formValue(r, "email"),
		Password: r.FormValue("password"),
	}

	if _, err := h.Hooks.Auth.Login.Do(r.Context(), creds, query.Callbacks{}); err != nil {
		h.log.Info("login failed", "email", creds.Email, "error", err)
		h.renderTemplateWithStatus(w, r, http.StatusUnauthorized, "login.html", "login",
			frontend_domain.LoginPageData{Email: creds.Email})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Hooks.Auth.Logout(); err != nil {
		h.log.Error("clearing stored session", "error", err)
	}
	h.Notifications.Success("Logged out successfully")
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}
