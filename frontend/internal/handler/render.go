package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	frontend_domain "github.com/aribt/hackathon-cms/frontend/internal/domain"
	"github.com/aribt/hackathon-cms/frontend/internal/middleware"
	"github.com/aribt/hackathon-cms/frontend/internal/query"
	"github.com/aribt/hackathon-cms/shared/domain"
	internal_errors "github.com/aribt/hackathon-cms/shared/errors"
	"github.com/aribt/hackathon-cms/shared/validation"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name, active string, data any) {
	h.renderTemplateWithStatus(w, r, http.StatusOK, name, active, data)
}

func (h *Handler) renderTemplateWithStatus(w http.ResponseWriter, r *http.Request, status int, name, active string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data:   data,
		Common: h.initCommonTemplateData(r, active),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		h.log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// initCommonTemplateData drains the notification queue, so it must run after
// the page's backend calls.
func (h *Handler) initCommonTemplateData(r *http.Request, active string) frontend_domain.CommonTemplateData {
	return frontend_domain.CommonTemplateData{
		Notifications: h.Notifications.Drain(),
		Authenticated: h.Hooks.Auth.Authenticated(),
		Active:        active,
		CSRFToken:     middleware.GetCSRFTokenFromContext(r),
		Validation: frontend_domain.ValidationData{
			MaxUploadSize:           h.Uploads.MaxSize,
			AllowedImageMimeTypes:   validation.AllowedImageMimeTypes,
			AllowedPaymentMimeTypes: validation.AllowedPaymentMimeTypes,
		},
	}
}

// sessionLost redirects to the login page when err dropped the session. It
// reports whether the response has been written.
func (h *Handler) sessionLost(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, internal_errors.ErrUnauthorized) || h.Hooks.Auth.Authenticated() {
		return false
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
	return true
}

func listPage[T any](snap query.Snapshot[[]T]) frontend_domain.ListPageData[T] {
	page := frontend_domain.ListPageData[T]{Items: snap.Data, State: snap.State.String()}
	if snap.Err != nil {
		page.Error = snap.Err.Error()
	}
	return page
}

// findByID returns a copy of the item whose id matches, nil when none does.
func findByID[T any](items []T, id string, idOf func(T) domain.ID) *T {
	if id == "" {
		return nil
	}
	for _, item := range items {
		if idOf(item).String() == id {
			found := item
			return &found
		}
	}
	return nil
}

func pending(ms ...interface{ Pending() bool }) bool {
	for _, m := range ms {
		if m.Pending() {
			return true
		}
	}
	return false
}
