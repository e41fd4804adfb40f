package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aribt/hackathon-cms/frontend/internal/query"
	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/aribt/hackathon-cms/shared/validation"
	"github.com/go-chi/chi/v5"
)

// formError is shown to the organizer verbatim.
type formError string

func (e formError) Error() string { return string(e) }

// decodeFunc builds a payload from a parsed form. A returned error is shown
// to the organizer as is.
type decodeFunc func(r *http.Request) (any, error)

// parseForm parses the request body unless a middleware already did.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	if r.Form != nil {
		return nil
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := validation.ValidateAndParseMultipart(r, w, h.Uploads.MaxSize); err != nil {
			return formError(fmt.Sprintf("Upload is too large (max %.1f MB).", validation.FormatSizeMB(h.Uploads.MaxSize)))
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return formError("Invalid form data.")
	}
	return nil
}

func (h *Handler) readUpload(r *http.Request, field string, allowed []string) (*domain.Upload, error) {
	upload, err := validation.ReadFormFile(r, field, allowed)
	switch {
	case err == nil:
		return upload, nil
	case errors.Is(err, validation.ErrInvalidMimeType):
		return nil, formError(fmt.Sprintf("Unsupported file type for %s. Allowed: %s.", field, strings.Join(allowed, ", ")))
	case errors.Is(err, validation.ErrNotAnImage):
		return nil, formError(fmt.Sprintf("The %s file is not a readable image.", field))
	default:
		h.log.Error("reading upload", "field", field, "error", err)
		return nil, formError(fmt.Sprintf("Could not read the %s file.", field))
	}
}

// create, update and remove run a mutation from a form post and send the
// browser back to target. Failures have been reported by the transport.

func (h *Handler) create(w http.ResponseWriter, r *http.Request, m *query.Mutation[any], decode decodeFunc, target string) {
	payload, ok := h.decode(w, r, decode)
	if ok {
		_, _ = m.Do(r.Context(), payload, query.Callbacks{})
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, m *query.Mutation[query.UpdateArgs], decode decodeFunc, target string) {
	payload, ok := h.decode(w, r, decode)
	if ok {
		_, _ = m.Do(r.Context(), query.UpdateArgs{ID: urlID(r), Payload: payload}, query.Callbacks{})
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request, m *query.Mutation[domain.ID], target string) {
	_, _ = m.Do(r.Context(), urlID(r), query.Callbacks{})
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, decode decodeFunc) (any, bool) {
	if err := h.parseForm(w, r); err != nil {
		h.Notifications.Error(err.Error())
		return nil, false
	}
	payload, err := decode(r)
	if err != nil {
		h.Notifications.Error(err.Error())
		return nil, false
	}
	return payload, true
}

func urlID(r *http.Request) domain.ID {
	return domain.ID(chi.URLParam(r, "id"))
}

func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}
