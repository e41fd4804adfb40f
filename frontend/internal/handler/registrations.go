package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aribt/hackathon-cms/frontend/internal/apiclient"
	frontend_domain "github.com/aribt/hackathon-cms/frontend/internal/domain"
	"github.com/aribt/hackathon-cms/frontend/internal/export"
	"github.com/aribt/hackathon-cms/frontend/internal/query"
	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/aribt/hackathon-cms/shared/validation"
)

const registrationsPath = "/registrations"

func (h *Handler) RegistrationsGetHandler(w http.ResponseWriter, r *http.Request) {
	regs := h.Hooks.Registrations
	snap := regs.List(r.Context())
	if h.sessionLost(w, r, snap.Err) {
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("q"))
	counts := query.CountRegistrations(snap.Data)
	data := frontend_domain.RegistrationsPageData{
		ListPageData: listPage(snap),
		Search:       search,
		Counts:       frontend_domain.RegistrationCounts(counts),
	}
	data.Items = query.FilterRegistrations(snap.Data, search)
	data.Pending = pending(regs.Create, regs.Update, regs.Delete, regs.UpdateStatus)

	h.renderTemplate(w, r, "registrations.html", "registrations", data)
}

func (h *Handler) RegistrationGetHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.Hooks.Registrations.Get(r.Context(), urlID(r))
	if h.sessionLost(w, r, snap.Err) {
		return
	}
	if snap.Err != nil {
		http.Redirect(w, r, registrationsPath, http.StatusSeeOther)
		return
	}
	members := h.Hooks.TeamMembers.List(r.Context())
	if h.sessionLost(w, r, members.Err) {
		return
	}

	data := frontend_domain.RegistrationDetailPageData{
		Registration: snap.Data,
		Members:      query.MembersOf(members.Data, snap.Data),
	}
	h.renderTemplate(w, r, "registration.html", "registrations", data)
}

func (h *Handler) RegistrationCreateHandler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.Hooks.Registrations.Create, h.registrationInput, registrationsPath)
}

func (h *Handler) RegistrationDeleteHandler(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.Hooks.Registrations.Delete, registrationsPath)
}

// RegistrationStatusHandler sets the verification flag and goes back to the
// list or the detail page, whichever the form came from.
func (h *Handler) RegistrationStatusHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.Notifications.Error(err.Error())
		http.Redirect(w, r, registrationsPath, http.StatusSeeOther)
		return
	}
	args := query.StatusArgs{ID: urlID(r), Verified: r.FormValue("verified") == domain.Verified}
	_, _ = h.Hooks.Registrations.UpdateStatus.Do(r.Context(), args, query.Callbacks{})

	target := registrationsPath
	if back := r.FormValue("back"); strings.HasPrefix(back, registrationsPath) && !strings.HasPrefix(back, "//") {
		target = back
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RegistrationsExportHandler downloads the (optionally filtered) list as CSV.
func (h *Handler) RegistrationsExportHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.Hooks.Registrations.List(r.Context())
	if h.sessionLost(w, r, snap.Err) {
		return
	}
	if snap.Err != nil {
		http.Redirect(w, r, registrationsPath, http.StatusSeeOther)
		return
	}

	regs := query.FilterRegistrations(snap.Data, strings.TrimSpace(r.URL.Query().Get("q")))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	if err := export.WriteRegistrations(w, regs); err != nil {
		h.log.Error("writing registrations export", "error", err)
	}
}

func (h *Handler) registrationInput(r *http.Request) (any, error) {
	payment, err := h.readUpload(r, "payment", validation.AllowedPaymentMimeTypes)
	if err != nil {
		return nil, err
	}
	return apiclient.RegistrationInput{
		TeamName:  formValue(r, "teamname"),
		Email:     formValue(r, "email"),
		ContactNo: formValue(r, "contactno"),
		Password:  r.FormValue("password"),
		Payment:   payment,
	}, nil
}
