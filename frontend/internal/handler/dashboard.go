package handler

import (
	"net/http"

	frontend_domain "github.com/aribt/hackathon-cms/frontend/internal/domain"
	"github.com/aribt/hackathon-cms/frontend/internal/query"
)

// DashboardGetHandler shows record counts for every collection. Each list is
// read through the cache, so visiting a section afterwards costs nothing.
func (h *Handler) DashboardGetHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data frontend_domain.DashboardPageData

	reads := []func() error{
		func() error { s := h.Hooks.Sponsors.List(ctx); data.Sponsors = len(s.Data); return s.Err },
		func() error { s := h.Hooks.Partners.List(ctx); data.Partners = len(s.Data); return s.Err },
		func() error { s := h.Hooks.TeamMembers.List(ctx); data.TeamMembers = len(s.Data); return s.Err },
		func() error { s := h.Hooks.Hackers.List(ctx); data.Hackers = len(s.Data); return s.Err },
		func() error {
			s := h.Hooks.Registrations.List(ctx)
			data.Registrations = frontend_domain.RegistrationCounts(query.CountRegistrations(s.Data))
			return s.Err
		},
	}
	for _, read := range reads {
		// stop at the first 401 rather than collect one per collection
		if h.sessionLost(w, r, read()) {
			return
		}
	}

	h.renderTemplate(w, r, "dashboard.html", "dashboard", data)
}
