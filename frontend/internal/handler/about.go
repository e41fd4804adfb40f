package handler

import (
	"net/http"

	frontend_domain "github.com/aribt/hackathon-cms/frontend/internal/domain"
	"github.com/aribt/hackathon-cms/frontend/internal/query"
)

const aboutPath = "/about"

func (h *Handler) AboutGetHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.Hooks.HackathonInfo.Get(r.Context())
	if h.sessionLost(w, r, snap.Err) {
		return
	}

	data := frontend_domain.AboutPageData{
		Info:      snap.Data,
		HasRecord: !snap.Data.ID.IsZero(),
	}
	if snap.Err != nil {
		data.Error = snap.Err.Error()
	}
	rendered, err := h.Markdown.Render(snap.Data.Description)
	if err != nil {
		h.log.Warn("rendering hackathon description", "error", err)
	}
	data.Rendered = rendered
	data.HasContent = h.Markdown.HasContent(snap.Data.Description)

	h.renderTemplate(w, r, "about.html", "about", data)
}

func (h *Handler) AboutPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.Notifications.Error(err.Error())
		http.Redirect(w, r, aboutPath, http.StatusSeeOther)
		return
	}
	_, _ = h.Hooks.HackathonInfo.Save(r.Context(), r.FormValue("description"), query.Callbacks{})
	http.Redirect(w, r, aboutPath, http.StatusSeeOther)
}
