package handler

import (
	"net/http"

	"github.com/aribt/hackathon-cms/frontend/internal/apiclient"
	"github.com/aribt/hackathon-cms/shared/domain"
)

const hackersPath = "/hackers"

func (h *Handler) HackersGetHandler(w http.ResponseWriter, r *http.Request) {
	hackers := h.Hooks.Hackers
	snap := hackers.List(r.Context())
	if h.sessionLost(w, r, snap.Err) {
		return
	}

	data := listPage(snap)
	data.Edit = findByID(snap.Data, r.URL.Query().Get("edit"), func(hk domain.Hacker) domain.ID { return hk.ID })
	data.Pending = pending(hackers.Create, hackers.Update, hackers.Delete)

	h.renderTemplate(w, r, "hackers.html", "hackers", data)
}

func (h *Handler) HackerCreateHandler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.Hooks.Hackers.Create, hackerInput, hackersPath)
}

func (h *Handler) HackerUpdateHandler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.Hooks.Hackers.Update, hackerInput, hackersPath)
}

func (h *Handler) HackerDeleteHandler(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.Hooks.Hackers.Delete, hackersPath)
}

func hackerInput(r *http.Request) (any, error) {
	return apiclient.HackerInput{
		TeamName:  formValue(r, "teamname"),
		Email:     formValue(r, "email"),
		ContactNo: formValue(r, "contactno"),
	}, nil
}
