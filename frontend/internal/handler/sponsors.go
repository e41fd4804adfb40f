package handler

import (
	"net/http"

	"github.com/aribt/hackathon-cms/frontend/internal/apiclient"
	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/aribt/hackathon-cms/shared/validation"
)

const sponsorsPath = "/sponsors"

func (h *Handler) SponsorsGetHandler(w http.ResponseWriter, r *http.Request) {
	sponsors := h.Hooks.Sponsors
	snap := sponsors.List(r.Context())
	if h.sessionLost(w, r, snap.Err) {
		return
	}

	data := listPage(snap)
	data.Edit = findByID(snap.Data, r.URL.Query().Get("edit"), func(s domain.Sponsor) domain.ID { return s.ID })
	data.Pending = pending(sponsors.Create, sponsors.Update, sponsors.Delete)

	h.renderTemplate(w, r, "sponsors.html", "sponsors", data)
}

func (h *Handler) SponsorCreateHandler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.Hooks.Sponsors.Create, h.sponsorInput, sponsorsPath)
}

func (h *Handler) SponsorUpdateHandler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.Hooks.Sponsors.Update, h.sponsorInput, sponsorsPath)
}

func (h *Handler) SponsorDeleteHandler(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.Hooks.Sponsors.Delete, sponsorsPath)
}

func (h *Handler) sponsorInput(r *http.Request) (any, error) {
	image, err := h.readUpload(r, "image", validation.AllowedImageMimeTypes)
	if err != nil {
		return nil, err
	}
	return apiclient.SponsorInput{
		Title: formValue(r, "title"),
		Type:  formValue(r, "type"),
		Image: image,
	}, nil
}
