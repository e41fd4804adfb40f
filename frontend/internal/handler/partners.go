package handler

import (
	"net/http"

	"github.com/aribt/hackathon-cms/frontend/internal/apiclient"
	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/aribt/hackathon-cms/shared/validation"
)

const partnersPath = "/partners"

func (h *Handler) PartnersGetHandler(w http.ResponseWriter, r *http.Request) {
	partners := h.Hooks.Partners
	snap := partners.List(r.Context())
	if h.sessionLost(w, r, snap.Err) {
		return
	}

	data := listPage(snap)
	data.Edit = findByID(snap.Data, r.URL.Query().Get("edit"), func(p domain.Partner) domain.ID { return p.ID })
	data.Pending = pending(partners.Create, partners.Update, partners.Delete)

	h.renderTemplate(w, r, "partners.html", "partners", data)
}

func (h *Handler) PartnerCreateHandler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.Hooks.Partners.Create, h.partnerInput, partnersPath)
}

func (h *Handler) PartnerUpdateHandler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.Hooks.Partners.Update, h.partnerInput, partnersPath)
}

func (h *Handler) PartnerDeleteHandler(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.Hooks.Partners.Delete, partnersPath)
}

func (h *Handler) partnerInput(r *http.Request) (any, error) {
	image, err := h.readUpload(r, "image", validation.AllowedImageMimeTypes)
	if err != nil {
		return nil, err
	}
	return apiclient.PartnerInput{Title: formValue(r, "title"), Image: image}, nil
}
