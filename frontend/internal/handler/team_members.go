package handler

import (
	"net/http"

	"github.com/aribt/hackathon-cms/frontend/internal/apiclient"
	frontend_domain "github.com/aribt/hackathon-cms/frontend/internal/domain"
	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/aribt/hackathon-cms/shared/validation"
)

const teamMembersPath = "/team-members"

func (h *Handler) TeamMembersGetHandler(w http.ResponseWriter, r *http.Request) {
	members := h.Hooks.TeamMembers
	snap := members.List(r.Context())
	if h.sessionLost(w, r, snap.Err) {
		return
	}
	regs := h.Hooks.Registrations.List(r.Context())
	if h.sessionLost(w, r, regs.Err) {
		return
	}

	data := frontend_domain.TeamMembersPageData{
		ListPageData:  listPage(snap),
		Registrations: regs.Data,
	}
	data.Edit = findByID(snap.Data, r.URL.Query().Get("edit"), func(m domain.TeamMember) domain.ID { return m.ID })
	data.Pending = pending(members.Create, members.Update, members.Delete)

	h.renderTemplate(w, r, "team_members.html", "team-members", data)
}

func (h *Handler) TeamMemberCreateHandler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.Hooks.TeamMembers.Create, h.teamMemberInput, teamMembersPath)
}

func (h *Handler) TeamMemberUpdateHandler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.Hooks.TeamMembers.Update, h.teamMemberInput, teamMembersPath)
}

func (h *Handler) TeamMemberDeleteHandler(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.Hooks.TeamMembers.Delete, teamMembersPath)
}

// teamMemberInput embeds a copy of the chosen registration, looked up in the
// cached registration list.
func (h *Handler) teamMemberInput(r *http.Request) (any, error) {
	image, err := h.readUpload(r, "image", validation.AllowedImageMimeTypes)
	if err != nil {
		return nil, err
	}

	in := apiclient.TeamMemberInput{
		Name:      formValue(r, "name"),
		Github:    formValue(r, "github"),
		Email:     formValue(r, "email"),
		ContactNo: formValue(r, "contactno"),
		Image:     image,
	}
	if regID := formValue(r, "registration"); regID != "" {
		regs := h.Hooks.Registrations.List(r.Context())
		in.Registration = findByID(regs.Data, regID, func(reg domain.Registration) domain.ID { return reg.ID })
		if in.Registration == nil {
			return nil, formError("The selected team registration no longer exists.")
		}
	}
	return in, nil
}
