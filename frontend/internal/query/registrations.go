package query

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aribt/hackathon-cms/frontend/internal/apiclient"
	"github.com/aribt/hackathon-cms/shared/api"
	"github.com/aribt/hackathon-cms/shared/domain"
)

type StatusArgs struct {
	ID       domain.ID
	Verified bool
}

// Registrations adds the verification toggle to the generic collection.
type Registrations struct {
	*Collection[domain.Registration]
	UpdateStatus *Mutation[StatusArgs]
}

func newRegistrations(h *Hooks, statusField string) *Registrations {
	r := apiclient.Registrations
	c := Bind(h, r, Messages{
		Created: "Registration created successfully!",
		Updated: "Registration updated successfully!",
		Deleted: "Registration deleted successfully!",
	})

	update := func(ctx context.Context, args StatusArgs) (json.RawMessage, error) {
		value := domain.Unverified
		if args.Verified {
			value = domain.Verified
		}
		return h.Client.Update(ctx, r.Endpoint, args.ID, api.StatusUpdate(statusField, value))
	}
	msg := func(args StatusArgs) string {
		if args.Verified {
			return "Registration verified successfully!"
		}
		return "Registration unverified successfully!"
	}

	return &Registrations{
		Collection:   c,
		UpdateStatus: NewMutation(h.Cache, r.Key, h.Notifier, update, msg),
	}
}

// FilterRegistrations keeps registrations whose team name or email contains
// term (case-insensitively) or whose contact number contains it verbatim.
func FilterRegistrations(regs []domain.Registration, term string) []domain.Registration {
	if term == "" {
		return regs
	}
	lower := strings.ToLower(term)
	out := make([]domain.Registration, 0, len(regs))
	for _, reg := range regs {
		if strings.Contains(strings.ToLower(reg.TeamName), lower) ||
			strings.Contains(strings.ToLower(reg.Email), lower) ||
			strings.Contains(reg.ContactNo, term) {
			out = append(out, reg)
		}
	}
	return out
}

type RegistrationCounts struct {
	Total, Verified, Unverified int
}

func CountRegistrations(regs []domain.Registration) RegistrationCounts {
	counts := RegistrationCounts{Total: len(regs)}
	for _, reg := range regs {
		if reg.IsVerified() {
			counts.Verified++
		} else {
			counts.Unverified++
		}
	}
	return counts
}

// MembersOf returns the team members whose embedded registration belongs to
// reg's team.
func MembersOf(members []domain.TeamMember, reg domain.Registration) []domain.TeamMember {
	var out []domain.TeamMember
	for _, m := range members {
		if m.BelongsTo(reg) {
			out = append(out, m)
		}
	}
	return out
}
