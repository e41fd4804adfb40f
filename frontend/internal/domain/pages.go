package frontend_domain

import (
	"html/template"

	"github.com/aribt/hackathon-cms/shared/domain"
)

type LoginPageData struct {
	Email string
}

type DashboardPageData struct {
	Sponsors      int
	Partners      int
	TeamMembers   int
	Hackers       int
	Registrations RegistrationCounts
}

type RegistrationCounts struct {
	Total, Verified, Unverified int
}

// ListPageData is shared by every list page. Edit is set when the page was
// opened with ?edit=<id> and the record exists.
type ListPageData[T any] struct {
	Items   []T
	State   string
	Error   string
	Edit    *T
	Pending bool
}

type RegistrationsPageData struct {
	ListPageData[domain.Registration]
	Search string
	Counts RegistrationCounts
}

type RegistrationDetailPageData struct {
	Registration domain.Registration
	Members      []domain.TeamMember
}

type TeamMembersPageData struct {
	ListPageData[domain.TeamMember]
	// Registrations to choose from when attaching a member to a team.
	Registrations []domain.Registration
}

type AboutPageData struct {
	Info       domain.HackathonInfo
	Rendered   template.HTML
	HasContent bool
	HasRecord  bool
	Error      string
}
