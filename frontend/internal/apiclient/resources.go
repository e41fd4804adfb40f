package apiclient

import "github.com/aribt/hackathon-cms/shared/domain"

// Backend collections. Endpoint spellings are the backend's own.
var (
	Sponsors      = Resource[domain.Sponsor]{Key: "sponsors", Endpoint: "sponsers"}
	HackathonInfo = Resource[domain.HackathonInfo]{Key: "hackathon-info", Endpoint: "abouthackerthon"}
	Registrations = Resource[domain.Registration]{Key: "registrations", Endpoint: "registrationformhacker"}
	Partners      = Resource[domain.Partner]{Key: "partners", Endpoint: "supportingpartners"}
	TeamMembers   = Resource[domain.TeamMember]{Key: "team-members", Endpoint: "teamsmemberhacker"}
	Hackers       = Resource[domain.Hacker]{Key: "hackers", Endpoint: "hackers"}
)
