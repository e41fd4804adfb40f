package domain

import "encoding/json"

type Sponsor struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
	Type  string `json:"type"`
	Timestamps
}

type Partner struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
	Timestamps
}

// Verification values used by the registration status field.
const (
	Verified   = "yes"
	Unverified = "no"
)

type Registration struct {
	ID        ID     `json:"id"`
	TeamName  string `json:"teamname"`
	Email     string `json:"email"`
	ContactNo string `json:"contactno"`
	Payment   string `json:"payment,omitempty"` // URL of the uploaded payment proof
	Verified  string `json:"verified"`
	Timestamps

	// raw is the record as the backend sent it. Embedded copies are sent
	// back byte for byte, so numeric ids and unknown fields survive.
	raw json.RawMessage
}

func (r *Registration) UnmarshalJSON(data []byte) error {
	type plain Registration
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Registration(p)
	if string(data) != "null" {
		r.raw = append(json.RawMessage(nil), data...)
	}
	return nil
}

func (r Registration) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain Registration
	return json.Marshal(plain(r))
}

func (r Registration) IsVerified() bool {
	return r.Verified == Verified
}

// TeamMember carries a copy of the registration it was attached to at
// creation time; nothing keeps the two in sync.
type TeamMember struct {
	ID           ID            `json:"id"`
	Name         string        `json:"name"`
	Github       string        `json:"github"`
	Email        string        `json:"email"`
	ContactNo    string        `json:"contactno"`
	Image        string        `json:"image,omitempty"`
	Registration *Registration `json:"Registrationformhacker,omitempty"`
	Timestamps
}

// BelongsTo reports whether the member's embedded registration is for reg's team.
func (m TeamMember) BelongsTo(reg Registration) bool {
	return m.Registration != nil && m.Registration.TeamName == reg.TeamName
}

type HackathonInfo struct {
	ID          ID     `json:"id,omitempty"`
	Description string `json:"description"`
	Timestamps
}

type Hacker struct {
	ID        ID     `json:"id"`
	TeamName  string `json:"teamname,omitempty"`
	Email     string `json:"email,omitempty"`
	ContactNo string `json:"contactno,omitempty"`
	Timestamps
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Upload is a file picked in a form, held in memory until it is sent.
type Upload struct {
	Filename string
	MimeType string
	Content  []byte
	Width    int // image dimensions, 0 when not an image
	Height   int
}

func (u *Upload) Empty() bool {
	return u == nil || len(u.Content) == 0
}
