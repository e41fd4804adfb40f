package apiclient

import "github.com/aribt/hackathon-cms/shared/domain"

// Inputs for the create/update forms. Each renders the multipart fields the
// backend expects.

type SponsorInput struct {
	Title string `validate:"required"`
	Type  string `validate:"required"`
	Image *domain.Upload
}

func (in SponsorInput) Form() (*Form, error) {
	return NewForm().Set("title", in.Title).Set("type", in.Type).Attach("image", in.Image), nil
}

type PartnerInput struct {
	Title string `validate:"required"`
	Image *domain.Upload
}

func (in PartnerInput) Form() (*Form, error) {
	return NewForm().Set("title", in.Title).Attach("image", in.Image), nil
}

type TeamMemberInput struct {
	Name      string `validate:"required"`
	Github    string
	Email     string `validate:"required,email"`
	ContactNo string
	// Registration is embedded as a JSON copy; the backend keeps no link.
	Registration *domain.Registration
	Image        *domain.Upload
}

func (in TeamMemberInput) Form() (*Form, error) {
	f := NewForm().
		Set("name", in.Name).
		Set("github", in.Github).
		Set("email", in.Email).
		Set("contactno", in.ContactNo)
	if in.Registration != nil {
		if err := f.SetJSON("Registrationformhackerid", in.Registration); err != nil {
			return nil, err
		}
	}
	return f.Attach("image", in.Image), nil
}

type RegistrationInput struct {
	TeamName  string `validate:"required"`
	Email     string `validate:"required,email"`
	ContactNo string `validate:"required"`
	Password  string `validate:"required"`
	Payment   *domain.Upload
}

func (in RegistrationInput) Form() (*Form, error) {
	return NewForm().
		Set("teamname", in.TeamName).
		Set("email", in.Email).
		Set("contactno", in.ContactNo).
		Set("password", in.Password).
		Attach("payment", in.Payment), nil
}

type HackathonInfoInput struct {
	Description string `json:"description" validate:"required"`
}

type HackerInput struct {
	TeamName  string `json:"teamname" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	ContactNo string `json:"contactno"`
}
