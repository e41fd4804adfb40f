package api

import (
	"encoding/json"
	"errors"
)

// Token fields the backend has been seen to answer with, in lookup order.
var DefaultTokenFields = []string{"access_token", "token"}

var ErrNoToken = errors.New("login response carries no token")

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse keeps the raw fields so the token can be looked up under
// whichever name the deployed backend uses.
type LoginResponse struct {
	Message string
	Token   string
	Fields  map[string]json.RawMessage
}

// ParseLoginResponse decodes body and extracts the token from the first
// non-empty string field among fields (DefaultTokenFields when empty).
func ParseLoginResponse(body []byte, fields ...string) (LoginResponse, error) {
	var resp LoginResponse
	if err := json.Unmarshal(body, &resp.Fields); err != nil {
		return resp, err
	}
	resp.Message = stringField(resp.Fields, "message")

	if len(fields) == 0 {
		fields = DefaultTokenFields
	}
	for _, name := range fields {
		if token := stringField(resp.Fields, name); token != "" {
			resp.Token = token
			return resp, nil
		}
	}
	return resp, ErrNoToken
}
