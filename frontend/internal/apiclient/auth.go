package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aribt/hackathon-cms/shared/api"
	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/aribt/hackathon-cms/shared/validation"
)

const loginPath = "/auth/login"

const MsgNoToken = "Login succeeded but the server returned no token."

// Login sends credentials and returns the parsed answer. It does not touch
// the session; persisting the token is the caller's decision.
func (c *APIClient) Login(ctx context.Context, creds domain.Credentials) (api.LoginResponse, error) {
	if err := validation.Struct(creds); err != nil {
		c.notifier.Error(err.Error())
		return api.LoginResponse{}, err
	}

	jsonBody, err := json.Marshal(api.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return api.LoginResponse{}, fmt.Errorf("failed to marshal login data: %w", err)
	}

	body, err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     loginPath,
		resource: "auth",
		body:     bytes.NewReader(jsonBody),
	})
	if err != nil {
		return api.LoginResponse{}, err
	}

	resp, err := api.ParseLoginResponse(body, c.TokenFields...)
	if errors.Is(err, api.ErrNoToken) {
		c.notifier.Error(MsgNoToken)
		return resp, err
	}
	if err != nil {
		c.notifier.Error(MsgUnexpected)
		return resp, fmt.Errorf("cannot decode login response: %w", err)
	}
	return resp, nil
}
