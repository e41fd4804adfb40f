package query

import (
	"context"
	"encoding/json"

	"github.com/aribt/hackathon-cms/frontend/internal/session"
	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/aribt/hackathon-cms/shared/logger"
)

// Auth wraps login and logout around the session.
type Auth struct {
	Login *Mutation[domain.Credentials]

	hooks *Hooks
}

func newAuth(h *Hooks) *Auth {
	login := func(ctx context.Context, creds domain.Credentials) (json.RawMessage, error) {
		resp, err := h.Client.Login(ctx, creds)
		if err != nil {
			return nil, err
		}
		// data cached under another identity must not leak into this one
		h.Cache.Reset()
		if err := h.Client.Session().Set(resp.Token); err != nil {
			// still logged in for this process
			logger.Log.Error("persisting session token", "component", "query", "error", err)
		}
		return json.Marshal(map[string]string{"message": resp.Message})
	}
	return &Auth{
		Login: NewMutation(h.Cache, "", h.Notifier, login, nil),
		hooks: h,
	}
}

func (a *Auth) Session() *session.Session {
	return a.hooks.Client.Session()
}

func (a *Auth) Authenticated() bool {
	return a.Session().Authenticated()
}

// Logout drops the token and every cached record.
func (a *Auth) Logout() error {
	a.hooks.Cache.Reset()
	return a.Session().Clear()
}
