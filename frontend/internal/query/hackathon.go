package query

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aribt/hackathon-cms/frontend/internal/apiclient"
	"github.com/aribt/hackathon-cms/shared/domain"
)

// ErrNoHackathonInfo is returned when the description is saved before the
// backend holds a record to update.
var ErrNoHackathonInfo = errors.New("no existing hackathon information found")

const msgNoHackathonInfo = "No existing hackathon information found. Please contact administrator."

// HackathonInfo is the single event description. The backend answers with
// either an array or an object; the first element, else the object, wins.
type HackathonInfo struct {
	Update *Mutation[UpdateArgs]

	reader *Reader[domain.HackathonInfo]
	hooks  *Hooks
}

func newHackathonInfo(h *Hooks) *HackathonInfo {
	r := apiclient.HackathonInfo
	reader := NewReader(h.Cache, Key{Name: r.Key}, domain.HackathonInfo{}, func(ctx context.Context) (domain.HackathonInfo, error) {
		raw, err := h.Client.List(ctx, r.Endpoint)
		if err != nil {
			return domain.HackathonInfo{}, err
		}
		return apiclient.DecodeOne[domain.HackathonInfo](raw)
	})
	return &HackathonInfo{
		Update: MakeUpdater(h, r, "Hackathon information updated successfully!"),
		reader: reader,
		hooks:  h,
	}
}

func (hi *HackathonInfo) Get(ctx context.Context) Snapshot[domain.HackathonInfo] {
	return hi.reader.Read(ctx)
}

// Save updates the description of the current record. Without one there is
// nothing to update and no request is made.
func (hi *HackathonInfo) Save(ctx context.Context, description string, cb Callbacks) (json.RawMessage, error) {
	current := hi.reader.Read(ctx)
	if current.Data.ID.IsZero() {
		if current.Err != nil {
			return nil, current.Err
		}
		hi.hooks.Notifier.Error(msgNoHackathonInfo)
		if cb.OnError != nil {
			cb.OnError(ErrNoHackathonInfo)
		}
		return nil, ErrNoHackathonInfo
	}
	return hi.Update.Do(ctx, UpdateArgs{
		ID:      current.Data.ID,
		Payload: apiclient.HackathonInfoInput{Description: description},
	}, cb)
}
