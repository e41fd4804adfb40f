package query

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/aribt/hackathon-cms/frontend/internal/notify"
)

// Callbacks are invoked after the outcome of one Do is known; either may be nil.
type Callbacks struct {
	OnSuccess func(json.RawMessage)
	OnError   func(error)
}

type MutateFunc[In any] func(ctx context.Context, in In) (json.RawMessage, error)

// Mutation is a one-shot write. Nothing limits concurrent invocations; the
// caller is expected to hold off while Pending reports true.
type Mutation[In any] struct {
	cache    *Cache
	key      string // invalidated on success; "" for none
	run      MutateFunc[In]
	notifier notify.Notifier
	success  func(In) string
	pending  atomic.Int64
}

// NewMutation wraps run. success, when not nil, yields the toast shown after
// a successful call.
func NewMutation[In any](cache *Cache, key string, notifier notify.Notifier, run MutateFunc[In], success func(In) string) *Mutation[In] {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Mutation[In]{cache: cache, key: key, run: run, notifier: notifier, success: success}
}

// Do runs the write. On success the cache key is invalidated strictly after
// the backend acknowledged it, so the next read refetches. There is no
// optimistic update.
func (m *Mutation[In]) Do(ctx context.Context, in In, cb Callbacks) (json.RawMessage, error) {
	m.pending.Add(1)
	out, err := m.run(ctx, in)
	m.pending.Add(-1)

	if err != nil {
		if cb.OnError != nil {
			cb.OnError(err)
		}
		return nil, err
	}

	if m.key != "" {
		m.cache.Invalidate(m.key)
	}
	if m.success != nil {
		if msg := m.success(in); msg != "" {
			m.notifier.Success(msg)
		}
	}
	if cb.OnSuccess != nil {
		cb.OnSuccess(out)
	}
	return out, nil
}

func (m *Mutation[In]) Pending() bool {
	return m.pending.Load() > 0
}

func fixed[In any](msg string) func(In) string {
	return func(In) string { return msg }
}
