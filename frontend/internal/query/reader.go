package query

import (
	"context"
	"errors"
	"time"
)

// Snapshot is a read-only view of one cache entry.
type Snapshot[T any] struct {
	Data      T
	State     State
	Err       error
	UpdatedAt time.Time
}

func (s Snapshot[T]) Loading() bool { return s.State == StateLoading }

func (s Snapshot[T]) Ready() bool { return s.State == StateReady }

type FetchFunc[T any] func(ctx context.Context) (T, error)

// refetch attempts per Read when invalidations keep superseding the fetch
const maxAttempts = 3

// Reader fetches one key on demand.
type Reader[T any] struct {
	cache *Cache
	key   Key
	empty T
	fetch FetchFunc[T]
}

// NewReader returns a reader for key. empty is reported as data until a
// fetch succeeds.
func NewReader[T any](cache *Cache, key Key, empty T, fetch FetchFunc[T]) *Reader[T] {
	return &Reader[T]{cache: cache, key: key, empty: empty, fetch: fetch}
}

func (r *Reader[T]) Key() Key { return r.key }

// Read returns cached data when the entry is READY and fetches otherwise.
// Concurrent reads of the same generation share one backend call.
func (r *Reader[T]) Read(ctx context.Context) Snapshot[T] {
	return r.read(ctx, false)
}

// Refetch fetches even when the entry is READY.
func (r *Reader[T]) Refetch(ctx context.Context) Snapshot[T] {
	return r.read(ctx, true)
}

func (r *Reader[T]) read(ctx context.Context, force bool) Snapshot[T] {
	for attempt := 1; ; attempt++ {
		gen, needed := r.cache.begin(r.key, force)
		if !needed {
			return r.Peek()
		}

		v, err, _ := r.cache.group.Do(flightKey(r.key, gen), func() (any, error) {
			return r.fetch(ctx)
		})
		stored := r.cache.complete(r.key, gen, v, err)
		if ctx.Err() != nil || attempt >= maxAttempts {
			return r.Peek()
		}
		// a shared fetch cancelled by another reader's context is retried
		// under ours
		if stored && !isContextErr(err) {
			return r.Peek()
		}
		force = false
	}
}

// Peek returns the entry as it is, without fetching.
func (r *Reader[T]) Peek() Snapshot[T] {
	e, ok := r.cache.lookup(r.key)
	if !ok {
		return Snapshot[T]{Data: r.empty, State: StateEmpty}
	}
	snap := Snapshot[T]{Data: r.empty, State: e.state, Err: e.err, UpdatedAt: e.updatedAt}
	if data, ok := e.data.(T); ok {
		snap.Data = data
	}
	return snap
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
