package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingReader(cache *Cache, name string, results ...string) (*Reader[string], *atomic.Int32) {
	var calls atomic.Int32
	r := NewReader(cache, Key{Name: name}, "", func(ctx context.Context) (string, error) {
		n := int(calls.Add(1))
		if n > len(results) {
			return results[len(results)-1], nil
		}
		return results[n-1], nil
	})
	return r, &calls
}

func TestReader_StateMachine(t *testing.T) {
	cache := NewCache()
	r, calls := countingReader(cache, "sponsors", "first", "second")
	ctx := context.Background()

	snap := r.Peek()
	assert.Equal(t, StateEmpty, snap.State)
	assert.Equal(t, "", snap.Data)

	snap = r.Read(ctx)
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, "first", snap.Data)
	assert.False(t, snap.UpdatedAt.IsZero())

	snap = r.Read(ctx)
	assert.Equal(t, "first", snap.Data, "ready entries are served from cache")
	assert.EqualValues(t, 1, calls.Load())

	cache.Invalidate("sponsors")
	assert.Equal(t, StateStale, cache.State(r.Key()))
	assert.Equal(t, "first", r.Peek().Data, "stale data stays visible")

	snap = r.Read(ctx)
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, "second", snap.Data)
	assert.EqualValues(t, 2, calls.Load())
}

func TestReader_Refetch(t *testing.T) {
	cache := NewCache()
	r, calls := countingReader(cache, "partners", "a", "b")
	ctx := context.Background()

	r.Read(ctx)
	snap := r.Refetch(ctx)
	assert.Equal(t, "b", snap.Data)
	assert.EqualValues(t, 2, calls.Load())
}

func TestReader_ErrorThenRecovery(t *testing.T) {
	cache := NewCache()
	boom := errors.New("boom")
	var calls atomic.Int32
	r := NewReader(cache, Key{Name: "registrations"}, []string{}, func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return []string{"ok"}, nil
	})
	ctx := context.Background()

	snap := r.Read(ctx)
	assert.Equal(t, StateError, snap.State)
	assert.ErrorIs(t, snap.Err, boom)
	assert.NotNil(t, snap.Data, "empty value is reported, never nil")
	assert.Empty(t, snap.Data)

	snap = r.Read(ctx)
	assert.Equal(t, StateReady, snap.State)
	assert.NoError(t, snap.Err)
	assert.Equal(t, []string{"ok"}, snap.Data)
}

func TestReader_CancelledFetchLeavesEntryEmpty(t *testing.T) {
	cache := NewCache()
	r := NewReader(cache, Key{Name: "hackers"}, 0, func(ctx context.Context) (int, error) {
		return 0, ctx.Err()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap := r.Read(ctx)
	assert.Equal(t, StateEmpty, snap.State)
	assert.NoError(t, snap.Err)
}

func TestReader_SharedFetchCancelledByAnotherReader(t *testing.T) {
	cache := NewCache()
	started := make(chan struct{})
	var calls atomic.Int32
	r := NewReader(cache, Key{Name: "sponsors"}, []string{}, func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []string{"Acme"}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancelled := make(chan Snapshot[[]string])
	go func() { cancelled <- r.Read(ctx) }()
	<-started

	live := make(chan Snapshot[[]string])
	go func() { live <- r.Read(context.Background()) }()
	// give the second reader time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	cancel()

	<-cancelled
	snap := <-live
	assert.Equal(t, StateReady, snap.State)
	assert.NoError(t, snap.Err)
	assert.Equal(t, []string{"Acme"}, snap.Data)
	assert.Equal(t, StateReady, cache.State(r.Key()))
}

func TestReader_DiscardsFetchSupersededByInvalidation(t *testing.T) {
	cache := NewCache()
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	r := NewReader(cache, Key{Name: "team-members"}, "", func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return "before write", nil
		}
		return "after write", nil
	})

	done := make(chan Snapshot[string])
	go func() { done <- r.Read(context.Background()) }()

	<-started
	assert.True(t, r.Peek().Loading())
	cache.Invalidate("team-members")
	close(release)

	snap := <-done
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, "after write", snap.Data, "the pre-invalidation answer must not win")
	assert.EqualValues(t, 2, calls.Load())
}

func TestCache_InvalidateCoversItemKeys(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()
	list, _ := countingReader(cache, "sponsors", "list")
	item := NewReader(cache, Key{Name: "sponsors", ID: "1"}, "", func(ctx context.Context) (string, error) {
		return "item", nil
	})
	other, _ := countingReader(cache, "partners", "p")

	list.Read(ctx)
	item.Read(ctx)
	other.Read(ctx)

	cache.Invalidate("sponsors")
	assert.Equal(t, StateStale, cache.State(list.Key()))
	assert.Equal(t, StateStale, cache.State(item.Key()))
	assert.Equal(t, StateReady, cache.State(other.Key()), "other keys are untouched")

	cache.Reset()
	assert.Equal(t, StateEmpty, cache.State(other.Key()))
}

func TestCache_ConcurrentReadsAndInvalidations(t *testing.T) {
	cache := NewCache()
	var version atomic.Int32
	r := NewReader(cache, Key{Name: "hackers"}, int32(0), func(ctx context.Context) (int32, error) {
		return version.Load(), nil
	})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Read(ctx)
		}()
		go func() {
			defer wg.Done()
			version.Add(1)
			cache.Invalidate("hackers")
		}()
	}
	wg.Wait()

	snap := r.Read(ctx)
	require.Equal(t, StateReady, snap.State)
	assert.Equal(t, int32(20), snap.Data, "after the last invalidation the next read sees the last write")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "stale", StateStale.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "state(9)", State(9).String())
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "sponsors", Key{Name: "sponsors"}.String())
	assert.Equal(t, "sponsors/42", Key{Name: "sponsors", ID: "42"}.String())
}
