// Package query binds backend resources to a keyed in-process cache: readers
// fetch on demand, mutations invalidate the key they wrote to.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/aribt/hackathon-cms/shared/logger"
	"github.com/aribt/hackathon-cms/shared/middleware/metrics"
	"golang.org/x/sync/singleflight"
)

// State of one cache entry.
//
//	EMPTY -> LOADING -> READY
//	READY -> STALE -> LOADING -> READY
//	LOADING -> ERROR, recovered by the next successful fetch
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StateStale
	StateError
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateStale:
		return "stale"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Key addresses one entry: a cache key, plus an id for single-record reads.
type Key struct {
	Name string
	ID   domain.ID
}

func (k Key) String() string {
	if k.ID.IsZero() {
		return k.Name
	}
	return k.Name + "/" + k.ID.String()
}

type entry struct {
	state State
	data  any // nil until the first successful fetch
	err   error
	// generation moves on every invalidation; a fetch started under an
	// older generation must not overwrite the entry.
	generation uint64
	updatedAt  time.Time
}

// Cache holds the last completed fetch per key.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
	log     *slog.Logger
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		log:     logger.Component("query"),
	}
}

// Invalidate marks every entry stored under name (lists and single records)
// stale. In-flight fetches for those entries will be discarded.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	n := 0
	for k, e := range c.entries {
		if k.Name != name {
			continue
		}
		e.generation++
		if e.state != StateEmpty {
			e.state = StateStale
		}
		n++
	}
	c.mu.Unlock()

	metrics.ObserveInvalidation(name)
	c.log.Debug("invalidated cache key", "key", name, "entries", n)
}

// Reset forgets everything, e.g. when the organizer logs out.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[Key]*entry)
	c.mu.Unlock()
}

// State reports the state of key without fetching.
func (c *Cache) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.state
	}
	return StateEmpty
}

// begin moves key to LOADING unless it is READY (and force is false). It
// returns the generation the fetch belongs to.
func (c *Cache) begin(key Key, force bool) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	if e.state == StateReady && !force {
		return e.generation, false
	}
	if force && e.state != StateLoading {
		// a forced refetch supersedes whatever is in flight
		e.generation++
	}
	e.state = StateLoading
	return e.generation, true
}

// complete stores the outcome of a fetch started under gen. It reports
// false when the entry has moved on and the outcome was dropped.
func (c *Cache) complete(key Key, gen uint64, data any, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.generation != gen {
		c.log.Debug("discarding superseded fetch", "key", key.String(), "generation", gen)
		return false
	}

	switch {
	case err == nil:
		e.data = data
		e.err = nil
		e.state = StateReady
		e.updatedAt = time.Now()
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		// the reader went away; leave the entry for the next one
		if e.data == nil {
			e.state = StateEmpty
		} else {
			e.state = StateStale
		}
	default:
		e.err = err
		e.state = StateError
	}
	return true
}

func (c *Cache) lookup(key Key) (entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return entry{}, false
	}
	return *e, true
}

func flightKey(key Key, gen uint64) string {
	return fmt.Sprintf("%s@%d", key.String(), gen)
}
