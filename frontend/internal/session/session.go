// Package session holds the organizer's bearer token for the lifetime of the
// process and mirrors it into durable storage so it survives a restart.
package session

import (
	"fmt"
	"sync"

	"github.com/aribt/hackathon-cms/shared/logger"
)

// Store is durable storage for a single token.
type Store interface {
	// Load returns "" when nothing is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Session is the only state shared across backend requests: read before
// every request, written by a successful login, cleared by logout or a 401.
type Session struct {
	mu    sync.RWMutex
	token string
	store Store
}

// New restores the session from store.
func New(store Store) (*Session, error) {
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if token != "" {
		logger.Log.Info("restored session from storage", "component", "session")
	}
	return &Session{token: token, store: store}, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Set keeps token in memory and persists it. The in-memory value is updated
// even when persisting fails.
func (s *Session) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	return nil
}

func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
