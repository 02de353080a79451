// Package session holds the current authenticated user and the token it was
// derived from. It is the only place the in-memory session is mutated.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/squarelake/paydesk/pkg/domain"
)

// Backend is the slice of the API client the session store needs.
type Backend interface {
	Me(ctx context.Context) (*domain.Session, error)
	Logout(ctx context.Context) error
}

// Store owns the in-memory session for the life of the program. It is
// created at startup and passed explicitly to whoever needs it; there is no
// package-level singleton.
type Store struct {
	backend Backend
	tokens  TokenStore
	log     *slog.Logger
	reload  func()

	mu      sync.RWMutex
	session *domain.Session
}

// New creates a session store. reload is invoked after logout completes
// local teardown; in production it exits the shell so the process restarts
// clean, and tests inject a recorder.
func New(backend Backend, tokens TokenStore, log *slog.Logger, reload func()) *Store {
	return &Store{backend: backend, tokens: tokens, log: log, reload: reload}
}

// Session returns the current session, or nil when unauthenticated.
func (s *Store) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Set replaces the in-memory session. Pass nil to clear. Only the login
// flow and FetchUserInfo should call this with a non-nil value.
func (s *Store) Set(sess *domain.Session) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
}

// Tokens exposes the underlying token store for the login flow, which must
// persist the token before fetching the session.
func (s *Store) Tokens() TokenStore {
	return s.tokens
}

// HasToken reports whether a token is currently stored.
func (s *Store) HasToken() bool {
	return s.tokens.Token() != ""
}

// FetchUserInfo resolves the session from the stored token. On failure the
// session stays nil and the error is returned for the UI to present; the
// token is left alone here — discarding it is the auth gate's decision.
func (s *Store) FetchUserInfo(ctx context.Context) error {
	me, err := s.backend.Me(ctx)
	if err != nil {
		return fmt.Errorf("session.FetchUserInfo: %w", err)
	}
	s.Set(me)
	return nil
}

// Discard purges the stored token and clears the session together, so no
// state where one exists without the other is observable.
func (s *Store) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tokens.Purge(); err != nil {
		s.log.Warn("token purge failed", "err", err)
	}
	s.session = nil
}

// Logout tears the authenticated state down. The server call is best
// effort: its failure is logged, never surfaced, because logout must always
// succeed locally. The injected reload then resets all client state.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		s.log.Warn("server logout failed", "err", err)
	}
	s.Discard()
	s.reload()
}
