package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// State describes whether a credential is currently held.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Store holds the single bearer credential for the current user profile.
// The token is opaque: it is persisted and forwarded, never inspected.
// An empty token means anonymous.
type Store struct {
	path string

	mu    sync.RWMutex
	token string
	read  bool
}

// NewStore creates a store backed by the file at path. Nothing is read
// until the first access, so a missing file is not an error.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Set persists the credential. Subsequent AuthHeaders calls include it.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	s.token = token
	s.read = true
	return nil
}

// Get returns the persisted credential, or "" when anonymous.
func (s *Store) Get() string {
	s.mu.RLock()
	if s.read {
		defer s.mu.RUnlock()
		return s.token
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.read {
		s.token = s.load()
		s.read = true
	}
	return s.token
}

// Clear removes the credential. It is idempotent: clearing an absent
// token succeeds.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.read = true

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// AuthHeaders returns {} when anonymous, otherwise exactly one
// Authorization entry carrying the bearer credential.
func (s *Store) AuthHeaders() map[string]string {
	token := s.Get()
	if token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// State reports the current session state.
func (s *Store) State() State {
	if s.Get() == "" {
		return StateAnonymous
	}
	return StateAuthenticated
}

func (s *Store) load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// Unreadable token file means anonymous, not a failure
		return ""
	}
	return strings.TrimSpace(string(data))
}
