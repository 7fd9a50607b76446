package session

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Credentials is the persistent side of the session: opaque save, retrieve
// and delete of the one stored secret. Implemented by the keyring package.
type Credentials interface {
	Save(token string) error
	Retrieve() (string, error)
	Clear() error
}

// Store holds the process-wide authenticated identity and bearer credential.
// It is read by every API call and mutated only by login, registration,
// logout, restore and session-expiry handling.
type Store struct {
	mu          sync.RWMutex
	user        *User
	token       string
	credentials Credentials
}

// NewStore creates a session store backed by the given credential storage.
func NewStore(credentials Credentials) *Store {
	return &Store{credentials: credentials}
}

// Token implements hoaapi.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current identity, or nil when logged out.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a session is established.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Set installs a new identity and credential, persisting the token.
func (s *Store) Set(user *User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	if err := s.credentials.Save(token); err != nil {
		// The session still works for this run; only persistence failed.
		log.Warn().Err(err).Msg("Failed to persist session credential")
	}
}

// Clear wipes the in-memory identity and the persisted credential together.
// Both sides go under one lock so no reader can observe a half-cleared
// session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	if err := s.credentials.Clear(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear stored credential")
	}
}

// restoreToken installs just the credential while the identity is being
// revalidated against the server.
func (s *Store) restoreToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// setUser installs the identity after a successful revalidation.
func (s *Store) setUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}
