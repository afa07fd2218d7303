// Package session holds the current user's credentials and their lifecycle:
// hydrate from persisted storage at startup, save on login, clear on logout
// or authentication expiry. The store is an explicitly constructed,
// injectable dependency rather than package-level mutable state.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Credentials is the authenticated identity returned by the backend on login
type Credentials struct {
	Token     string   `json:"token"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

// FullName returns the display name of the user
func (c *Credentials) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Store holds the active session for the process
type Store struct {
	mu      sync.RWMutex
	creds   *Credentials
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
}

// StoreOption is a functional option for configuring the store
type StoreOption func(*Store)

// WithLogger sets the logger for the store
func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) {
		s.logger = log
	}
}

// withClock overrides the time source, used by tests
func withClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a session store backed by the given storage
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads persisted credentials into memory. Credentials whose token
// has already expired are discarded so the first command does not start with
// a guaranteed 401.
func (s *Store) Hydrate() error {
	creds, err := s.storage.Load()
	if err != nil {
		return err
	}
	if creds == nil {
		return nil
	}
	if expired, exp := s.tokenExpired(creds.Token); expired {
		s.logger.Info("discarding expired session",
			zap.String("email", creds.Email),
			zap.Time("expired_at", exp),
		)
		return s.storage.Clear()
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return nil
}

// Set stores and persists new credentials (login/register success)
func (s *Store) Set(creds *Credentials) error {
	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return s.storage.Save(creds)
}

// Clear wipes the session from memory and storage. It is safe to call when
// no session is active, and it is the gateway's 401 teardown hook.
func (s *Store) Clear() {
	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted session", zap.Error(err))
	}
}

// Current returns the active credentials, or nil when not authenticated
func (s *Store) Current() *Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Token returns the bearer token, or empty when not authenticated.
// Implements the gateway's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.Token
}

// IsAuthenticated reports whether a session is active
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// HasRole reports whether the current user carries the given role
func (s *Store) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return false
	}
	for _, r := range s.creds.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// tokenExpired inspects the token's registered claims without verifying the
// signature (verification is the backend's job). Tokens that cannot be
// parsed or carry no expiry are kept; the backend remains the authority.
func (s *Store) tokenExpired(token string) (bool, time.Time) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false, time.Time{}
	}
	if claims.ExpiresAt == nil {
		return false, time.Time{}
	}
	exp := claims.ExpiresAt.Time
	return exp.Before(s.now()), exp
}
