// internal/session/store.go
//
// The session store is the only cross-component mutable shared state in the
// client. It is populated once on boot, replaced by login/logout, and read
// by the route guard on every navigation. All mutation goes through the
// exported setters.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yourusername/questify/internal/api"
)

// State is the guard-visible lifecycle of the session.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Store holds the current identity. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     State
	identity  *api.Identity
	expiresAt time.Time
}

// NewStore starts in the loading state, pending the initial identity fetch.
func NewStore() *Store {
	return &Store{state: StateLoading}
}

// Init performs the silent identity fetch at boot. A failure of any kind
// lands in the unauthenticated state; the error itself is not surfaced.
func (s *Store) Init(ctx context.Context, auth *api.AuthService) {
	identity, err := auth.Me(ctx)
	if err != nil {
		s.Clear()
		return
	}
	s.SetIdentity(identity)
}

// SetIdentity marks the session authenticated.
func (s *Store) SetIdentity(identity *api.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if identity == nil {
		s.state = StateUnauthenticated
		s.identity = nil
		return
	}
	s.state = StateAuthenticated
	s.identity = identity
}

// SetToken records the access token's expiry. The token is treated as
// opaque for authentication (the cookie jar carries it); only the exp claim
// is read, unverified, to drive the proactive refresh tick and the session
// status line.
func (s *Store) SetToken(accessToken string) {
	if accessToken == "" {
		return
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	s.mu.Lock()
	s.expiresAt = exp.Time
	s.mu.Unlock()
}

// Clear tears the session down (logout, failed boot fetch, failed refresh).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUnauthenticated
	s.identity = nil
	s.expiresAt = time.Time{}
}

// Snapshot returns the current state and identity.
func (s *Store) Snapshot() (State, *api.Identity) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.identity
}

// State returns the current guard state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns the current identity, or nil.
func (s *Store) Identity() *api.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Allowed reports whether the session is authenticated and, when roles are
// given, whether the identity's role is one of them.
func (s *Store) Allowed(roles ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.identity == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if s.identity.Role == role {
			return true
		}
	}
	return false
}

// ExpiresAt returns the access token expiry, zero if unknown.
func (s *Store) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}
