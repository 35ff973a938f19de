// Package session keeps the client's authentication state: an opaque bearer
// token plus the cached user profile, persisted in a local sqlite database so
// a restart does not require a network round trip.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"fleetcli/internal/logging"
	"fleetcli/internal/models"
)

// Storage keys. Fixed so an older client build keeps reading the same slots.
const (
	keyToken = "token"
	keyUser  = "user"
)

// ErrInvalidSession is returned when a caller tries to persist a session
// missing either half of the token/profile pair.
var ErrInvalidSession = errors.New("session missing token or user")

// Store owns the session pair. It is safe for concurrent use: in-flight
// requests read the token while the UI goroutine logs in or out.
type Store struct {
	mu   sync.RWMutex
	repo Repository
	cur  *models.Session
	log  logging.Logger
}

// NewStore restores the persisted session, if any. A half-present pair
// (token without profile or vice versa) is treated as absent and wiped, which
// keeps the token/user invariant across torn writes by older builds.
func NewStore(ctx context.Context, repo Repository, log logging.Logger) (*Store, error) {
	s := &Store{repo: repo, log: log}

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	rawUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}

	if len(token) == 0 || len(rawUser) == 0 {
		if len(token) != 0 || len(rawUser) != 0 {
			log.Warn(ctx, "incomplete persisted session, discarding")
			if err := repo.Clear(ctx); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		log.Warn(ctx, "unreadable persisted profile, discarding", "err", err)
		if err := repo.Clear(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.cur = &models.Session{Token: string(token), User: user}
	return s, nil
}

// Save persists the session and makes it current. Token and profile are
// written in one transaction.
func (s *Store) Save(ctx context.Context, sess models.Session) error {
	if !sess.Valid() {
		return ErrInvalidSession
	}

	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("marshal user profile: %w", err)
	}
	if err := s.repo.SetMany(ctx, map[string][]byte{
		keyToken: []byte(sess.Token),
		keyUser:  rawUser,
	}); err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = &sess
	s.mu.Unlock()
	return nil
}

// Clear drops the session. It is idempotent; the first call for a live
// session returns true, every later call returns false. The in-memory state
// is cleared unconditionally even if wiping the database fails, so the caller
// is logged out either way.
func (s *Store) Clear(ctx context.Context) (bool, error) {
	s.mu.Lock()
	had := s.cur != nil
	s.cur = nil
	s.mu.Unlock()

	if !had {
		return false, nil
	}
	if err := s.repo.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to wipe persisted session", "err", err)
		return true, err
	}
	return true, nil
}

// Current returns a copy of the session, if one exists.
func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return models.Session{}, false
	}
	return *s.cur, true
}

// Token returns the bearer token or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.Token
}

// IsAuthenticated reports whether a token is present. Token validity is
// discovered lazily on the first gated request, not here.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}
