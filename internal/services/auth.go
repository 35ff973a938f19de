// Package services contains the typed resource clients of the fleet API.
// They are thin translations of domain operations into REST calls through
// the authenticated gateway; no caching or validation happens here.
package services

import (
	"context"
	"fmt"
	"net/http"

	"fleetcli/internal/api"
	"fleetcli/internal/logging"
	"fleetcli/internal/models"
	"fleetcli/internal/session"
)

// AuthService handles login, registration and logout against the fleet API
// and keeps the session store in sync.
type AuthService struct {
	gw    *api.Gateway
	store *session.Store
	log   logging.Logger
}

func NewAuthService(gw *api.Gateway, store *session.Store, log logging.Logger) *AuthService {
	return &AuthService{gw: gw, store: store, log: log}
}

// Login submits credentials and persists the returned session. Rejected
// credentials propagate as the gateway's error; nothing is retried.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	var resp models.AuthResponse
	if err := s.gw.Do(ctx, http.MethodPost, "/api/auth/login", nil, creds, &resp); err != nil {
		return models.Session{}, err
	}

	sess := resp.Session()
	if err := s.store.Save(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("persist session: %w", err)
	}
	s.log.Info(ctx, "logged in", "user", sess.User.Username)
	return sess, nil
}

// Register creates an account and, like Login, persists the session the
// server answers with.
func (s *AuthService) Register(ctx context.Context, reg models.Registration) (models.Session, error) {
	var resp models.AuthResponse
	if err := s.gw.Do(ctx, http.MethodPost, "/api/auth/register", nil, reg, &resp); err != nil {
		return models.Session{}, err
	}

	sess := resp.Session()
	if err := s.store.Save(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("persist session: %w", err)
	}
	s.log.Info(ctx, "registered", "user", sess.User.Username)
	return sess, nil
}

// Logout clears the local session unconditionally. The consumed API has no
// server-side logout to notify, and even if clearing the persisted copy
// fails the caller ends up logged out, so Logout never fails.
func (s *AuthService) Logout(ctx context.Context) {
	if _, err := s.store.Clear(ctx); err != nil {
		s.log.Error(ctx, "logout: failed to wipe persisted session", "err", err)
	}
	s.log.Info(ctx, "logged out")
}

// CurrentSession reads the restored session without touching the network.
func (s *AuthService) CurrentSession() (models.Session, bool) {
	return s.store.Current()
}

// IsAuthenticated reports token presence only; validity is discovered on the
// first gated request.
func (s *AuthService) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}
