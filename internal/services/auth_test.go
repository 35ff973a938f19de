package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetcli/internal/api"
	"fleetcli/internal/logging"
	"fleetcli/internal/models"
	"fleetcli/internal/session"
)

type memRepo struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{m: map[string][]byte{}} }

func (r *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[key], nil
}

func (r *memRepo) SetMany(_ context.Context, kv map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range kv {
		r.m[k] = v
	}
	return nil
}

func (r *memRepo) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = map[string][]byte{}
	return nil
}

type fixture struct {
	store *session.Store
	gw    *api.Gateway
}

func newFixture(t *testing.T, baseURL string) fixture {
	t.Helper()
	store, err := session.NewStore(context.Background(), newMemRepo(), logging.NewNopLogger())
	require.NoError(t, err)
	gw := api.NewGateway(baseURL, time.Second, store, logging.NewNopLogger())
	return fixture{store: store, gw: gw}
}

func authBody() string {
	return `{"token":"tok-1","username":"alice","email":"alice@example.org",` +
		`"firstName":"Alice","lastName":"Anders","role":"FLEET_MANAGER"}`
}

func TestAuthService_LoginPersistsSession(t *testing.T) {
	var gotCreds models.Credentials
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreds))
		w.Write([]byte(authBody()))
	}))
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	auth := NewAuthService(fx.gw, fx.store, logging.NewNopLogger())

	sess, err := auth.Login(context.Background(), models.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, models.Credentials{Username: "alice", Password: "pw"}, gotCreds)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, "alice", sess.User.Username)
	assert.True(t, auth.IsAuthenticated())

	stored, ok := auth.CurrentSession()
	require.True(t, ok)
	assert.Equal(t, sess, stored)
}

func TestAuthService_LoginRejectedPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	auth := NewAuthService(fx.gw, fx.store, logging.NewNopLogger())

	_, err := auth.Login(context.Background(), models.Credentials{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.False(t, auth.IsAuthenticated())
}

func TestAuthService_RegisterPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		w.Write([]byte(authBody()))
	}))
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	auth := NewAuthService(fx.gw, fx.store, logging.NewNopLogger())

	sess, err := auth.Register(context.Background(), models.Registration{
		Username: "alice", Email: "alice@example.org", Password: "pw",
	})
	require.NoError(t, err)
	assert.True(t, sess.Valid())
	assert.True(t, auth.IsAuthenticated())
}

func TestAuthService_LogoutNeverFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(authBody()))
	}))
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	auth := NewAuthService(fx.gw, fx.store, logging.NewNopLogger())

	_, err := auth.Login(context.Background(), models.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	auth.Logout(context.Background())
	assert.False(t, auth.IsAuthenticated())
	_, ok := auth.CurrentSession()
	assert.False(t, ok)

	// Logging out twice is harmless.
	auth.Logout(context.Background())
	assert.False(t, auth.IsAuthenticated())
}
