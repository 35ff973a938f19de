// Package api implements the authenticated request gateway: every outbound
// call to the fleet API goes through it. The gateway attaches the bearer
// token when one exists and reacts to authorization failures by tearing down
// the session, independent of which caller issued the request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleetcli/internal/logging"
	"fleetcli/internal/session"
)

type Gateway struct {
	baseURL string
	client  *http.Client
	store   *session.Store
	log     logging.Logger

	mu             sync.Mutex
	onUnauthorized func()
}

// NewGateway builds a gateway talking to baseURL. A zero timeout disables
// the client-side deadline (individual calls can still carry one via ctx).
func NewGateway(baseURL string, timeout time.Duration, store *session.Store, log logging.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		store:   store,
		log:     log,
	}
}

// OnUnauthorized registers the single subscriber notified when an
// authorization failure invalidated the session. The application shell uses
// it to fall back to the login screen; the gateway itself performs no
// navigation.
func (g *Gateway) OnUnauthorized(fn func()) {
	g.mu.Lock()
	g.onUnauthorized = fn
	g.mu.Unlock()
}

// errorBody is the shape the API uses for 4xx rejections. Both fields are
// optional; an empty body degrades to a generic message.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Do issues one JSON request. body is marshalled when non-nil; the response
// is decoded into out when out is non-nil and the server sent content.
//
// Error mapping: transport failures wrap ErrUnavailable; a 401 clears the
// session and returns ErrUnauthorized; other 4xx become *ValidationError and
// 5xx *ServerError, both passed through for local handling.
func (g *Gateway) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	// Absence of a token is not an error here: the request goes out
	// unauthenticated and the server decides.
	token := g.store.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := g.log.With("method", method, "path", path, "request_id", requestID)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error(ctx, "request failed", "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request finished", "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Expiry only applies to a token the server just refused. A 401 on
		// an unauthenticated call (a login with bad credentials) is an
		// ordinary rejection, not a lost session.
		if token == "" {
			eb := decodeErrorBody(resp.Body)
			msg := eb.Message
			if msg == "" {
				msg = "invalid credentials"
			}
			return &ValidationError{Status: resp.StatusCode, Message: msg, Fields: eb.Errors}
		}
		g.expireSession(ctx)
		return ErrUnauthorized

	case resp.StatusCode >= http.StatusInternalServerError:
		eb := decodeErrorBody(resp.Body)
		return &ServerError{Status: resp.StatusCode, Message: eb.Message}

	case resp.StatusCode >= http.StatusBadRequest:
		eb := decodeErrorBody(resp.Body)
		msg := eb.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &ValidationError{Status: resp.StatusCode, Message: msg, Fields: eb.Errors}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func decodeErrorBody(r io.Reader) errorBody {
	var eb errorBody
	_ = json.NewDecoder(r).Decode(&eb)
	return eb
}

// expireSession clears the session and notifies the subscriber. Clearing is
// idempotent, so concurrent requests that all come back 401 produce exactly
// one notification.
func (g *Gateway) expireSession(ctx context.Context) {
	cleared, err := g.store.Clear(ctx)
	if err != nil {
		g.log.Error(ctx, "failed to clear session after auth failure", "err", err)
	}
	if !cleared {
		return
	}
	g.log.Info(ctx, "session invalidated by server, forcing re-authentication")

	g.mu.Lock()
	fn := g.onUnauthorized
	g.mu.Unlock()
	if fn != nil {
		fn()
	}
}
