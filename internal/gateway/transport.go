package gateway

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/hrconsole/internal/session"
)

// Transport is an http.RoundTripper that attaches the stored access token to
// every outbound request and uniformly reacts to authentication rejections
// from the backend. Call sites never handle 401 themselves: when one arrives
// the session store is cleared in full and the rejection hook runs, exactly
// once per live session even when several rejected responses land together.
type Transport struct {
	// Base is the underlying transport. nil means http.DefaultTransport.
	Base http.RoundTripper

	// Store supplies the bearer token and is cleared on rejection.
	Store *session.Store

	// OnAuthReject is invoked after the store has been cleared, typically to
	// force navigation back to the login view. May be nil.
	OnAuthReject func()

	mu sync.Mutex
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())

	if tok := t.Store.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.New().String())
	}

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.handleRejection()
	}

	return resp, nil
}

// handleRejection clears the session and fires the rejection hook. The
// clear is fully persisted before the hook runs, so a redirect target that
// re-reads the store never sees the stale session. Once the store is empty
// later rejections are no-ops, which collapses concurrent 401s into a
// single clear+redirect.
func (t *Transport) handleRejection() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.Store.Load(); !ok {
		return
	}

	if err := t.Store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear session after auth rejection")
		return
	}

	log.Info().Msg("backend rejected credentials, session cleared")

	if t.OnAuthReject != nil {
		t.OnAuthReject()
	}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
