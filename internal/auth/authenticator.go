package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/hrconsole/internal/api"
	"github.com/wolfeidau/hrconsole/internal/session"
)

// Sentinel errors
var (
	// ErrInvalidCredentials is surfaced to the user when the backend rejects
	// the login, or when it accepts it but returns an unusable identity.
	ErrInvalidCredentials = errors.New("auth: incorrect email or password")

	// ErrConnection is surfaced when the login endpoint cannot be reached.
	ErrConnection = errors.New("auth: connection error")
)

// Authenticator is the only component that creates or destroys the
// authoritative session state. Everything else reads the store or clears it
// through Logout.
type Authenticator struct {
	client *api.Client
	store  *session.Store
}

// New creates an authenticator backed by the given API client and store.
func New(client *api.Client, store *session.Store) *Authenticator {
	return &Authenticator{client: client, store: store}
}

// Login authenticates against the backend. On success the session is
// persisted and returned. On any failure the store is left untouched and the
// returned error wraps either ErrInvalidCredentials or ErrConnection.
func (a *Authenticator) Login(ctx context.Context, email, password string) (session.Session, error) {
	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		log.Debug().Err(err).Msg("login transport failure")
		return session.Session{}, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if !resp.Success || resp.User == nil || resp.Token == "" {
		if resp.Message != "" {
			return session.Session{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, resp.Message)
		}
		return session.Session{}, ErrInvalidCredentials
	}

	sess := session.Session{
		UserID:   resp.User.ID,
		Name:     resp.User.Name,
		Email:    resp.User.Email,
		Role:     session.Role(resp.User.Role),
		PhotoURL: resp.User.PhotoURL,
		Token:    resp.Token,
	}

	// A response missing required identity fields is a failure, never a
	// partial session.
	if !sess.Complete() || !sess.Role.Valid() {
		log.Debug().
			Int("userID", sess.UserID).
			Str("role", string(sess.Role)).
			Msg("login response missing or invalid identity fields")
		return session.Session{}, ErrInvalidCredentials
	}

	if err := a.store.Save(sess); err != nil {
		return session.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	log.Info().
		Str("email", sess.Email).
		Str("role", string(sess.Role)).
		Msg("login succeeded")

	return sess, nil
}

// Logout clears the stored session. It is local-only, idempotent, and
// always succeeds barring filesystem failure.
func (a *Authenticator) Logout() {
	if err := a.store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear session on logout")
	}
}

// IsAuthenticated reports whether the store currently holds a complete
// session.
func (a *Authenticator) IsAuthenticated() bool {
	_, ok := a.store.Load()
	return ok
}
