package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/hrconsole/internal/api"
	"github.com/wolfeidau/hrconsole/internal/session"
)

func newAuthenticator(t *testing.T, handler http.HandlerFunc) (*Authenticator, *session.Store) {
	t.Helper()

	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)

	client := api.NewClient(api.Config{BaseURL: backend.URL, Timeout: time.Second}, nil)
	return New(client, store), store
}

func TestAuthenticator_Login(t *testing.T) {
	t.Run("persists session on success", func(t *testing.T) {
		authn, store := newAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"user":{"id":1,"nom":"A","email":"a@b.com","role":"EMPLOYE"},"token":"T"}`))
		})

		sess, err := authn.Login(context.Background(), "a@b.com", "x")
		require.NoError(t, err)

		assert.Equal(t, session.RoleEmploye, sess.Role)
		assert.Equal(t, "T", sess.Token)

		stored, ok := store.Load()
		require.True(t, ok)
		assert.Equal(t, sess, stored)
		assert.True(t, authn.IsAuthenticated())
	})

	t.Run("rejected credentials leave store untouched", func(t *testing.T) {
		authn, store := newAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"message":"Email ou mot de passe incorrect"}`))
		})

		_, err := authn.Login(context.Background(), "a@b.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Contains(t, err.Error(), "Email ou mot de passe incorrect")

		_, ok := store.Load()
		assert.False(t, ok)
		assert.False(t, authn.IsAuthenticated())
	})

	t.Run("missing identity fields is a failure not a partial session", func(t *testing.T) {
		authn, store := newAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"user":{"id":1,"email":"a@b.com"},"token":"T"}`))
		})

		_, err := authn.Login(context.Background(), "a@b.com", "x")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, ok := store.Load()
		assert.False(t, ok)
	})

	t.Run("missing token is a failure", func(t *testing.T) {
		authn, store := newAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"user":{"id":1,"nom":"A","email":"a@b.com","role":"EMPLOYE"}}`))
		})

		_, err := authn.Login(context.Background(), "a@b.com", "x")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, ok := store.Load()
		assert.False(t, ok)
	})

	t.Run("unknown role is a failure", func(t *testing.T) {
		authn, store := newAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"user":{"id":1,"nom":"A","email":"a@b.com","role":"SUPERUSER"},"token":"T"}`))
		})

		_, err := authn.Login(context.Background(), "a@b.com", "x")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, ok := store.Load()
		assert.False(t, ok)
	})

	t.Run("unreachable backend reports connection error", func(t *testing.T) {
		store, err := session.NewStore(t.TempDir())
		require.NoError(t, err)

		client := api.NewClient(api.Config{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil)
		authn := New(client, store)

		_, err = authn.Login(context.Background(), "a@b.com", "x")
		require.ErrorIs(t, err, ErrConnection)

		_, ok := store.Load()
		assert.False(t, ok)
	})
}

func TestAuthenticator_Logout(t *testing.T) {
	authn, store := newAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"user":{"id":1,"nom":"A","email":"a@b.com","role":"EMPLOYE"},"token":"T"}`))
	})

	_, err := authn.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.True(t, authn.IsAuthenticated())

	// Logout is idempotent regardless of how many times it runs.
	authn.Logout()
	authn.Logout()
	authn.Logout()

	assert.False(t, authn.IsAuthenticated())
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestPeekToken(t *testing.T) {
	t.Run("decodes registered claims", func(t *testing.T) {
		now := time.Now().Truncate(time.Second)
		claims := jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "hr-backend",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		info, ok := PeekToken(token)
		require.True(t, ok)
		assert.Equal(t, "1", info.Subject)
		assert.Equal(t, "hr-backend", info.Issuer)
		assert.Equal(t, now.Add(time.Hour).Unix(), info.ExpiresAt.Unix())
	})

	t.Run("opaque token is not an error", func(t *testing.T) {
		_, ok := PeekToken("not-a-jwt")
		assert.False(t, ok)
	})
}
