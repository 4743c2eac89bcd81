package access

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/hrconsole/internal/session"
)

// State classifies a navigation attempt.
type State int

const (
	// StateUnauthenticated means no complete session is stored.
	StateUnauthenticated State = iota
	// StateInvalidRole means a session exists but its role is outside the
	// enumerated set. The session has been terminated by the time callers
	// see this.
	StateInvalidRole
	// StateAuthenticated means a complete session with a valid role exists.
	StateAuthenticated
)

// Decision is the outcome of guarding one navigation attempt. Allowed means
// the requested view may render; otherwise RedirectTo names the view to show
// instead.
type Decision struct {
	State      State
	Allowed    bool
	RedirectTo string
}

// Deauthorizer terminates the session when the controller finds tampered
// state. Satisfied by *auth.Authenticator.
type Deauthorizer interface {
	Logout()
}

// Controller gates every navigable view by authentication state and role.
// It never renders a view the current role is not permitted to reach;
// forbidden requests land on the role's own dashboard rather than an error
// page, so restricted views are never confirmed to exist.
type Controller struct {
	store  *session.Store
	deauth Deauthorizer
	routes map[string]Route
}

// NewController builds a controller over the given route table.
func NewController(store *session.Store, deauth Deauthorizer, routes []Route) *Controller {
	table := make(map[string]Route, len(routes))
	for _, r := range routes {
		table[r.Path] = r
	}
	return &Controller{store: store, deauth: deauth, routes: table}
}

// Check guards a single navigation attempt to path.
func (c *Controller) Check(path string) Decision {
	route, known := c.routes[path]

	if known && route.Public {
		return Decision{State: StateUnauthenticated, Allowed: true}
	}

	sess, ok := c.store.Load()
	if !ok {
		log.Debug().Str("path", path).Msg("no session, redirecting to login")
		return Decision{State: StateUnauthenticated, RedirectTo: PathLogin}
	}

	// A role outside the enumerated set cannot be mapped to any permitted
	// path. Treat it exactly like no session at all, after tearing the
	// session down.
	if !sess.Role.Valid() {
		log.Warn().Str("role", string(sess.Role)).Msg("invalid role in stored session, forcing logout")
		c.deauth.Logout()
		return Decision{State: StateInvalidRole, RedirectTo: PathLogin}
	}

	if !known {
		log.Debug().Str("path", path).Msg("unknown view, redirecting to role home")
		return Decision{State: StateAuthenticated, RedirectTo: HomePath(sess.Role)}
	}

	if len(route.AllowedRoles) > 0 && !slices.Contains(route.AllowedRoles, sess.Role) {
		log.Debug().
			Str("path", path).
			Str("role", string(sess.Role)).
			Msg("role not permitted, redirecting to role home")
		return Decision{State: StateAuthenticated, RedirectTo: HomePath(sess.Role)}
	}

	return Decision{State: StateAuthenticated, Allowed: true}
}
