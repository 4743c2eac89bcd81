package router

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/hrconsole/internal/access"
)

// maxRedirectHops bounds guard-driven redirects. Two hops cover the worst
// case (restricted view -> role home -> render); anything deeper means a
// misconfigured route table, and we fail closed to the login view.
const maxRedirectHops = 4

// Router owns the current view and applies access control decisions to
// every navigation. It is the single redirect target for the gateway's 401
// handling and the inactivity monitor's forced logout, both of which must
// have finished mutating the session store before calling ForceLogin.
type Router struct {
	ctrl *access.Controller

	mu      sync.Mutex
	current string
	notice  string
}

// New creates a router starting on the login view.
func New(ctrl *access.Controller) *Router {
	return &Router{ctrl: ctrl, current: access.PathLogin}
}

// Current returns the view currently shown.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate attempts to show path, following guard redirects until a view is
// permitted. Returns the view actually rendered; the originally requested
// view is never rendered when the guard denies it.
func (r *Router) Navigate(path string) string {
	for range maxRedirectHops {
		decision := r.ctrl.Check(path)
		if decision.Allowed {
			r.setCurrent(path)
			return path
		}
		log.Debug().
			Str("requested", path).
			Str("redirect", decision.RedirectTo).
			Msg("navigation redirected")
		path = decision.RedirectTo
	}

	log.Warn().Str("path", path).Msg("redirect loop in route table, failing closed to login")
	r.setCurrent(access.PathLogin)
	return access.PathLogin
}

// ForceLogin jumps straight to the login view, recording a one-time notice
// for the user (e.g. "session expired"). Used by system-initiated logouts.
func (r *Router) ForceLogin(notice string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = access.PathLogin
	if notice != "" {
		r.notice = notice
	}
}

// Notice returns the pending user-visible notice and clears it.
func (r *Router) Notice() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.notice
	r.notice = ""
	return n
}

func (r *Router) setCurrent(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = path
}
