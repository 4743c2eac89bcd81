package commands

import (
	"fmt"

	"github.com/wolfeidau/hrconsole/internal/access"
	"github.com/wolfeidau/hrconsole/internal/api"
	"github.com/wolfeidau/hrconsole/internal/auth"
	"github.com/wolfeidau/hrconsole/internal/config"
	"github.com/wolfeidau/hrconsole/internal/gateway"
	"github.com/wolfeidau/hrconsole/internal/router"
	"github.com/wolfeidau/hrconsole/internal/session"
)

// sessionExpiredNotice is the one-time message shown after a forced logout.
const sessionExpiredNotice = "Session expired. Please log in again."

type Globals struct {
	Debug      bool
	Version    string
	ConfigPath string
	ServerURL  string
	SessionDir string
}

// app is the wired client stack shared by all commands.
type app struct {
	cfg    config.Config
	store  *session.Store
	client *api.Client
	authn  *auth.Authenticator
	router *router.Router
}

// buildApp assembles the session store, gateway transport, API client,
// authenticator, access controller and router from config and flags. Flags
// override the config file.
func buildApp(globals *Globals) (*app, error) {
	path := globals.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if globals.ServerURL != "" {
		cfg.ServerURL = globals.ServerURL
	}
	if globals.SessionDir != "" {
		cfg.SessionDir = globals.SessionDir
	}

	store, err := session.NewStore(cfg.SessionDir)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, store: store}

	transport := &gateway.Transport{
		Base:  gateway.NewCachingTransport(nil, cfg.CacheDir),
		Store: store,
		OnAuthReject: func() {
			a.router.ForceLogin(sessionExpiredNotice)
		},
	}

	a.client = api.NewClient(api.Config{
		BaseURL: cfg.ServerURL,
		Timeout: cfg.RequestTimeout,
	}, transport)
	a.authn = auth.New(a.client, store)

	ctrl := access.NewController(store, a.authn, access.DefaultRoutes())
	a.router = router.New(ctrl)

	// A one-shot command starts on whatever view the stored session allows.
	if sess, ok := store.Load(); ok {
		a.router.Navigate(access.HomePath(sess.Role))
	}

	return a, nil
}

// printNotice surfaces any pending one-time notice (e.g. session expired).
func (a *app) printNotice() {
	if n := a.router.Notice(); n != "" {
		fmt.Println(n)
	}
}
