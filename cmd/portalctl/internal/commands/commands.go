package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/munidigital/portalctl/internal/api"
	"github.com/munidigital/portalctl/internal/authz"
	"github.com/munidigital/portalctl/internal/cache"
	"github.com/munidigital/portalctl/internal/config"
	"github.com/munidigital/portalctl/internal/logger"
	"github.com/munidigital/portalctl/internal/session"
	"github.com/munidigital/portalctl/internal/terms"
)

type Globals struct {
	Debug   bool
	Version string
}

// clientFlags are the connection flags every command carries.
type clientFlags struct {
	Server string `help:"Portal server URL" env:"PORTAL_SERVER" default:""`
	Config string `help:"Path to config file" env:"PORTALCTL_CONFIG" default:""`
}

// app wires the session store, the resource clients, the gate, and the
// cached terms service together for one command invocation.
type app struct {
	cfg      config.Config
	store    *session.Store
	sessions *session.Manager
	client   *api.Client
	gate     *authz.Gate
	terms    *terms.Service
}

func newApp(globals *Globals, flags clientFlags) (*app, error) {
	l := logger.Setup(globals.Debug)
	log.Logger = l

	cfg, err := config.Load(flags.Config)
	if err != nil {
		return nil, err
	}
	if flags.Server != "" {
		cfg.ServerURL = flags.Server
	}

	store, err := session.NewStore(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.ServerURL,
		Timeout: time.Duration(cfg.Timeout),
		Tokens:  store,
		Logger:  l,
	})
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(store, client)
	termsSvc := terms.New(client.Terms, cache.NewDisk(cfg.CacheDir), sessions)

	return &app{
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		client:   client,
		gate:     authz.New(store),
		terms:    termsSvc,
	}, nil
}

// requireRoute resolves a portal route through the gate before the command
// touches the backend. Unreachable routes read as not found, admin or not.
func (a *app) requireRoute(path string) error {
	switch a.gate.Resolve(path) {
	case authz.OutcomeAllowed:
		return nil
	default:
		return fmt.Errorf("%s: not found", path)
	}
}

// surface is the command-level error boundary: an expired session forces a
// logout and a clear message, everything else propagates.
func (a *app) surface(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, api.ErrSessionExpired) {
		if logoutErr := a.sessions.Logout(); logoutErr != nil {
			log.Warn().Err(logoutErr).Msg("failed to clear expired session")
		}
		return fmt.Errorf("session expired, log in again")
	}

	var verr *api.ValidationError
	if errors.As(err, &verr) {
		for field, msg := range verr.Fields {
			fmt.Printf("  %s: %s\n", field, msg)
		}
	}

	return err
}
