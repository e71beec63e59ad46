// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/guard"
	"github.com/taibuivan/campusshare/internal/page"
	"github.com/taibuivan/campusshare/internal/platform/apiclient"
	"github.com/taibuivan/campusshare/internal/platform/config"
	"github.com/taibuivan/campusshare/internal/platform/ctxutil"
	"github.com/taibuivan/campusshare/internal/platform/redis"
	"github.com/taibuivan/campusshare/internal/platform/tokenstore"
	"github.com/taibuivan/campusshare/internal/session"
)

var (
	errSignedOut = errors.New("not signed in; run `campusshare login` first")
	errNotAdmin  = errors.New("this command requires an administrator account")
)

// app is the composition root shared by every command.
type app struct {
	cfg *config.Config
	log *slog.Logger
	in  io.Reader
	out io.Writer

	session *session.Controller
	deps    page.Deps

	closers []func() error
}

// appOptions overrides wiring for tests.
type appOptions struct {
	store      tokenstore.Store
	httpClient *http.Client
}

/*
newApp wires the token store, the API client, the session controller and the
page dependencies.

Description: The token store is chosen by CAMPUS_TOKEN_STORE. The redis
store verifies connectivity before the first command runs.
*/
func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger, in io.Reader, out io.Writer) (*app, error) {
	return buildApp(ctx, cfg, log, in, out, appOptions{})
}

func buildApp(ctx context.Context, cfg *config.Config, log *slog.Logger, in io.Reader, out io.Writer, opts appOptions) (*app, error) {
	a := &app{cfg: cfg, log: log, in: in, out: out}

	store := opts.store
	if store == nil {
		opened, err := a.openTokenStore(ctx)
		if err != nil {
			return nil, err
		}
		store = opened
	}

	api, err := apiclient.New(apiclient.Options{
		BaseURL:    cfg.APIURL,
		Timeout:    cfg.RequestTimeout,
		RateLimit:  cfg.RateLimitRPS,
		Burst:      cfg.RateLimitBurst,
		HTTPClient: opts.httpClient,
		Logger:     log,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.session = session.NewController(auth.NewService(api), store, session.Options{
		Navigator: session.NavigatorFunc(a.navigate),
		Logger:    log,
	})
	a.session.Attach(api)
	a.deps = page.NewDeps(api, a.session)
	return a, nil
}

// openTokenStore builds the durable token store named by the configuration.
func (a *app) openTokenStore(ctx context.Context) (tokenstore.Store, error) {
	switch a.cfg.TokenStore {
	case config.TokenStoreRedis:
		client, err := redis.Connect(ctx, a.cfg.RedisURL, a.log)
		if err != nil {
			return nil, fmt.Errorf("token store: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return tokenstore.NewRedisStore(client, a.cfg.TokenKey), nil
	case config.TokenStoreMemory:
		return tokenstore.NewMemoryStore(""), nil
	default:
		return tokenstore.NewFileStore(a.cfg.TokenFile), nil
	}
}

// navigate reacts to session-driven redirects. In a terminal the only one is
// the login screen.
func (a *app) navigate(location string) {
	if location == session.LoginLocation {
		a.log.Debug("navigate", slog.String("location", location))
	}
}

// Close releases connections opened during wiring.
func (a *app) Close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			a.log.Warn("close_failed", slog.Any("error", err))
		}
	}
	a.closers = nil
}

// # Command Hooks

// restore resolves the persisted session before any command runs.
func (a *app) restore(cmd *cobra.Command, _ []string) error {
	ctx := ctxutil.WithLogger(cmd.Context(), a.log)
	cmd.SetContext(ctx)
	a.session.Restore(ctx)
	return nil
}

// require returns a hook that lets the command run only if g allows it.
func (a *app) require(g guard.Guard) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.restore(cmd, args); err != nil {
			return err
		}

		decision, err := guard.Wait(cmd.Context(), a.session, g)
		if err != nil {
			return err
		}
		if decision.Allowed() {
			return nil
		}
		if decision.Location == guard.LoginLocation {
			return errSignedOut
		}
		return errNotAdmin
	}
}
