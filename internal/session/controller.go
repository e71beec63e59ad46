// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session is the single source of truth for who is signed in.

The [Controller] owns the session token and the current [State]. It is built
once by whatever owns the application root and injected into pages and guards;
nothing else mutates the session.

Transitions:

  - Unknown → Authenticated | Anonymous: [Controller.Restore] at startup.
  - Anonymous → Authenticated: [Controller.Login] or [Controller.Register].
  - Authenticated → Anonymous: [Controller.Logout], or [Controller.Invalidate]
    when the backend rejects the token.

Failed logins and registrations never change the state.
*/
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/apiclient"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/platform/constants"
	"github.com/taibuivan/campusshare/internal/platform/sec"
	"github.com/taibuivan/campusshare/internal/platform/tokenstore"
)

// # Dependencies

// Authenticator is the subset of the auth service the controller drives.
type Authenticator interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.Result, error)
	Register(ctx context.Context, reg auth.Registration) (*auth.Result, error)
	Me(ctx context.Context) (*auth.User, error)
	UpdateProfile(ctx context.Context, update auth.ProfileUpdate) (*auth.User, error)
}

// Navigator moves the UI to a location such as "/login".
type Navigator interface {
	Navigate(location string)
}

// NavigatorFunc adapts a function to [Navigator].
type NavigatorFunc func(location string)

// Navigate implements [Navigator].
func (f NavigatorFunc) Navigate(location string) { f(location) }

// LoginLocation is where logout and forced logout send the user.
const LoginLocation = "/login"

// Options tunes a [Controller]. The zero value is usable.
type Options struct {
	Navigator      Navigator
	Logger         *slog.Logger
	RestoreTimeout time.Duration
	Now            func() time.Time
}

// # Controller

// Controller owns the session. It is safe for concurrent use.
//
// The lock is never held across a network call or a callback, so the 401
// hook of the HTTP client can re-enter the controller from any request.
type Controller struct {
	authn   Authenticator
	store   tokenstore.Store
	nav     Navigator
	logger  *slog.Logger
	timeout time.Duration
	now     func() time.Time

	mu          sync.Mutex
	state       State
	token       string
	generation  uint64
	ready       chan struct{}
	readyOnce   sync.Once
	subscribers map[int]func(State)
	nextID      int
}

// NewController builds a controller in the Unknown state.
func NewController(authn Authenticator, store tokenstore.Store, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	nav := opts.Navigator
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	timeout := opts.RestoreTimeout
	if timeout <= 0 {
		timeout = constants.SessionRestoreTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Controller{
		authn:       authn,
		store:       store,
		nav:         nav,
		logger:      logger,
		timeout:     timeout,
		now:         now,
		state:       Unknown(),
		ready:       make(chan struct{}),
		subscribers: make(map[int]func(State)),
	}
}

// Attach makes client send the session token and report rejections back.
func (c *Controller) Attach(client *apiclient.Client) {
	client.SetTokenSource(c)
	client.OnUnauthorized(c.Invalidate)
}

// # Reads

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Token implements [apiclient.TokenSource]. It is empty when signed out.
func (c *Controller) Token(context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, nil
}

// Ready is closed once the session has left the Unknown state.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

// Subscribe registers fn for every state change and returns its cancel function.
//
// fn runs on the goroutine that caused the change, after the lock is released.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// # Transitions

/*
Restore resolves the Unknown state from the persisted token.

Description: No token means Anonymous. A JWT whose expiry has passed is
cleared without a round trip. Otherwise GET /auth/me decides: success means
Authenticated, a 401 or 403 clears the token. Any other failure, such as an
unreachable backend, starts the session Anonymous but keeps the token for the
next start.

Restore only acts while the state is Unknown; later calls return the current state.
*/
func (c *Controller) Restore(ctx context.Context) State {
	c.mu.Lock()
	if c.state.Status() != StatusUnknown {
		state := c.state
		c.mu.Unlock()
		return state
	}
	generation := c.generation
	c.mu.Unlock()

	token, err := c.store.Load(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "session_token_unreadable", slog.Any("error", err))
		return c.settle(ctx, generation, "", Anonymous(), "session_anonymous")
	}
	if token == "" {
		return c.settle(ctx, generation, "", Anonymous(), "session_anonymous")
	}
	if sec.Expired(token, c.now()) {
		c.clearStore(ctx)
		return c.settle(ctx, generation, "", Anonymous(), "session_expired")
	}

	// The bearer must be visible to the adapter for the /auth/me round trip.
	c.mu.Lock()
	if c.generation == generation {
		c.token = token
	}
	c.mu.Unlock()

	meCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	user, err := c.authn.Me(meCtx)
	switch {
	case err == nil:
		return c.settle(ctx, generation, token, Authenticated(*user), "session_restored")
	case apperr.IsUnauthorized(err) || apperr.IsForbidden(err):
		c.clearStore(ctx)
		return c.settle(ctx, generation, "", Anonymous(), "session_rejected")
	default:
		c.logger.WarnContext(ctx, "session_restore_unavailable", slog.Any("error", err))
		return c.settle(ctx, generation, "", Anonymous(), "session_anonymous")
	}
}

// settle applies the outcome of Restore unless a login or logout won the race.
func (c *Controller) settle(ctx context.Context, generation uint64, token string, next State, event string) State {
	c.mu.Lock()
	if c.generation != generation {
		state := c.state
		c.mu.Unlock()
		return state
	}
	c.logger.InfoContext(ctx, event, slog.String("status", next.Status().String()))
	subscribers := c.transitionLocked(token, next)
	c.mu.Unlock()

	c.notify(subscribers, next)
	return next
}

/*
Login exchanges credentials for a session.

Returns:
  - *auth.Result: The server payload
  - error: UNAUTHORIZED for bad credentials, TRANSPORT_ERROR when offline. The
    session is left untouched on failure.
*/
func (c *Controller) Login(ctx context.Context, creds auth.Credentials) (*auth.Result, error) {
	result, err := c.authn.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	c.signIn(ctx, result, "login")
	return result, nil
}

// Register creates an account and signs it in. Failures leave the session untouched.
func (c *Controller) Register(ctx context.Context, reg auth.Registration) (*auth.Result, error) {
	result, err := c.authn.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	c.signIn(ctx, result, "register")
	return result, nil
}

func (c *Controller) signIn(ctx context.Context, result *auth.Result, event string) {
	next := Authenticated(result.User)

	c.mu.Lock()
	subscribers := c.transitionLocked(result.Token, next)
	c.mu.Unlock()

	if err := c.store.Save(ctx, result.Token); err != nil {
		c.logger.WarnContext(ctx, "session_token_not_persisted", slog.Any("error", err))
	}
	c.logger.InfoContext(ctx, event, slog.String("user_id", result.User.ID))
	c.notify(subscribers, next)
}

// Logout signs out locally and navigates to the login surface. It cannot fail.
func (c *Controller) Logout(ctx context.Context) {
	c.signOut(ctx, "logout", true)
}

/*
Invalidate drops a token the backend rejected.

Description: It is the 401 hook of the HTTP client. A rejection of a token
that is no longer current is ignored. The user is navigated to the login
surface only when a signed-in session ends.
*/
func (c *Controller) Invalidate(ctx context.Context, rejected string) {
	c.mu.Lock()
	stale := rejected == "" || rejected != c.token
	c.mu.Unlock()
	if stale {
		return
	}
	c.signOut(ctx, "session_invalidated", false)
}

func (c *Controller) signOut(ctx context.Context, event string, always bool) {
	next := Anonymous()

	c.mu.Lock()
	wasAuthenticated := c.state.IsAuthenticated()
	subscribers := c.transitionLocked("", next)
	c.mu.Unlock()

	c.clearStore(ctx)
	c.logger.InfoContext(ctx, event)
	c.notify(subscribers, next)

	if always || wasAuthenticated {
		c.nav.Navigate(LoginLocation)
	}
}

// UpdateProfile saves profile changes and replaces the signed-in user.
func (c *Controller) UpdateProfile(ctx context.Context, update auth.ProfileUpdate) (*auth.User, error) {
	if !c.State().IsAuthenticated() {
		return nil, apperr.Unauthorized("Authentication required")
	}

	user, err := c.authn.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	next := Authenticated(*user)
	c.mu.Lock()
	if !c.state.IsAuthenticated() {
		c.mu.Unlock()
		return user, nil
	}
	c.state = next
	subscribers := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(subscribers, next)
	return user, nil
}

// # Internals

// transitionLocked installs a new state and token and returns the listeners to notify.
func (c *Controller) transitionLocked(token string, next State) []func(State) {
	c.generation++
	c.token = token
	c.state = next
	c.readyOnce.Do(func() { close(c.ready) })
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() []func(State) {
	subscribers := make([]func(State), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subscribers = append(subscribers, fn)
	}
	return subscribers
}

func (c *Controller) notify(subscribers []func(State), state State) {
	for _, fn := range subscribers {
		fn(state)
	}
}

func (c *Controller) clearStore(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "session_token_not_cleared", slog.Any("error", err))
	}
}
