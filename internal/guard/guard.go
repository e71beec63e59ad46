// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard decides whether a protected surface may be shown.

Guards never fail. Missing permission is expressed as a redirect:

  - [Authenticated]: anonymous users go to the login surface.
  - [Admin]: anonymous users go to login; signed-in non-admins go to the app.

While the session is still being restored both return [Pending], which
renders a placeholder and navigates nowhere.
*/
package guard

import (
	"context"

	"github.com/taibuivan/campusshare/internal/session"
)

// Outcome is the kind of a [Decision].
type Outcome int

const (
	// Pending shows a placeholder and performs no navigation.
	Pending Outcome = iota

	// Allow renders the protected content.
	Allow

	// Redirect navigates to Decision.Location.
	Redirect
)

// Default locations.
const (
	LoginLocation = session.LoginLocation
	AppLocation   = "/app"
)

// Decision is the result of evaluating a guard.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Allowed reports whether the protected content may render.
func (d Decision) Allowed() bool { return d.Outcome == Allow }

// Guard evaluates a session snapshot.
type Guard func(state session.State) Decision

// Authenticated admits any signed-in user.
func Authenticated(state session.State) Decision {
	switch {
	case state.Loading():
		return Decision{Outcome: Pending}
	case state.IsAuthenticated():
		return Decision{Outcome: Allow}
	default:
		return Decision{Outcome: Redirect, Location: LoginLocation}
	}
}

// Admin admits signed-in administrators only.
func Admin(state session.State) Decision {
	switch {
	case state.Loading():
		return Decision{Outcome: Pending}
	case !state.IsAuthenticated():
		return Decision{Outcome: Redirect, Location: LoginLocation}
	case state.IsAdmin():
		return Decision{Outcome: Allow}
	default:
		return Decision{Outcome: Redirect, Location: AppLocation}
	}
}

// Source is what [Wait] needs from the session controller.
type Source interface {
	State() session.State
	Ready() <-chan struct{}
}

/*
Wait blocks until the session is resolved and returns the final decision.

Returns:
  - Decision: Never [Pending] unless ctx ends first
  - error: ctx.Err() when the context ends while the session is still loading
*/
func Wait(ctx context.Context, source Source, guard Guard) (Decision, error) {
	if decision := guard(source.State()); decision.Outcome != Pending {
		return decision, nil
	}

	select {
	case <-source.Ready():
		return guard(source.State()), nil
	case <-ctx.Done():
		return Decision{Outcome: Pending}, ctx.Err()
	}
}
