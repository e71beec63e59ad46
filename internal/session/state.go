// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import "github.com/taibuivan/campusshare/internal/auth"

// Status is the tag of the session union.
type Status int

const (
	// StatusUnknown is the initial state while the persisted token is checked.
	StatusUnknown Status = iota

	// StatusAuthenticated carries the signed-in user.
	StatusAuthenticated

	// StatusAnonymous means nobody is signed in.
	StatusAnonymous
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the session.
//
// The user is present exactly when the status is [StatusAuthenticated], so
// there is no combination of "loading" and a stale user to observe.
type State struct {
	status Status
	user   *auth.User
}

// Unknown returns the initial state.
func Unknown() State { return State{status: StatusUnknown} }

// Anonymous returns the signed-out state.
func Anonymous() State { return State{status: StatusAnonymous} }

// Authenticated returns the signed-in state for user.
func Authenticated(user auth.User) State {
	return State{status: StatusAuthenticated, user: &user}
}

// Status returns the union tag.
func (s State) Status() Status { return s.status }

// User returns a copy of the signed-in user, or nil.
func (s State) User() *auth.User {
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Loading reports whether the session is still being restored.
func (s State) Loading() bool { return s.status == StatusUnknown }

// IsAuthenticated is derived from the status and never stored.
func (s State) IsAuthenticated() bool { return s.status == StatusAuthenticated }

// IsAdmin reports whether the signed-in user holds the admin role.
func (s State) IsAdmin() bool { return s.user != nil && s.user.IsAdmin() }
