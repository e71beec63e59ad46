// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package page holds the screen controllers of the CampusShare client.

A controller owns the state of one screen: it gathers the dependencies the
screen needs, exposes snapshots for rendering, and performs the screen's
actions. Controllers never touch session state directly; they read it from
the [session.Controller] and change it only through its methods.

Concurrency:

  - Listings are reloaded through [view.Latest], so a superseded load returns
    [ErrSuperseded] and never replaces newer data.
  - Mutating actions on one item are serialized; a second call while the first
    is pending returns [ErrBusy].
*/
package page

import (
	"errors"

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/forum"
	"github.com/taibuivan/campusshare/internal/platform/apiclient"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/session"
	"github.com/taibuivan/campusshare/internal/social"
)

var (
	// ErrSuperseded is returned by a load that a newer load of the same screen replaced.
	ErrSuperseded = errors.New("page: superseded by a newer load")

	// ErrBusy is returned while a previous action on the same item is pending.
	ErrBusy = errors.New("page: action already in flight")
)

// Deps bundles the services every screen is built from.
type Deps struct {
	Session   *session.Controller
	Auth      *auth.Service
	Resources *resource.Service
	Social    *social.Service
	Forum     *forum.Service
	Admin     *admin.Service
}

// NewDeps builds the domain services over one shared API client.
func NewDeps(api *apiclient.Client, sess *session.Controller) Deps {
	return Deps{
		Session:   sess,
		Auth:      auth.NewService(api),
		Resources: resource.NewService(api),
		Social:    social.NewService(api),
		Forum:     forum.NewService(api),
		Admin:     admin.NewService(api),
	}
}
