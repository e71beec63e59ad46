// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"sync"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
	"github.com/taibuivan/campusshare/internal/view"
	"github.com/taibuivan/campusshare/pkg/slice"
)

// profileScanSize is how many recent resources are scanned for a user's uploads.
const profileScanSize = 50

// # Public Profile

// Profile is the public view of another user.
type Profile struct {
	User      auth.User
	Resources []resource.Resource
	Stats     social.FollowStats
	Following bool

	// Own is true when the viewer is looking at their own profile.
	Own bool
}

// PublicProfile shows a user's uploads and follow counters.
type PublicProfile struct {
	deps   Deps
	userID string

	mu       sync.Mutex
	profile  *Profile
	inFlight bool
}

// NewPublicProfile returns the page of userID.
func NewPublicProfile(deps Deps, userID string) *PublicProfile {
	return &PublicProfile{deps: deps, userID: userID}
}

// Profile returns a copy of the last loaded state, or nil.
func (p *PublicProfile) Profile() *Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.profile == nil {
		return nil
	}
	copied := *p.profile
	return &copied
}

/*
Load resolves the viewer first, then fetches uploads, follow status and
follow counters concurrently.

Description: There is no public user endpoint, so the user is read from the
uploads. Follow status and counters are OPTIONAL. Follow status is skipped
on one's own profile.
*/
func (p *PublicProfile) Load(ctx context.Context) (*Profile, error) {
	viewer := p.deps.Session.State().User()
	profile := Profile{Own: viewer != nil && viewer.ID == p.userID}

	deps := []view.Dependency{
		view.Required("resources", func(ctx context.Context) error {
			page, err := p.deps.Resources.List(ctx, resource.ListParams{PageSize: profileScanSize})
			if err != nil {
				return err
			}
			profile.Resources = slice.Filter(page.Resources, func(item resource.Resource) bool {
				return item.UserID == p.userID || (item.User != nil && item.User.ID == p.userID)
			})
			return nil
		}),
		view.Optional("follow_stats", func(ctx context.Context) error {
			stats, err := p.deps.Social.FollowStats(ctx, p.userID)
			if err != nil {
				return err
			}
			profile.Stats = *stats
			return nil
		}, func() { profile.Stats = social.FollowStats{} }),
	}
	if !profile.Own {
		deps = append(deps, view.Optional("follow_status", func(ctx context.Context) error {
			following, err := p.deps.Social.IsFollowing(ctx, p.userID)
			profile.Following = following
			return err
		}, func() { profile.Following = false }))
	}

	if err := view.Gather(ctx, deps...); err != nil {
		return nil, err
	}
	profile.User = p.identify(viewer, profile)

	p.mu.Lock()
	p.profile = &profile
	p.mu.Unlock()

	copied := profile
	return &copied, nil
}

// identify picks the best known record of the profile's user.
func (p *PublicProfile) identify(viewer *auth.User, profile Profile) auth.User {
	if profile.Own {
		return *viewer
	}
	for _, item := range profile.Resources {
		if item.User != nil {
			return *item.User
		}
	}
	return auth.User{ID: p.userID, FirstName: "Academic", LastName: "User"}
}

/*
ToggleFollow follows or unfollows the user and adjusts the follower count.

Returns:
  - bool: Whether the viewer follows the user afterwards
  - error: [ErrBusy] while a toggle is pending, UNPROCESSABLE on one's own
    profile, or the backend error (state unchanged)
*/
func (p *PublicProfile) ToggleFollow(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.profile == nil {
		p.mu.Unlock()
		return false, apperr.Unprocessable("Profile is not loaded")
	}
	following := p.profile.Following
	if p.inFlight {
		p.mu.Unlock()
		return following, ErrBusy
	}
	if p.profile.Own {
		p.mu.Unlock()
		return false, apperr.Unprocessable("You cannot follow yourself")
	}
	p.inFlight = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	var err error
	if following {
		err = p.deps.Social.Unfollow(ctx, p.userID)
	} else {
		err = p.deps.Social.Follow(ctx, p.userID)
	}
	if err != nil {
		return following, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile.Following = !following
	if following {
		p.profile.Stats.Followers = max(0, p.profile.Stats.Followers-1)
	} else {
		p.profile.Stats.Followers++
	}
	return !following, nil
}

// # Own Profile

// ProfileEditor edits the signed-in user's profile through the session.
type ProfileEditor struct {
	deps Deps
}

// NewProfileEditor returns the editor.
func NewProfileEditor(deps Deps) *ProfileEditor {
	return &ProfileEditor{deps: deps}
}

// Current returns the signed-in user, or nil.
func (e *ProfileEditor) Current() *auth.User {
	return e.deps.Session.State().User()
}

// Save stores the changes. The session's user is replaced on success.
func (e *ProfileEditor) Save(ctx context.Context, update auth.ProfileUpdate) (*auth.User, error) {
	return e.deps.Session.UpdateProfile(ctx, update)
}
