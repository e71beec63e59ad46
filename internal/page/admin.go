// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/platform/ctxutil"
	"github.com/taibuivan/campusshare/internal/view"
)

// Console is the moderation screen: analytics, pending reports and users.
//
// # Optimistic Updates
//
// Report resolution and ban toggles change the local lists first, then call
// the backend. A failed call runs the action's rollback, which restores only
// the item it touched so concurrent actions on other items survive.
type Console struct {
	deps Deps

	mu        sync.Mutex
	analytics admin.Analytics
	reports   []admin.Report
	users     []auth.User
	inFlight  map[string]bool
}

// NewConsole returns an empty console. Call [Console.Load] to fill it.
func NewConsole(deps Deps) *Console {
	return &Console{deps: deps, inFlight: make(map[string]bool)}
}

// ConsoleView is a snapshot of the console lists.
type ConsoleView struct {
	Analytics admin.Analytics
	Reports   []admin.Report
	Users     []auth.User
}

// View returns a snapshot of the current lists.
func (c *Console) View() ConsoleView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ConsoleView{
		Analytics: c.analytics,
		Reports:   slices.Clone(c.reports),
		Users:     slices.Clone(c.users),
	}
}

/*
Load fetches the three panels concurrently.

Description: Pending reports and users are REQUIRED. Analytics are OPTIONAL
and fall back to zero counters.
*/
func (c *Console) Load(ctx context.Context) (ConsoleView, error) {
	var loaded ConsoleView

	err := view.Gather(ctx,
		view.Optional("analytics", func(ctx context.Context) error {
			stats, err := c.deps.Admin.Analytics(ctx)
			if err != nil {
				return err
			}
			loaded.Analytics = *stats
			return nil
		}, func() { loaded.Analytics = admin.Analytics{} }),
		view.Required("reports", func(ctx context.Context) error {
			list, err := c.deps.Admin.Reports(ctx, admin.StatusPending)
			if err != nil {
				return err
			}
			loaded.Reports = list.Reports
			return nil
		}),
		view.Required("users", func(ctx context.Context) error {
			users, err := c.deps.Admin.Users(ctx)
			loaded.Users = users
			return err
		}),
	)
	if err != nil {
		return ConsoleView{}, err
	}

	c.mu.Lock()
	c.analytics, c.reports, c.users = loaded.Analytics, loaded.Reports, loaded.Users
	c.mu.Unlock()
	return c.View(), nil
}

// Busy reports whether an action on the report or user id is pending.
func (c *Console) Busy(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[id]
}

// # Report Moderation

/*
Resolve removes the report from the queue, then records the decision.

Returns:
  - error: [ErrBusy] while the same report is pending, NOT_FOUND when it is
    not in the queue, or the backend error after the report was put back
*/
func (c *Console) Resolve(ctx context.Context, reportID string, decision admin.Decision, notes string) error {
	c.mu.Lock()
	if c.inFlight[reportID] {
		c.mu.Unlock()
		return ErrBusy
	}
	index := slices.IndexFunc(c.reports, func(report admin.Report) bool { return report.ID == reportID })
	if index < 0 {
		c.mu.Unlock()
		return apperr.NotFound("Report")
	}
	removed := c.reports[index]
	c.reports = slices.Delete(slices.Clone(c.reports), index, index+1)
	c.inFlight[reportID] = true
	c.mu.Unlock()

	rollback := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if slices.ContainsFunc(c.reports, func(report admin.Report) bool { return report.ID == reportID }) {
			return
		}
		c.reports = slices.Insert(c.reports, min(index, len(c.reports)), removed)
	}

	_, err := c.deps.Admin.Resolve(ctx, reportID, decision, notes)
	c.finish(ctx, reportID, err, rollback)
	return err
}

// # User Moderation

/*
SetBanned marks the user banned or active, then asks the backend to do the same.

Returns:
  - error: [ErrBusy] while the same user is pending, NOT_FOUND when the user
    is not listed, UNPROCESSABLE for administrators, or the backend error
    after the previous status was restored
*/
func (c *Console) SetBanned(ctx context.Context, userID string, banned bool) error {
	c.mu.Lock()
	if c.inFlight[userID] {
		c.mu.Unlock()
		return ErrBusy
	}
	index := slices.IndexFunc(c.users, func(user auth.User) bool { return user.ID == userID })
	if index < 0 {
		c.mu.Unlock()
		return apperr.NotFound("User")
	}
	previous := c.users[index]
	if previous.IsAdmin() {
		c.mu.Unlock()
		return apperr.Unprocessable("Administrators cannot be banned")
	}
	c.users = slices.Clone(c.users)
	c.users[index].IsBanned = banned
	c.inFlight[userID] = true
	c.mu.Unlock()

	rollback := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.patchUserLocked(userID, func(user *auth.User) { user.IsBanned = previous.IsBanned })
	}

	var (
		updated *auth.User
		err     error
	)
	if banned {
		updated, err = c.deps.Admin.Ban(ctx, userID)
	} else {
		updated, err = c.deps.Admin.Unban(ctx, userID)
	}

	if err == nil && updated != nil {
		c.mu.Lock()
		c.patchUserLocked(userID, func(user *auth.User) { *user = *updated })
		c.mu.Unlock()
	}
	c.finish(ctx, userID, err, rollback)
	return err
}

// # Forum Moderation

// ModerateTopic pins or locks a forum topic.
func (c *Console) ModerateTopic(ctx context.Context, topicID string, flags admin.TopicFlags) error {
	return c.deps.Admin.ModerateTopic(ctx, topicID, flags)
}

// # Internals

// finish runs rollback on failure and releases the item's in-flight guard.
func (c *Console) finish(ctx context.Context, id string, err error, rollback func()) {
	if err != nil {
		ctxutil.Logger(ctx).Warn("moderation_rolled_back", "id", id, "error", err)
		rollback()
	}

	c.mu.Lock()
	delete(c.inFlight, id)
	c.mu.Unlock()
}

func (c *Console) patchUserLocked(userID string, patch func(*auth.User)) {
	index := slices.IndexFunc(c.users, func(user auth.User) bool { return user.ID == userID })
	if index < 0 {
		return
	}
	c.users = slices.Clone(c.users)
	patch(&c.users[index])
}
