// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/campusshare/internal/bookmark"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
	"github.com/taibuivan/campusshare/internal/view"
)

// # Dashboard Settings

const (
	DashboardPageSize    = 20
	RecommendationsLimit = 3
	DashboardDefaultSort = resource.SortNewest

	dashboardFeedPage = 1
)

// Tab selects the dashboard's data source.
type Tab string

const (
	TabExplore   Tab = "explore"
	TabFollowing Tab = "following"
)

// Filters is the dashboard input. Changing it schedules a debounced reload.
type Filters struct {
	Tab    Tab
	Search string
	Type   resource.Type
	SortBy string
}

// normalized fills the defaults the form starts with.
func (f Filters) normalized() Filters {
	if f.Tab == "" {
		f.Tab = TabExplore
	}
	if f.SortBy == "" {
		f.SortBy = DashboardDefaultSort
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// wantsRecommendations is true on the explore tab without a search term.
func (f Filters) wantsRecommendations() bool {
	return f.Tab == TabExplore && f.Search == ""
}

// DashboardView is one loaded state of the dashboard.
type DashboardView struct {
	Filters         Filters
	Entries         []bookmark.Entry
	Cards           []*bookmark.Card
	Recommendations []resource.Resource
	Total           int
}

// Dashboard lists resources for the explore and following tabs.
type Dashboard struct {
	deps      Deps
	debouncer *view.Debouncer
	latest    view.Latest[*DashboardView]

	mu      sync.Mutex
	filters Filters
	onLoad  func(*DashboardView, error)
}

// NewDashboard returns a dashboard whose filter changes settle for debounce
// before reloading.
func NewDashboard(deps Deps, debounce time.Duration) *Dashboard {
	return &Dashboard{
		deps:      deps,
		debouncer: view.NewDebouncer(debounce),
		filters:   Filters{}.normalized(),
	}
}

// OnLoad registers the callback that receives every debounced reload.
//
// Superseded loads are not reported.
func (d *Dashboard) OnLoad(fn func(*DashboardView, error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onLoad = fn
}

// Filters returns the current input.
func (d *Dashboard) Filters() Filters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filters
}

// begin starts a generation together with the filters it loads, so the
// newest generation always carries the newest filters.
func (d *Dashboard) begin(ctx context.Context) (context.Context, uint64, Filters) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, gen := d.latest.Begin(ctx)
	return ctx, gen, d.filters
}

// View returns the newest committed state.
func (d *Dashboard) View() (*DashboardView, bool) {
	return d.latest.Get()
}

// SetFilters replaces the input and schedules a reload once it is stable.
func (d *Dashboard) SetFilters(ctx context.Context, filters Filters) {
	d.mu.Lock()
	d.filters = filters.normalized()
	d.mu.Unlock()

	d.debouncer.Trigger(func() {
		loaded, err := d.Load(ctx)
		if errors.Is(err, ErrSuperseded) {
			return
		}

		d.mu.Lock()
		onLoad := d.onLoad
		d.mu.Unlock()
		if onLoad != nil {
			onLoad(loaded, err)
		}
	})
}

// ClearFilters restores the defaults and schedules a reload. The tab is kept.
func (d *Dashboard) ClearFilters(ctx context.Context) {
	d.SetFilters(ctx, Filters{Tab: d.Filters().Tab})
}

/*
Load fetches the listing, the caller's bookmarks and, on the explore tab,
recommendations, then joins bookmarks onto the listing.

Description: The listing is REQUIRED. Bookmarks and recommendations are
OPTIONAL and degrade to empty. The join is always rebuilt from the bookmark
fetch made by this load.

Returns:
  - *DashboardView: The committed view
  - error: [ErrSuperseded] when a newer load started meanwhile, or the listing error
*/
func (d *Dashboard) Load(ctx context.Context) (*DashboardView, error) {
	ctx, gen, filters := d.begin(ctx)

	var (
		listing         []resource.Resource
		total           int
		bookmarks       []social.Bookmark
		recommendations []resource.Resource
	)

	deps := []view.Dependency{
		view.Optional("bookmarks", func(ctx context.Context) error {
			found, err := d.deps.Social.Bookmarks(ctx)
			bookmarks = found
			return err
		}, func() { bookmarks = nil }),
	}

	if filters.Tab == TabFollowing {
		deps = append(deps, view.Required("feed", func(ctx context.Context) error {
			feed, err := d.deps.Social.ActivityFeed(ctx, dashboardFeedPage, DashboardPageSize)
			if err != nil {
				return err
			}
			listing, total = feed.Resources, feed.Total
			return nil
		}))
	} else {
		deps = append(deps, view.Required("resources", func(ctx context.Context) error {
			page, err := d.deps.Resources.List(ctx, resource.ListParams{
				Search:   filters.Search,
				Type:     filters.Type,
				SortBy:   filters.SortBy,
				PageSize: DashboardPageSize,
			})
			if err != nil {
				return err
			}
			listing, total = page.Resources, page.Total
			return nil
		}))
	}

	if filters.wantsRecommendations() {
		deps = append(deps, view.Optional("recommendations", func(ctx context.Context) error {
			found, err := d.deps.Resources.Recommendations(ctx, RecommendationsLimit)
			recommendations = found
			return err
		}, func() { recommendations = nil }))
	}

	err := view.Gather(ctx, deps...)
	if !d.latest.Current(gen) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	entries := bookmark.Join(listing, bookmarks)
	loaded := &DashboardView{
		Filters:         filters,
		Entries:         entries,
		Cards:           cards(d.deps.Social, entries, nil),
		Recommendations: recommendations,
		Total:           total,
	}
	if !d.latest.Commit(gen, loaded) {
		return nil, ErrSuperseded
	}
	return loaded, nil
}

// Close drops any pending reload and cancels the one in flight.
func (d *Dashboard) Close() {
	d.debouncer.Stop()
	d.latest.Stop()
}

func cards(remote bookmark.Remote, entries []bookmark.Entry, onUnbookmark func(string)) []*bookmark.Card {
	out := make([]*bookmark.Card, len(entries))
	for i, entry := range entries {
		out[i] = bookmark.NewCard(remote, entry, onUnbookmark)
	}
	return out
}
