// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/mockapi/mockapitest"
	"github.com/taibuivan/campusshare/internal/page"
	"github.com/taibuivan/campusshare/internal/resource"
)

/*
TestDashboard_ExploreJoinsBookmarks verifies the join and the recommendation rule.
*/
func TestDashboard_ExploreJoinsBookmarks(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	notes := env.Upload(t, bob.Token, "Algebra Notes", resource.TypeNotes)
	slides := env.Upload(t, bob.Token, "Algebra Slides", resource.TypeSlides)

	ana, _ := student(t, env, "ana@campus.edu")
	ctx := context.Background()
	saved, err := ana.Social.AddBookmark(ctx, notes.ID)
	require.NoError(t, err)

	dashboard := page.NewDashboard(ana, 0)
	loaded, err := dashboard.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Entries, 2)
	assert.Equal(t, 2, loaded.Total)
	for i, entry := range loaded.Entries {
		switch entry.Resource.ID {
		case notes.ID:
			assert.True(t, entry.Bookmarked)
			assert.Equal(t, saved.ID, entry.BookmarkID)
		case slides.ID:
			assert.False(t, entry.Bookmarked)
		default:
			t.Fatalf("unexpected resource %s", entry.Resource.ID)
		}
		assert.Equal(t, entry.Bookmarked, loaded.Cards[i].Bookmarked())
	}

	require.Len(t, loaded.Recommendations, 1)
	assert.Equal(t, slides.ID, loaded.Recommendations[0].ID)

	current, ok := dashboard.View()
	require.True(t, ok)
	assert.Same(t, loaded, current)
}

/*
TestDashboard_SearchSkipsRecommendations verifies filters reach the listing.
*/
func TestDashboard_SearchSkipsRecommendations(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	env.Upload(t, bob.Token, "Algebra Notes", resource.TypeNotes)
	env.Upload(t, bob.Token, "Physics Exam", resource.TypeExam)

	ana, _ := student(t, env, "ana@campus.edu")
	dashboard := page.NewDashboard(ana, 0)
	ctx := context.Background()

	dashboard.SetFilters(ctx, page.Filters{Search: "  physics "})
	loaded, ok := dashboard.View()
	require.True(t, ok)

	assert.Equal(t, "physics", loaded.Filters.Search)
	assert.Equal(t, resource.SortNewest, loaded.Filters.SortBy)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, "Physics Exam", loaded.Entries[0].Resource.Title)
	assert.Empty(t, loaded.Recommendations)

	dashboard.SetFilters(ctx, page.Filters{Type: resource.TypeNotes})
	loaded, _ = dashboard.View()
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, resource.TypeNotes, loaded.Entries[0].Resource.Type)
}

/*
TestDashboard_FollowingTab lists uploads of followed users only.
*/
func TestDashboard_FollowingTab(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	carol := env.Register(t, "carol@campus.edu")
	followed := env.Upload(t, bob.Token, "Followed Notes", resource.TypeNotes)
	env.Upload(t, carol.Token, "Other Notes", resource.TypeNotes)

	ana, _ := student(t, env, "ana@campus.edu")
	ctx := context.Background()
	require.NoError(t, ana.Social.Follow(ctx, bob.User.ID))

	dashboard := page.NewDashboard(ana, 0)
	dashboard.SetFilters(ctx, page.Filters{Tab: page.TabFollowing})

	loaded, ok := dashboard.View()
	require.True(t, ok)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, followed.ID, loaded.Entries[0].Resource.ID)
	assert.Empty(t, loaded.Recommendations)
}

/*
TestDashboard_DebouncesFilterChanges verifies a burst of typing yields one
reload carrying the final input.
*/
func TestDashboard_DebouncesFilterChanges(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	env.Upload(t, bob.Token, "Graph Theory", resource.TypeNotes)

	ana, _ := student(t, env, "ana@campus.edu")
	dashboard := page.NewDashboard(ana, 30*time.Millisecond)
	t.Cleanup(dashboard.Close)

	loads := make(chan *page.DashboardView, 4)
	dashboard.OnLoad(func(loaded *page.DashboardView, err error) {
		assert.NoError(t, err)
		loads <- loaded
	})

	ctx := context.Background()
	for _, term := range []string{"g", "gr", "gra", "graph"} {
		dashboard.SetFilters(ctx, page.Filters{Search: term})
	}

	select {
	case loaded := <-loads:
		assert.Equal(t, "graph", loaded.Filters.Search)
		assert.Len(t, loaded.Entries, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload after the input settled")
	}

	select {
	case extra := <-loads:
		t.Fatalf("unexpected extra reload for %q", extra.Filters.Search)
	case <-time.After(100 * time.Millisecond):
	}
}

/*
TestDashboard_OptionalFailuresDegrade verifies a failing bookmark fetch leaves
the listing intact and every card unbookmarked.
*/
func TestDashboard_OptionalFailuresDegrade(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	env.Upload(t, bob.Token, "Algebra Notes", resource.TypeNotes)
	env.Register(t, "ana@campus.edu")

	baseURL := failing(t, env, func(r *http.Request) bool {
		return r.Method == http.MethodGet && (strings.HasSuffix(r.URL.Path, "/bookmarks") || strings.HasSuffix(r.URL.Path, "/recommendations"))
	})
	ana := signIn(t, baseURL, "ana@campus.edu", mockapitest.Password)

	loaded, err := page.NewDashboard(ana, 0).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	assert.False(t, loaded.Entries[0].Bookmarked)
	assert.Empty(t, loaded.Recommendations)
}

/*
TestDashboard_NewestFiltersWin verifies that concurrent filter changes settle on
a view built from the filters left in place.
*/
func TestDashboard_NewestFiltersWin(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	env.Upload(t, bob.Token, "Algebra Notes", resource.TypeNotes)

	ana, _ := student(t, env, "ana@campus.edu")
	dashboard := page.NewDashboard(ana, 0)
	ctx := context.Background()

	terms := []string{"algebra", "physics", "notes", "exam", "calculus", "chemistry"}
	for range 5 {
		var wg sync.WaitGroup
		for _, term := range terms {
			wg.Add(1)
			go func() {
				defer wg.Done()
				dashboard.SetFilters(ctx, page.Filters{Search: term})
			}()
		}
		wg.Wait()

		current, ok := dashboard.View()
		require.True(t, ok)
		assert.Equal(t, dashboard.Filters(), current.Filters)
	}
}
