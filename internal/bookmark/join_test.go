// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/bookmark"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
)

func resources(ids ...string) []resource.Resource {
	out := make([]resource.Resource, len(ids))
	for i, id := range ids {
		out[i] = resource.Resource{ID: id, Title: "Resource " + id}
	}
	return out
}

/*
TestJoin annotates exactly the resources that have a bookmark.
*/
func TestJoin(t *testing.T) {
	bookmarks := []social.Bookmark{
		{ID: "b1", ResourceID: "r1"},
		{ID: "b3", Resource: resource.Resource{ID: "r3"}},
		{ID: "b9", ResourceID: "r9"},
	}

	entries := bookmark.Join(resources("r1", "r2", "r3"), bookmarks)
	require.Len(t, entries, 3)

	assert.True(t, entries[0].Bookmarked)
	assert.Equal(t, "b1", entries[0].BookmarkID)
	assert.False(t, entries[1].Bookmarked)
	assert.Empty(t, entries[1].BookmarkID)
	assert.True(t, entries[2].Bookmarked)
	assert.Equal(t, "b3", entries[2].BookmarkID)
}

/*
TestJoin_MissingBookmarkID keeps the bookmark but leaves its ID empty.
*/
func TestJoin_MissingBookmarkID(t *testing.T) {
	entries := bookmark.Join(resources("r1"), []social.Bookmark{{ResourceID: "r1"}})

	require.Len(t, entries, 1)
	assert.True(t, entries[0].Bookmarked)
	assert.Empty(t, entries[0].BookmarkID)
}

/*
TestJoin_Randomized checks the join against a brute force lookup.
*/
func TestJoin_Randomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		var ids []string
		var bookmarks []social.Bookmark
		n := rng.Intn(30)
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("r%d", i)
			ids = append(ids, id)
			if rng.Intn(2) == 0 {
				bookmarks = append(bookmarks, social.Bookmark{ID: "b-" + id, ResourceID: id})
			}
		}
		items := resources(ids...)

		entries := bookmark.Join(items, bookmarks)
		require.Len(t, entries, len(items))

		for i, entry := range entries {
			assert.Equal(t, items[i], entry.Resource)

			want := ""
			for _, b := range bookmarks {
				if b.ResourceID == entry.Resource.ID {
					want = b.ID
				}
			}
			assert.Equal(t, want != "", entry.Bookmarked)
			assert.Equal(t, want, entry.BookmarkID)
		}
	}
}

/*
TestSaved marks every bookmark listing entry as bookmarked.
*/
func TestSaved(t *testing.T) {
	entries := bookmark.Saved([]social.Bookmark{
		{ID: "b1", ResourceID: "r1"},
		{ID: "b2", Resource: resource.Resource{ID: "r2"}},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "r1", entries[0].Resource.ID)
	assert.Equal(t, "b2", entries[1].BookmarkID)
	for _, entry := range entries {
		assert.True(t, entry.Bookmarked)
	}
}
