// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bookmark keeps bookmark state consistent across resource listings.

Resources and bookmarks are fetched as two independent collections. [Join]
derives the annotated view from both; it never mutates either input. After
that, each [Card] owns a local fork of its bookmark state that changes only
through [Card.Toggle], and only after the backend confirmed the change.
*/
package bookmark

import (
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
)

// Entry is a resource annotated with the caller's bookmark.
//
// Bookmarked and BookmarkID are set together by [Join]. A bookmarked entry
// with an empty BookmarkID means the backend returned a bookmark without an
// id; cards built from it refuse to unbookmark.
type Entry struct {
	Resource   resource.Resource
	Bookmarked bool
	BookmarkID string
}

// Index maps resource IDs to the ID of the bookmark that saved them.
//
// The resource ID is read from the bookmark itself, falling back to the
// embedded resource when the backend omits it. Presence in the map means
// bookmarked, even when the stored ID is empty.
func Index(bookmarks []social.Bookmark) map[string]string {
	index := make(map[string]string, len(bookmarks))
	for _, bookmark := range bookmarks {
		resourceID := bookmark.ResourceID
		if resourceID == "" {
			resourceID = bookmark.Resource.ID
		}
		if resourceID != "" {
			index[resourceID] = bookmark.ID
		}
	}
	return index
}

/*
Join annotates resources with the bookmarks fetched alongside them.

Description: A left join on resource ID in O(R + B). The result must be
recomputed from a fresh bookmark fetch whenever the listing reloads.
*/
func Join(resources []resource.Resource, bookmarks []social.Bookmark) []Entry {
	index := Index(bookmarks)

	entries := make([]Entry, len(resources))
	for i, item := range resources {
		bookmarkID, ok := index[item.ID]
		entries[i] = Entry{Resource: item, Bookmarked: ok, BookmarkID: bookmarkID}
	}
	return entries
}

// Saved turns a bookmark listing into entries, all of them bookmarked.
func Saved(bookmarks []social.Bookmark) []Entry {
	entries := make([]Entry, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		item := bookmark.Resource
		if item.ID == "" {
			item.ID = bookmark.ResourceID
		}
		entries = append(entries, Entry{Resource: item, Bookmarked: true, BookmarkID: bookmark.ID})
	}
	return entries
}
