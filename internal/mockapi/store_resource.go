// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/pkg/pagination"
	"github.com/taibuivan/campusshare/pkg/slice"
)

// NewUpload is a validated upload as received by the handler.
type NewUpload struct {
	Title        string
	Description  string
	Type         resource.Type
	SharingLevel resource.SharingLevel
	Tags         []string
	FileName     string
	Content      []byte
}

// CreateResource stores an upload owned by userID.
func (store *Store) CreateResource(userID string, upload NewUpload) (resource.Resource, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[userID]; !ok {
		return resource.Resource{}, apperr.Unauthorized("Authentication required")
	}

	fileType := mime.TypeByExtension(filepath.Ext(upload.FileName))
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	now := store.now()
	created := resource.Resource{
		ID:           newID(),
		UserID:       userID,
		Title:        strings.TrimSpace(upload.Title),
		Description:  upload.Description,
		Type:         upload.Type,
		FileName:     upload.FileName,
		FileSize:     int64(len(upload.Content)),
		FileType:     fileType,
		SharingLevel: upload.SharingLevel,
		IsApproved:   true,
		Tags: slice.Map(upload.Tags, func(name string) resource.TagLink {
			return resource.TagLink{Tag: resource.Tag{Name: name}}
		}),
		CreatedAt: now,
		UpdatedAt: now,
	}
	store.resources[created.ID] = &resourceRecord{resource: created, content: upload.Content}
	return store.resourceViewLocked(created.ID), nil
}

// resourceViewLocked returns a copy of a resource with its author embedded.
func (store *Store) resourceViewLocked(id string) resource.Resource {
	view := store.resources[id].resource
	view.User = store.userRefLocked(view.UserID)
	view.Tags = append([]resource.TagLink(nil), view.Tags...)
	return view
}

// ViewResource fetches a resource and counts the view.
//
// Withdrawn resources are only visible to their owner and administrators.
func (store *Store) ViewResource(id, viewerID string, privileged bool) (resource.Resource, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, ok := store.resources[id]
	if !ok || (!record.resource.IsApproved && !privileged && record.resource.UserID != viewerID) {
		return resource.Resource{}, apperr.NotFound("Resource")
	}
	record.resource.ViewCount++
	return store.resourceViewLocked(id), nil
}

// ListFilter mirrors the query parameters of the listing endpoint.
type ListFilter struct {
	Search string
	Type   string
	Tag    string
	SortBy string
}

// ListResources returns one page of approved resources and the total match count.
func (store *Store) ListResources(filter ListFilter, page pagination.Params) ([]resource.Resource, int) {
	store.mu.Lock()
	defer store.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matches := make([]resource.Resource, 0, len(store.resources))
	for id, record := range store.resources {
		item := record.resource
		if !item.IsApproved {
			continue
		}
		if filter.Type != "" && string(item.Type) != filter.Type {
			continue
		}
		if filter.Tag != "" && !containsTag(item, filter.Tag) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Title+" "+item.Description), search) {
			continue
		}
		matches = append(matches, store.resourceViewLocked(id))
	}

	sortResources(matches, filter.SortBy)
	return pagination.Apply(matches, page), len(matches)
}

// ResourcesByUsers lists approved resources uploaded by any of userIDs, newest first.
func (store *Store) ResourcesByUsers(userIDs []string, page pagination.Params) ([]resource.Resource, int) {
	store.mu.Lock()
	defer store.mu.Unlock()

	owners := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		owners[id] = struct{}{}
	}

	matches := make([]resource.Resource, 0)
	for id, record := range store.resources {
		if _, ok := owners[record.resource.UserID]; ok && record.resource.IsApproved {
			matches = append(matches, store.resourceViewLocked(id))
		}
	}

	sortResources(matches, resource.SortNewest)
	return pagination.Apply(matches, page), len(matches)
}

// SimilarResources returns approved resources of the same type, most downloaded first.
func (store *Store) SimilarResources(id string, limit int) ([]resource.Resource, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	origin, ok := store.resources[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}

	matches := make([]resource.Resource, 0)
	for otherID, record := range store.resources {
		if otherID == id || !record.resource.IsApproved || record.resource.Type != origin.resource.Type {
			continue
		}
		matches = append(matches, store.resourceViewLocked(otherID))
	}

	sortResources(matches, resource.SortPopular)
	return truncate(matches, limit), nil
}

// Recommendations returns top rated approved resources the user neither owns nor bookmarked.
func (store *Store) Recommendations(userID string, limit int) []resource.Resource {
	store.mu.Lock()
	defer store.mu.Unlock()

	saved := make(map[string]struct{})
	for _, bookmark := range store.bookmarks {
		if bookmark.userID == userID {
			saved[bookmark.resourceID] = struct{}{}
		}
	}

	matches := make([]resource.Resource, 0)
	for id, record := range store.resources {
		if !record.resource.IsApproved || record.resource.UserID == userID {
			continue
		}
		if _, ok := saved[id]; ok {
			continue
		}
		matches = append(matches, store.resourceViewLocked(id))
	}

	sortResources(matches, resource.SortRating)
	return truncate(matches, limit)
}

// Download counts a download and returns the file.
func (store *Store) Download(id string) (resource.Resource, []byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, ok := store.resources[id]
	if !ok {
		return resource.Resource{}, nil, apperr.NotFound("Resource")
	}
	record.resource.DownloadCount++
	return record.resource, record.content, nil
}

// ResourceExists reports whether id names a stored resource.
func (store *Store) ResourceExists(id string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	_, ok := store.resources[id]
	return ok
}

func containsTag(item resource.Resource, tag string) bool {
	for _, link := range item.Tags {
		if link.Tag.Name == tag {
			return true
		}
	}
	return false
}

func sortResources(items []resource.Resource, sortBy string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch sortBy {
		case resource.SortPopular:
			if a.DownloadCount != b.DownloadCount {
				return a.DownloadCount > b.DownloadCount
			}
			if a.ViewCount != b.ViewCount {
				return a.ViewCount > b.ViewCount
			}
		case resource.SortRating:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
			if a.DownloadCount != b.DownloadCount {
				return a.DownloadCount > b.DownloadCount
			}
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
