// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"math"
	"sort"
	"strings"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
	"github.com/taibuivan/campusshare/pkg/pagination"
)

// # Bookmarks

// AddBookmark saves a resource for userID. Saving twice is a conflict.
func (store *Store) AddBookmark(userID, resourceID string) (social.Bookmark, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.resources[resourceID]; !ok {
		return social.Bookmark{}, apperr.NotFound("Resource")
	}
	for _, existing := range store.bookmarks {
		if existing.userID == userID && existing.resourceID == resourceID {
			return social.Bookmark{}, apperr.Conflict("Resource already bookmarked")
		}
	}

	record := bookmarkRecord{id: newID(), userID: userID, resourceID: resourceID, createdAt: store.now()}
	store.bookmarks[record.id] = record
	return store.bookmarkViewLocked(record), nil
}

// Bookmarks lists the bookmarks of userID, newest first.
func (store *Store) Bookmarks(userID string) []social.Bookmark {
	store.mu.Lock()
	defer store.mu.Unlock()

	records := make([]bookmarkRecord, 0)
	for _, record := range store.bookmarks {
		if record.userID == userID {
			if _, ok := store.resources[record.resourceID]; ok {
				records = append(records, record)
			}
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].createdAt.Equal(records[j].createdAt) {
			return records[i].createdAt.After(records[j].createdAt)
		}
		return records[i].id > records[j].id
	})

	bookmarks := make([]social.Bookmark, 0, len(records))
	for _, record := range records {
		bookmarks = append(bookmarks, store.bookmarkViewLocked(record))
	}
	return bookmarks
}

// DeleteBookmark removes a bookmark by its own ID. Only the owner may delete it.
func (store *Store) DeleteBookmark(userID, bookmarkID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, ok := store.bookmarks[bookmarkID]
	if !ok {
		return apperr.NotFound("Bookmark")
	}
	if record.userID != userID {
		return apperr.Forbidden("Not your bookmark")
	}
	delete(store.bookmarks, bookmarkID)
	return nil
}

func (store *Store) bookmarkViewLocked(record bookmarkRecord) social.Bookmark {
	return social.Bookmark{
		ID:         record.id,
		ResourceID: record.resourceID,
		Resource:   store.resourceViewLocked(record.resourceID),
		CreatedAt:  record.createdAt,
	}
}

// # Comments

// AddComment stores a comment. A parent must belong to the same resource.
func (store *Store) AddComment(userID, resourceID string, input social.NewComment) (social.Comment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.resources[resourceID]; !ok {
		return social.Comment{}, apperr.NotFound("Resource")
	}
	if input.ParentID != nil {
		parent, ok := store.comments[*input.ParentID]
		if !ok || parent.ResourceID != resourceID {
			return social.Comment{}, apperr.NotFound("Parent comment")
		}
	}

	comment := social.Comment{
		ID:         newID(),
		ResourceID: resourceID,
		UserID:     userID,
		Content:    strings.TrimSpace(input.Content),
		ParentID:   input.ParentID,
		CreatedAt:  store.now(),
	}
	store.comments[comment.ID] = comment

	comment.User = store.userRefLocked(userID)
	return comment, nil
}

// Comments returns the comment tree of a resource, oldest first at every level.
func (store *Store) Comments(resourceID string) ([]social.Comment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.resources[resourceID]; !ok {
		return nil, apperr.NotFound("Resource")
	}

	flat := make([]social.Comment, 0)
	for _, comment := range store.comments {
		if comment.ResourceID == resourceID {
			comment.User = store.userRefLocked(comment.UserID)
			flat = append(flat, comment)
		}
	}
	sort.Slice(flat, func(i, j int) bool {
		if !flat[i].CreatedAt.Equal(flat[j].CreatedAt) {
			return flat[i].CreatedAt.Before(flat[j].CreatedAt)
		}
		return flat[i].ID < flat[j].ID
	})

	return threadComments(flat, nil), nil
}

func threadComments(flat []social.Comment, parentID *string) []social.Comment {
	var level []social.Comment
	for _, comment := range flat {
		if !sameParent(comment.ParentID, parentID) {
			continue
		}
		comment.Replies = threadComments(flat, &comment.ID)
		level = append(level, comment)
	}
	return level
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// # Ratings

// Rate inserts or replaces the score of userID and refreshes the resource average.
func (store *Store) Rate(userID, resourceID string, value int) (social.Rating, error) {
	if value < social.MinRating || value > social.MaxRating {
		return social.Rating{}, apperr.ValidationError("Rating must be between 1 and 5",
			apperr.FieldError{Field: "value", Message: "Must be between 1 and 5"})
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	record, ok := store.resources[resourceID]
	if !ok {
		return social.Rating{}, apperr.NotFound("Resource")
	}

	rating, found := store.ratingLocked(userID, resourceID)
	if !found {
		rating = social.Rating{ID: newID(), ResourceID: resourceID, UserID: userID}
	}
	rating.Value = value
	rating.CreatedAt = store.now()
	store.ratings[rating.ID] = rating

	average, _ := store.averageLocked(resourceID)
	record.resource.AverageRating = average
	return rating, nil
}

// RatingSummary aggregates the scores of a resource. viewerID may be empty.
func (store *Store) RatingSummary(resourceID, viewerID string) (social.RatingSummary, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.resources[resourceID]; !ok {
		return social.RatingSummary{}, apperr.NotFound("Resource")
	}

	average, count := store.averageLocked(resourceID)
	summary := social.RatingSummary{Average: average, Count: count}
	if viewerID != "" {
		if mine, ok := store.ratingLocked(viewerID, resourceID); ok {
			summary.UserRating = &mine
		}
	}
	return summary, nil
}

func (store *Store) ratingLocked(userID, resourceID string) (social.Rating, bool) {
	for _, rating := range store.ratings {
		if rating.UserID == userID && rating.ResourceID == resourceID {
			return rating, true
		}
	}
	return social.Rating{}, false
}

// averageLocked returns the mean score rounded to two decimals.
func (store *Store) averageLocked(resourceID string) (float64, int) {
	sum, count := 0, 0
	for _, rating := range store.ratings {
		if rating.ResourceID == resourceID {
			sum += rating.Value
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return math.Round(float64(sum)/float64(count)*100) / 100, count
}

// # Follows

// Follow makes followerID follow followingID.
func (store *Store) Follow(followerID, followingID string) error {
	if followerID == followingID {
		return apperr.ValidationError("You cannot follow yourself")
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[followingID]; !ok {
		return apperr.NotFound("User")
	}
	if store.followIndexLocked(followerID, followingID) >= 0 {
		return apperr.Conflict("Already following this user")
	}
	store.follows = append(store.follows, followRecord{
		followerID:  followerID,
		followingID: followingID,
		createdAt:   store.now(),
	})
	return nil
}

// Unfollow removes a follow edge.
func (store *Store) Unfollow(followerID, followingID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.followIndexLocked(followerID, followingID)
	if index < 0 {
		return apperr.NotFound("Follow")
	}
	store.follows = append(store.follows[:index], store.follows[index+1:]...)
	return nil
}

// IsFollowing reports whether followerID follows followingID.
func (store *Store) IsFollowing(followerID, followingID string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.followIndexLocked(followerID, followingID) >= 0
}

// Followers lists the users following userID.
func (store *Store) Followers(userID string) ([]auth.User, error) {
	return store.followEdges(userID, func(edge followRecord) (string, string) {
		return edge.followingID, edge.followerID
	})
}

// Following lists the users userID follows.
func (store *Store) Following(userID string) ([]auth.User, error) {
	return store.followEdges(userID, func(edge followRecord) (string, string) {
		return edge.followerID, edge.followingID
	})
}

// followEdges selects edges whose anchor is userID and returns the other ends.
func (store *Store) followEdges(userID string, ends func(followRecord) (anchor, other string)) ([]auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[userID]; !ok {
		return nil, apperr.NotFound("User")
	}

	users := make([]auth.User, 0)
	for _, edge := range store.follows {
		anchor, other := ends(edge)
		if anchor != userID {
			continue
		}
		if user := store.userRefLocked(other); user != nil {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (store *Store) followIndexLocked(followerID, followingID string) int {
	for i, edge := range store.follows {
		if edge.followerID == followerID && edge.followingID == followingID {
			return i
		}
	}
	return -1
}

// Feed returns resources uploaded by the users userID follows.
func (store *Store) Feed(userID string, page pagination.Params) ([]resource.Resource, int) {
	following, err := store.Following(userID)
	if err != nil {
		return []resource.Resource{}, 0
	}

	ids := make([]string, 0, len(following))
	for _, user := range following {
		ids = append(ids, user.ID)
	}
	return store.ResourcesByUsers(ids, page)
}
