// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package social is the domain service module for interactions between users
and resources: comments, ratings, bookmarks, follows and the activity feed.
*/
package social

import (
	"time"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/validate"
	"github.com/taibuivan/campusshare/internal/resource"
)

// # Rating Bounds

const (
	MinRating = 1
	MaxRating = 5
)

// # Domain Entities

// Comment is a message under a resource. Replies nest one level per parent.
type Comment struct {
	ID         string     `json:"id"`
	ResourceID string     `json:"resource_id"`
	UserID     string     `json:"user_id"`
	User       *auth.User `json:"user,omitempty"`
	Content    string     `json:"content"`
	ParentID   *string    `json:"parent_id,omitempty"`
	Replies    []Comment  `json:"replies,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Rating is one user's score for one resource.
type Rating struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	UserID     string    `json:"user_id"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingSummary aggregates the scores of a resource.
//
// The zero value is the fallback shown when the summary cannot be loaded.
type RatingSummary struct {
	Average    float64 `json:"average"`
	Count      int     `json:"count"`
	UserRating *Rating `json:"user_rating,omitempty"`
}

// Mine returns the caller's own score, or 0 when they have not rated.
func (s RatingSummary) Mine() int {
	if s.UserRating == nil {
		return 0
	}
	return s.UserRating.Value
}

// Bookmark links the caller to a saved resource. Its ID is the join key used
// to annotate resource listings.
type Bookmark struct {
	ID         string            `json:"id"`
	ResourceID string            `json:"resource_id"`
	Resource   resource.Resource `json:"resource"`
	CreatedAt  time.Time         `json:"created_at"`
}

// FollowStats counts both directions of a user's follow graph.
type FollowStats struct {
	Followers int
	Following int
}

// Feed is one page of resources uploaded by followed users.
type Feed struct {
	Resources []resource.Resource `json:"resources"`
	Total     int                 `json:"total"`
	Page      int                 `json:"page"`
	PageSize  int                 `json:"page_size"`
}

// # Payloads

// NewComment is the body of a comment creation.
type NewComment struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
}

// Validate rejects blank comments.
func (c NewComment) Validate() error {
	return (&validate.Validator{}).
		Required("content", c.Content).
		MaxLen("content", c.Content, 2000).
		Err()
}

func validateRating(value int) error {
	return (&validate.Validator{}).Range("value", value, MinRating, MaxRating).Err()
}
