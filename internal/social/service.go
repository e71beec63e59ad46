// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/campusshare/internal/platform/apiclient"
	"github.com/taibuivan/campusshare/internal/platform/validate"
)

// Service maps the social endpoints onto named operations.
type Service struct {
	api *apiclient.Client
}

// NewService constructs a new [Service].
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

func resourcePath(id, suffix string) string {
	return "/resources/" + url.PathEscape(id) + suffix
}

func userPath(id, suffix string) string {
	return "/follows/users/" + url.PathEscape(id) + suffix
}

// # Comments

// Comments lists the comments of a resource.
func (service *Service) Comments(ctx context.Context, resourceID string) ([]Comment, error) {
	var out struct {
		Comments []Comment `json:"comments"`
	}
	if err := service.api.Get(ctx, resourcePath(resourceID, "/comments"), nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// AddComment posts a comment and returns the stored copy.
func (service *Service) AddComment(ctx context.Context, resourceID string, comment NewComment) (*Comment, error) {
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	var out struct {
		Comment Comment `json:"comment"`
	}
	if err := service.api.Post(ctx, resourcePath(resourceID, "/comments"), comment, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

// # Ratings

// Rating fetches the summary of a resource, including the caller's own score.
func (service *Service) Rating(ctx context.Context, resourceID string) (*RatingSummary, error) {
	var out RatingSummary
	if err := service.api.Get(ctx, resourcePath(resourceID, "/rating"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Rate sets the caller's score (1..5) for a resource.
func (service *Service) Rate(ctx context.Context, resourceID string, value int) (*Rating, error) {
	if err := validateRating(value); err != nil {
		return nil, err
	}

	var out struct {
		Rating Rating `json:"rating"`
	}
	body := map[string]int{"value": value}
	if err := service.api.Post(ctx, resourcePath(resourceID, "/rating"), body, &out); err != nil {
		return nil, err
	}
	return &out.Rating, nil
}

// # Bookmarks

// AddBookmark saves a resource and returns the created bookmark.
func (service *Service) AddBookmark(ctx context.Context, resourceID string) (*Bookmark, error) {
	if err := (&validate.Validator{}).Required("resource_id", resourceID).Err(); err != nil {
		return nil, err
	}

	var out struct {
		Bookmark Bookmark `json:"bookmark"`
	}
	body := map[string]string{"resource_id": resourceID}
	if err := service.api.Post(ctx, "/bookmarks", body, &out); err != nil {
		return nil, err
	}
	return &out.Bookmark, nil
}

// Bookmarks lists every bookmark of the caller.
func (service *Service) Bookmarks(ctx context.Context) ([]Bookmark, error) {
	var out struct {
		Bookmarks []Bookmark `json:"bookmarks"`
	}
	if err := service.api.Get(ctx, "/bookmarks", nil, &out); err != nil {
		return nil, err
	}
	return out.Bookmarks, nil
}

// DeleteBookmark removes a bookmark by its own ID (not the resource ID).
func (service *Service) DeleteBookmark(ctx context.Context, bookmarkID string) error {
	return service.api.Delete(ctx, "/bookmarks/"+url.PathEscape(bookmarkID), nil)
}

// # Follows

// Follow starts following a user.
func (service *Service) Follow(ctx context.Context, userID string) error {
	return service.api.Post(ctx, userPath(userID, ""), nil, nil)
}

// Unfollow stops following a user.
func (service *Service) Unfollow(ctx context.Context, userID string) error {
	return service.api.Delete(ctx, userPath(userID, ""), nil)
}

// IsFollowing reports whether the caller follows userID.
func (service *Service) IsFollowing(ctx context.Context, userID string) (bool, error) {
	var out struct {
		IsFollowing bool `json:"is_following"`
	}
	if err := service.api.Get(ctx, userPath(userID, "/check"), nil, &out); err != nil {
		return false, err
	}
	return out.IsFollowing, nil
}

/*
FollowStats fetches follower and following totals concurrently.

Returns:
  - *FollowStats: Both counters
  - error: The first failure of either call
*/
func (service *Service) FollowStats(ctx context.Context, userID string) (*FollowStats, error) {
	var stats FollowStats
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		total, err := service.followTotal(groupCtx, userID, "/followers")
		stats.Followers = total
		return err
	})
	group.Go(func() error {
		total, err := service.followTotal(groupCtx, userID, "/following")
		stats.Following = total
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (service *Service) followTotal(ctx context.Context, userID, suffix string) (int, error) {
	var out struct {
		Total int `json:"total"`
	}
	if err := service.api.Get(ctx, userPath(userID, suffix), nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

// # Feed

// ActivityFeed fetches resources uploaded by followed users.
func (service *Service) ActivityFeed(ctx context.Context, page, pageSize int) (*Feed, error) {
	query := url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}

	var out Feed
	if err := service.api.Get(ctx, "/follows/feed", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
