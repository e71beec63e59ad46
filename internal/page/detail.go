// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"sync"

	"github.com/taibuivan/campusshare/internal/bookmark"
	"github.com/taibuivan/campusshare/internal/platform/ctxutil"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
	"github.com/taibuivan/campusshare/internal/view"
)

// SimilarLimit is how many related resources the detail page shows.
const SimilarLimit = 4

// Detail is the aggregated state of the resource detail page.
type Detail struct {
	Resource resource.Resource
	Rating   social.RatingSummary
	Similar  []resource.Resource
	Comments []social.Comment
	Card     *bookmark.Card

	// NotFound is the terminal state rendered when the resource itself failed to load.
	NotFound bool
}

// ResourceDetail aggregates everything shown about one resource.
type ResourceDetail struct {
	deps Deps
	id   string

	mu     sync.Mutex
	detail *Detail
}

// NewResourceDetail returns the page for resource id.
func NewResourceDetail(deps Deps, id string) *ResourceDetail {
	return &ResourceDetail{deps: deps, id: id}
}

// Detail returns the last loaded state, or nil.
func (p *ResourceDetail) Detail() *Detail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail
}

/*
Load fetches the resource and its surroundings concurrently.

Description: The resource is REQUIRED; when it fails the page enters the
not-found state and the cause is returned. Rating, similar resources,
comments and the caller's bookmarks are OPTIONAL and degrade to zero values.

Returns:
  - *Detail: Never nil
  - error: The resource failure, if any
*/
func (p *ResourceDetail) Load(ctx context.Context) (*Detail, error) {
	var (
		detail    Detail
		bookmarks []social.Bookmark
	)

	err := view.Gather(ctx,
		view.Required("resource", func(ctx context.Context) error {
			found, err := p.deps.Resources.Get(ctx, p.id)
			if err != nil {
				return err
			}
			detail.Resource = *found
			return nil
		}),
		view.Optional("rating", func(ctx context.Context) error {
			summary, err := p.deps.Social.Rating(ctx, p.id)
			if err != nil {
				return err
			}
			detail.Rating = *summary
			return nil
		}, func() { detail.Rating = social.RatingSummary{} }),
		view.Optional("similar", func(ctx context.Context) error {
			found, err := p.deps.Resources.Similar(ctx, p.id, SimilarLimit)
			detail.Similar = found
			return err
		}, func() { detail.Similar = nil }),
		view.Optional("comments", func(ctx context.Context) error {
			found, err := p.deps.Social.Comments(ctx, p.id)
			detail.Comments = found
			return err
		}, func() { detail.Comments = nil }),
		view.Optional("bookmarks", func(ctx context.Context) error {
			found, err := p.deps.Social.Bookmarks(ctx)
			bookmarks = found
			return err
		}, func() { bookmarks = nil }),
	)
	if err != nil {
		terminal := &Detail{NotFound: true}
		p.set(terminal)
		return terminal, err
	}

	entry := bookmark.Join([]resource.Resource{detail.Resource}, bookmarks)[0]
	detail.Card = bookmark.NewCard(p.deps.Social, entry, nil)

	p.set(&detail)
	return &detail, nil
}

// # Actions

// Rate stores the caller's score, then refreshes the summary.
//
// A failed refresh keeps the previous summary; the score itself is saved.
func (p *ResourceDetail) Rate(ctx context.Context, value int) (social.RatingSummary, error) {
	if _, err := p.deps.Social.Rate(ctx, p.id, value); err != nil {
		return p.rating(), err
	}

	summary, err := p.deps.Social.Rating(ctx, p.id)
	if err != nil {
		ctxutil.Logger(ctx).Warn("rating_refresh_failed", "resource_id", p.id, "error", err)
		return p.rating(), nil
	}

	p.mu.Lock()
	if p.detail != nil {
		p.detail.Rating = *summary
	}
	p.mu.Unlock()
	return *summary, nil
}

// Comment posts a comment or a reply, then refreshes the thread.
func (p *ResourceDetail) Comment(ctx context.Context, content string, parentID *string) (*social.Comment, error) {
	created, err := p.deps.Social.AddComment(ctx, p.id, social.NewComment{Content: content, ParentID: parentID})
	if err != nil {
		return nil, err
	}

	comments, err := p.deps.Social.Comments(ctx, p.id)
	if err != nil {
		ctxutil.Logger(ctx).Warn("comments_refresh_failed", "resource_id", p.id, "error", err)
		return created, nil
	}

	p.mu.Lock()
	if p.detail != nil {
		p.detail.Comments = comments
	}
	p.mu.Unlock()
	return created, nil
}

// Report files a complaint about the resource.
func (p *ResourceDetail) Report(ctx context.Context, input resource.ReportInput) error {
	return p.deps.Resources.Report(ctx, p.id, input)
}

// DownloadURL asks for a short-lived link to the file.
func (p *ResourceDetail) DownloadURL(ctx context.Context) (string, error) {
	return p.deps.Resources.DownloadURL(ctx, p.id)
}

func (p *ResourceDetail) set(detail *Detail) {
	p.mu.Lock()
	p.detail = detail
	p.mu.Unlock()
}

func (p *ResourceDetail) rating() social.RatingSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.detail == nil {
		return social.RatingSummary{}
	}
	return p.detail.Rating
}
