// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"context"
	"errors"
	"sync"

	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/social"
)

// ErrBusy is returned by [Card.Toggle] while a previous toggle is still pending.
var ErrBusy = errors.New("bookmark: toggle already in flight")

// Remote is the subset of the social service a card calls.
type Remote interface {
	AddBookmark(ctx context.Context, resourceID string) (*social.Bookmark, error)
	DeleteBookmark(ctx context.Context, bookmarkID string) error
}

// Card is the bookmark state of one rendered resource.
//
// # Concurrency
//
// Toggles are serialized per card: while one is in flight every other call
// returns [ErrBusy] without touching the network.
type Card struct {
	remote       Remote
	resourceID   string
	onUnbookmark func(resourceID string)

	mu         sync.Mutex
	bookmarkID string
	bookmarked bool
	inFlight   bool
}

// NewCard seeds a card from a joined entry.
//
// onUnbookmark, when non-nil, runs after a confirmed removal. Bookmarks-only
// listings use it to drop the card.
func NewCard(remote Remote, entry Entry, onUnbookmark func(resourceID string)) *Card {
	return &Card{
		remote:       remote,
		resourceID:   entry.Resource.ID,
		onUnbookmark: onUnbookmark,
		bookmarkID:   entry.BookmarkID,
		bookmarked:   entry.Bookmarked,
	}
}

// ResourceID returns the resource the card shows.
func (c *Card) ResourceID() string { return c.resourceID }

// Bookmarked reports the card's local state.
func (c *Card) Bookmarked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bookmarked
}

// BookmarkID returns the server ID of the bookmark, or "".
func (c *Card) BookmarkID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bookmarkID
}

// Busy reports whether a toggle is pending. The button is disabled meanwhile.
func (c *Card) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

/*
Toggle flips the bookmark after the backend confirms it.

Returns:
  - bool: The bookmark state after the call
  - error: [ErrBusy] while a toggle is pending; CONSISTENCY_ERROR when the card
    is bookmarked without a known bookmark ID; otherwise the backend error. On
    any error the state is exactly what it was before the call.
*/
func (c *Card) Toggle(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return c.bookmarked, ErrBusy
	}
	bookmarked, bookmarkID := c.bookmarked, c.bookmarkID
	if bookmarked && bookmarkID == "" {
		c.mu.Unlock()
		return true, apperr.Consistency("bookmarked card " + c.resourceID + " has no bookmark id")
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	if bookmarked {
		return c.remove(ctx, bookmarkID)
	}
	return c.add(ctx)
}

func (c *Card) add(ctx context.Context) (bool, error) {
	created, err := c.remote.AddBookmark(ctx, c.resourceID)
	if err != nil {
		return false, err
	}
	if created == nil || created.ID == "" {
		return false, apperr.Consistency("bookmark created without an id")
	}

	c.mu.Lock()
	c.bookmarked, c.bookmarkID = true, created.ID
	c.mu.Unlock()
	return true, nil
}

func (c *Card) remove(ctx context.Context, bookmarkID string) (bool, error) {
	if err := c.remote.DeleteBookmark(ctx, bookmarkID); err != nil {
		return true, err
	}

	c.mu.Lock()
	c.bookmarked, c.bookmarkID = false, ""
	c.mu.Unlock()

	if c.onUnbookmark != nil {
		c.onUnbookmark(c.resourceID)
	}
	return false, nil
}
