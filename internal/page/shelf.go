// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/campusshare/internal/bookmark"
)

// Shelf is the bookmarks-only listing. Unbookmarking a card removes it.
type Shelf struct {
	deps Deps

	mu    sync.Mutex
	cards []*bookmark.Card
}

// NewShelf returns an empty shelf. Call [Shelf.Load] to fill it.
func NewShelf(deps Deps) *Shelf {
	return &Shelf{deps: deps}
}

// Load replaces the shelf with a fresh bookmark listing.
func (s *Shelf) Load(ctx context.Context) ([]*bookmark.Card, error) {
	saved, err := s.deps.Social.Bookmarks(ctx)
	if err != nil {
		return nil, err
	}

	loaded := cards(s.deps.Social, bookmark.Saved(saved), s.remove)

	s.mu.Lock()
	s.cards = loaded
	s.mu.Unlock()
	return slices.Clone(loaded), nil
}

// Cards returns the cards currently on the shelf.
func (s *Shelf) Cards() []*bookmark.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cards)
}

// Card returns the card of resourceID, or nil.
func (s *Shelf) Card(resourceID string) *bookmark.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, card := range s.cards {
		if card.ResourceID() == resourceID {
			return card
		}
	}
	return nil
}

func (s *Shelf) remove(resourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = slices.DeleteFunc(s.cards, func(card *bookmark.Card) bool {
		return card.ResourceID() == resourceID
	})
}
