// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/bookmark"
	"github.com/taibuivan/campusshare/internal/mockapi/mockapitest"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
)

// fakeRemote records calls and answers with canned results.
type fakeRemote struct {
	mu      sync.Mutex
	adds    int
	deletes []string

	addErr    error
	deleteErr error

	// gate, when set, blocks every call until it is closed.
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeRemote) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeRemote) AddBookmark(_ context.Context, resourceID string) (*social.Bookmark, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds++
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &social.Bookmark{ID: "b-" + resourceID, ResourceID: resourceID}, nil
}

func (f *fakeRemote) DeleteBookmark(_ context.Context, bookmarkID string) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, bookmarkID)
	return f.deleteErr
}

func entry(id string, bookmarkID string) bookmark.Entry {
	return bookmark.Entry{
		Resource:   resource.Resource{ID: id},
		Bookmarked: bookmarkID != "",
		BookmarkID: bookmarkID,
	}
}

/*
TestCard_Toggle walks a card through add and remove.
*/
func TestCard_Toggle(t *testing.T) {
	remote := &fakeRemote{}
	var removed []string
	card := bookmark.NewCard(remote, entry("r1", ""), func(id string) { removed = append(removed, id) })
	ctx := context.Background()

	state, err := card.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, state)
	assert.Equal(t, "b-r1", card.BookmarkID())

	state, err = card.Toggle(ctx)
	require.NoError(t, err)
	assert.False(t, state)
	assert.Empty(t, card.BookmarkID())
	assert.Equal(t, []string{"b-r1"}, remote.deletes)
	assert.Equal(t, []string{"r1"}, removed)
}

/*
TestCard_FailureLeavesStateUnchanged verifies no half-applied toggle survives an error.
*/
func TestCard_FailureLeavesStateUnchanged(t *testing.T) {
	offline := apperr.Transport(errors.New("connection refused"))
	ctx := context.Background()

	t.Run("add", func(t *testing.T) {
		card := bookmark.NewCard(&fakeRemote{addErr: offline}, entry("r1", ""), nil)

		state, err := card.Toggle(ctx)
		assert.True(t, apperr.IsTransport(err))
		assert.False(t, state)
		assert.False(t, card.Bookmarked())
		assert.False(t, card.Busy())
	})

	t.Run("remove", func(t *testing.T) {
		called := false
		card := bookmark.NewCard(&fakeRemote{deleteErr: offline}, entry("r1", "b1"), func(string) { called = true })

		state, err := card.Toggle(ctx)
		assert.Error(t, err)
		assert.True(t, state)
		assert.True(t, card.Bookmarked())
		assert.Equal(t, "b1", card.BookmarkID())
		assert.False(t, called)
	})
}

/*
TestCard_MissingIDIsConsistencyError verifies no request is made for an unusable card.
*/
func TestCard_MissingIDIsConsistencyError(t *testing.T) {
	remote := &fakeRemote{}
	card := bookmark.NewCard(remote, bookmark.Entry{Resource: resource.Resource{ID: "r1"}, Bookmarked: true}, nil)

	state, err := card.Toggle(context.Background())
	assert.True(t, apperr.IsConsistency(err))
	assert.True(t, state)
	assert.True(t, card.Bookmarked())
	assert.Empty(t, remote.deletes)
	assert.Zero(t, remote.adds)
}

/*
TestCard_SerializesToggles verifies a second toggle is refused while one is pending.
*/
func TestCard_SerializesToggles(t *testing.T) {
	remote := &fakeRemote{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	card := bookmark.NewCard(remote, entry("r1", ""), nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := card.Toggle(ctx)
		done <- err
	}()
	<-remote.entered

	assert.True(t, card.Busy())
	_, err := card.Toggle(ctx)
	assert.ErrorIs(t, err, bookmark.ErrBusy)

	close(remote.gate)
	require.NoError(t, <-done)
	assert.True(t, card.Bookmarked())
	assert.False(t, card.Busy())
	assert.Equal(t, 1, remote.adds)
}

/*
TestCard_MatchesServer toggles against the reference backend and compares
local state with a fresh bookmark fetch after every step.
*/
func TestCard_MatchesServer(t *testing.T) {
	env := mockapitest.Start(t)
	student := env.Register(t, "ana@campus.edu")
	notes := env.Upload(t, student.Token, "Graph Notes", resource.TypeNotes)
	slides := env.Upload(t, student.Token, "Graph Slides", resource.TypeSlides)

	service := social.NewService(env.As(t, student.Token))
	ctx := context.Background()

	fetch := func() []bookmark.Entry {
		saved, err := service.Bookmarks(ctx)
		require.NoError(t, err)
		return bookmark.Join([]resource.Resource{*notes, *slides}, saved)
	}

	entries := fetch()
	cards := []*bookmark.Card{
		bookmark.NewCard(service, entries[0], nil),
		bookmark.NewCard(service, entries[1], nil),
	}

	for _, step := range []int{0, 1, 0, 0, 1, 0} {
		_, err := cards[step].Toggle(ctx)
		require.NoError(t, err)

		for i, fresh := range fetch() {
			assert.Equal(t, fresh.Bookmarked, cards[i].Bookmarked(), "card %d", i)
			assert.Equal(t, fresh.BookmarkID, cards[i].BookmarkID(), "card %d", i)
		}
	}
}
