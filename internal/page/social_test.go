// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/mockapi/mockapitest"
	"github.com/taibuivan/campusshare/internal/page"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/pkg/pointer"
)

/*
TestShelf_UnbookmarkRemovesCard verifies the bookmarks-only listing drops a
card once its removal is confirmed.
*/
func TestShelf_UnbookmarkRemovesCard(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	notes := env.Upload(t, bob.Token, "Algebra Notes", resource.TypeNotes)
	slides := env.Upload(t, bob.Token, "Algebra Slides", resource.TypeSlides)

	ana, _ := student(t, env, "ana@campus.edu")
	ctx := context.Background()
	for _, id := range []string{notes.ID, slides.ID} {
		_, err := ana.Social.AddBookmark(ctx, id)
		require.NoError(t, err)
	}

	shelf := page.NewShelf(ana)
	loaded, err := shelf.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	card := shelf.Card(notes.ID)
	require.NotNil(t, card)
	state, err := card.Toggle(ctx)
	require.NoError(t, err)
	assert.False(t, state)

	remaining := shelf.Cards()
	require.Len(t, remaining, 1)
	assert.Equal(t, slides.ID, remaining[0].ResourceID())

	saved, err := ana.Social.Bookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, slides.ID, saved[0].ResourceID)
}

/*
TestShelf_FailedUnbookmarkKeepsCard verifies a failed delete leaves the shelf as it was.
*/
func TestShelf_FailedUnbookmarkKeepsCard(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	notes := env.Upload(t, bob.Token, "Algebra Notes", resource.TypeNotes)
	registered := env.Register(t, "ana@campus.edu")
	_, err := page.NewDeps(env.As(t, registered.Token), nil).Social.AddBookmark(context.Background(), notes.ID)
	require.NoError(t, err)

	baseURL := failing(t, env, func(r *http.Request) bool {
		return r.Method == http.MethodDelete && strings.Contains(r.URL.Path, "/bookmarks/")
	})
	ana := signIn(t, baseURL, "ana@campus.edu", mockapitest.Password)

	shelf := page.NewShelf(ana)
	_, err = shelf.Load(context.Background())
	require.NoError(t, err)

	state, err := shelf.Card(notes.ID).Toggle(context.Background())
	assert.Error(t, err)
	assert.True(t, state)
	assert.Len(t, shelf.Cards(), 1)
	assert.Equal(t, page.MsgBookmarkFailed, page.BookmarkMessage(err))
}

/*
TestPublicProfile_FollowToggle verifies the follower counter follows the toggle.
*/
func TestPublicProfile_FollowToggle(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	env.Upload(t, bob.Token, "Bob Notes", resource.TypeNotes)
	carol := env.Register(t, "carol@campus.edu")
	env.Upload(t, carol.Token, "Carol Notes", resource.TypeNotes)

	ana, _ := student(t, env, "ana@campus.edu")
	ctx := context.Background()

	profilePage := page.NewPublicProfile(ana, bob.User.ID)
	profile, err := profilePage.Load(ctx)
	require.NoError(t, err)

	assert.False(t, profile.Own)
	assert.False(t, profile.Following)
	assert.Equal(t, "Bob", profile.User.FirstName)
	require.Len(t, profile.Resources, 1)
	assert.Equal(t, "Bob Notes", profile.Resources[0].Title)

	following, err := profilePage.ToggleFollow(ctx)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, 1, profilePage.Profile().Stats.Followers)

	reloaded, err := page.NewPublicProfile(ana, bob.User.ID).Load(ctx)
	require.NoError(t, err)
	assert.True(t, reloaded.Following)
	assert.Equal(t, 1, reloaded.Stats.Followers)

	following, err = profilePage.ToggleFollow(ctx)
	require.NoError(t, err)
	assert.False(t, following)
	assert.Zero(t, profilePage.Profile().Stats.Followers)
}

/*
TestPublicProfile_Own verifies one cannot follow oneself and the viewer's
record is used when there are no uploads.
*/
func TestPublicProfile_Own(t *testing.T) {
	env := mockapitest.Start(t)
	ana, registered := student(t, env, "ana@campus.edu")
	ctx := context.Background()

	profilePage := page.NewPublicProfile(ana, registered.User.ID)
	profile, err := profilePage.Load(ctx)
	require.NoError(t, err)
	assert.True(t, profile.Own)
	assert.Equal(t, "ana@campus.edu", profile.User.Email)

	_, err = profilePage.ToggleFollow(ctx)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))
}

/*
TestPublicProfile_UnknownUploader falls back to a placeholder name.
*/
func TestPublicProfile_UnknownUploader(t *testing.T) {
	env := mockapitest.Start(t)
	bob := env.Register(t, "bob@campus.edu")
	ana, _ := student(t, env, "ana@campus.edu")

	profile, err := page.NewPublicProfile(ana, bob.User.ID).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Academic User", profile.User.FullName())
	assert.Empty(t, profile.Resources)
}

/*
TestProfileEditor_Save replaces the session user.
*/
func TestProfileEditor_Save(t *testing.T) {
	env := mockapitest.Start(t)
	ana, _ := student(t, env, "ana@campus.edu")
	editor := page.NewProfileEditor(ana)

	updated, err := editor.Save(context.Background(), auth.ProfileUpdate{
		Major: pointer.To("Mathematics"),
		Year:  pointer.To(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", updated.Major)

	current := editor.Current()
	require.NotNil(t, current)
	assert.Equal(t, "Mathematics", current.Major)
	assert.Equal(t, 3, current.Year)

	_, err = editor.Save(context.Background(), auth.ProfileUpdate{})
	assert.True(t, apperr.IsValidation(err))
}
