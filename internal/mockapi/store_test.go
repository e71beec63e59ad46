// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/forum"
	"github.com/taibuivan/campusshare/internal/mockapi"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/platform/sec"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
	"github.com/taibuivan/campusshare/pkg/pagination"
)

func newStore(t *testing.T) *mockapi.Store {
	t.Helper()
	t.Cleanup(sec.WithHashCost(bcrypt.MinCost))
	return mockapi.NewStore()
}

func createUser(t *testing.T, store *mockapi.Store, email string) auth.User {
	t.Helper()
	user, err := store.CreateUser(auth.Registration{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password-123",
	}, sec.RoleStudent)
	require.NoError(t, err)
	return user
}

func createResource(t *testing.T, store *mockapi.Store, ownerID, title string, kind resource.Type) resource.Resource {
	t.Helper()
	created, err := store.CreateResource(ownerID, mockapi.NewUpload{
		Title:        title,
		Type:         kind,
		SharingLevel: resource.SharingPublic,
		FileName:     "file.pdf",
		Content:      []byte("%PDF"),
	})
	require.NoError(t, err)
	return created
}

/*
TestStore_Users covers registration conflicts, authentication and bans.
*/
func TestStore_Users(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "Ana@Campus.edu")

	assert.Equal(t, "ana@campus.edu", user.Email)
	assert.Equal(t, sec.RoleStudent, user.Role)

	_, err := store.CreateUser(auth.Registration{Email: "ana@campus.edu", Password: "password-123"}, sec.RoleStudent)
	assert.True(t, apperr.HasCode(err, apperr.CodeEmailTaken))

	_, err = store.Authenticate("ana@campus.edu", "wrong-password")
	assert.True(t, apperr.IsUnauthorized(err))

	found, err := store.Authenticate("ANA@campus.edu", "password-123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = store.SetBanned(user.ID, user.ID, true)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))

	moderator := createUser(t, store, "admin@campus.edu")
	_, err = store.SetBanned(moderator.ID, user.ID, true)
	require.NoError(t, err)

	_, err = store.Authenticate("ana@campus.edu", "password-123")
	assert.True(t, apperr.IsForbidden(err))
}

/*
TestStore_ListResources covers filters, sort orders and paging.
*/
func TestStore_ListResources(t *testing.T) {
	store := newStore(t)
	owner := createUser(t, store, "owner@campus.edu")

	notes := createResource(t, store, owner.ID, "Calculus notes", resource.TypeNotes)
	slides := createResource(t, store, owner.ID, "Physics slides", resource.TypeSlides)
	exam := createResource(t, store, owner.ID, "Calculus exam", resource.TypeExam)

	_, _, err := store.Download(slides.ID)
	require.NoError(t, err)

	all := pagination.Params{Page: 1, Limit: 20}

	tests := []struct {
		name   string
		filter mockapi.ListFilter
		want   []string
	}{
		{"newest first", mockapi.ListFilter{}, []string{exam.ID, slides.ID, notes.ID}},
		{"search", mockapi.ListFilter{Search: "calculus"}, []string{exam.ID, notes.ID}},
		{"type", mockapi.ListFilter{Type: string(resource.TypeNotes)}, []string{notes.ID}},
		{"popular", mockapi.ListFilter{SortBy: resource.SortPopular}, []string{slides.ID, exam.ID, notes.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total := store.ListResources(tt.filter, all)
			assert.Equal(t, len(tt.want), total)

			ids := make([]string, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	page, total := store.ListResources(mockapi.ListFilter{}, pagination.Params{Page: 2, Limit: 2})
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, notes.ID, page[0].ID)
}

/*
TestStore_Bookmarks covers duplicates, ownership and the recommendation exclusion.
*/
func TestStore_Bookmarks(t *testing.T) {
	store := newStore(t)
	owner := createUser(t, store, "owner@campus.edu")
	reader := createUser(t, store, "reader@campus.edu")
	item := createResource(t, store, owner.ID, "Notes", resource.TypeNotes)
	other := createResource(t, store, owner.ID, "Slides", resource.TypeSlides)

	bookmark, err := store.AddBookmark(reader.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, bookmark.Resource.ID)

	_, err = store.AddBookmark(reader.ID, item.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = store.AddBookmark(reader.ID, "missing")
	assert.True(t, apperr.IsNotFound(err))

	recommended := store.Recommendations(reader.ID, 10)
	require.Len(t, recommended, 1)
	assert.Equal(t, other.ID, recommended[0].ID)
	assert.Empty(t, store.Recommendations(owner.ID, 10))

	assert.True(t, apperr.IsForbidden(store.DeleteBookmark(owner.ID, bookmark.ID)))
	require.NoError(t, store.DeleteBookmark(reader.ID, bookmark.ID))
	assert.True(t, apperr.IsNotFound(store.DeleteBookmark(reader.ID, bookmark.ID)))
	assert.Empty(t, store.Bookmarks(reader.ID))
}

/*
TestStore_Ratings verifies upsert semantics and the rounded average.
*/
func TestStore_Ratings(t *testing.T) {
	store := newStore(t)
	owner := createUser(t, store, "owner@campus.edu")
	first := createUser(t, store, "first@campus.edu")
	second := createUser(t, store, "second@campus.edu")
	item := createResource(t, store, owner.ID, "Notes", resource.TypeNotes)

	_, err := store.Rate(first.ID, item.ID, 6)
	assert.True(t, apperr.IsValidation(err))

	_, err = store.Rate(first.ID, item.ID, 2)
	require.NoError(t, err)
	_, err = store.Rate(first.ID, item.ID, 4)
	require.NoError(t, err)
	_, err = store.Rate(second.ID, item.ID, 5)
	require.NoError(t, err)

	summary, err := store.RatingSummary(item.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 0.001)
	assert.Equal(t, 4, summary.Mine())

	anonymous, err := store.RatingSummary(item.ID, "")
	require.NoError(t, err)
	assert.Nil(t, anonymous.UserRating)
}

/*
TestStore_CommentsThread verifies replies nest under their parent.
*/
func TestStore_CommentsThread(t *testing.T) {
	store := newStore(t)
	owner := createUser(t, store, "owner@campus.edu")
	item := createResource(t, store, owner.ID, "Notes", resource.TypeNotes)

	root, err := store.AddComment(owner.ID, item.ID, social.NewComment{Content: "First"})
	require.NoError(t, err)
	_, err = store.AddComment(owner.ID, item.ID, social.NewComment{Content: "Reply", ParentID: &root.ID})
	require.NoError(t, err)

	missing := "missing"
	_, err = store.AddComment(owner.ID, item.ID, social.NewComment{Content: "Orphan", ParentID: &missing})
	assert.True(t, apperr.IsNotFound(err))

	thread, err := store.Comments(item.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, "Reply", thread[0].Replies[0].Content)
}

/*
TestStore_Follows covers self-follow, duplicates and the feed.
*/
func TestStore_Follows(t *testing.T) {
	store := newStore(t)
	ana := createUser(t, store, "ana@campus.edu")
	ben := createUser(t, store, "ben@campus.edu")
	item := createResource(t, store, ben.ID, "Ben's notes", resource.TypeNotes)

	assert.True(t, apperr.IsValidation(store.Follow(ana.ID, ana.ID)))
	require.NoError(t, store.Follow(ana.ID, ben.ID))
	assert.True(t, apperr.HasCode(store.Follow(ana.ID, ben.ID), apperr.CodeConflict))
	assert.True(t, store.IsFollowing(ana.ID, ben.ID))

	followers, err := store.Followers(ben.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, ana.ID, followers[0].ID)

	feed, total := store.Feed(ana.ID, pagination.Params{Page: 1, Limit: 20})
	assert.Equal(t, 1, total)
	assert.Equal(t, item.ID, feed[0].ID)

	require.NoError(t, store.Unfollow(ana.ID, ben.ID))
	assert.True(t, apperr.IsNotFound(store.Unfollow(ana.ID, ben.ID)))
}

/*
TestStore_Votes verifies a changed vote moves the count instead of adding one.
*/
func TestStore_Votes(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "voter@campus.edu")
	topic := store.CreateTopic(user.ID, forum.NewTopic{Title: "Exam tips", Content: "Share yours"})

	require.NoError(t, store.VoteTopic(user.ID, topic.ID, true))
	require.NoError(t, store.VoteTopic(user.ID, topic.ID, true))

	viewed, err := store.ViewTopic(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewed.UpvoteCount)
	assert.Equal(t, 0, viewed.DownvoteCount)

	require.NoError(t, store.VoteTopic(user.ID, topic.ID, false))
	viewed, err = store.ViewTopic(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, viewed.UpvoteCount)
	assert.Equal(t, 1, viewed.DownvoteCount)
	assert.Equal(t, 2, viewed.ViewCount)
}

/*
TestStore_ForumReplies covers threading, unanswered filtering and locked topics.
*/
func TestStore_ForumReplies(t *testing.T) {
	store := newStore(t)
	user := createUser(t, store, "poster@campus.edu")
	answered := store.CreateTopic(user.ID, forum.NewTopic{Title: "Answered", Content: "?"})
	open := store.CreateTopic(user.ID, forum.NewTopic{Title: "Open", Content: "?"})

	root, err := store.CreateReply(user.ID, answered.ID, forum.NewReply{Content: "Answer"})
	require.NoError(t, err)
	_, err = store.CreateReply(user.ID, answered.ID, forum.NewReply{Content: "Nested", ParentID: &root.ID})
	require.NoError(t, err)

	_, err = store.CreateReply(user.ID, open.ID, forum.NewReply{Content: "Wrong topic", ParentID: &root.ID})
	assert.True(t, apperr.IsNotFound(err))

	replies, err := store.Replies(answered.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	require.Len(t, replies[0].Replies, 1)

	unanswered, total := store.Topics(forum.SortUnanswered, "", pagination.Params{Page: 1, Limit: 20})
	assert.Equal(t, 1, total)
	assert.Equal(t, open.ID, unanswered[0].ID)

	require.NoError(t, store.SetTopicFlags(open.ID, true, true))
	_, err = store.CreateReply(user.ID, open.ID, forum.NewReply{Content: "Too late"})
	assert.True(t, apperr.IsForbidden(err))

	newest, _ := store.Topics(forum.SortNewest, "", pagination.Params{Page: 1, Limit: 20})
	assert.Equal(t, open.ID, newest[0].ID)
	assert.True(t, newest[0].IsPinned)
}

/*
TestStore_ResolveReport verifies approval withdraws the resource and that a
report resolves at most once.
*/
func TestStore_ResolveReport(t *testing.T) {
	store := newStore(t)
	owner := createUser(t, store, "owner@campus.edu")
	reporter := createUser(t, store, "reporter@campus.edu")
	moderator := createUser(t, store, "mod@campus.edu")
	item := createResource(t, store, owner.ID, "Copied notes", resource.TypeNotes)

	report, err := store.FileReport(reporter.ID, item.ID, resource.ReportInput{Type: resource.ReportCopyright, Reason: "Copied"})
	require.NoError(t, err)
	assert.Equal(t, admin.StatusPending, report.Status)
	require.NotNil(t, report.Resource)

	assert.Equal(t, 1, store.Analytics().PendingReports)

	resolved, err := store.ResolveReport(moderator.ID, report.ID, admin.Approve, "Confirmed")
	require.NoError(t, err)
	assert.Equal(t, admin.StatusApproved, resolved.Status)
	require.NotNil(t, resolved.ReviewedBy)
	assert.Equal(t, moderator.ID, *resolved.ReviewedBy)

	_, err = store.ResolveReport(moderator.ID, report.ID, admin.Reject, "")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, total := store.ListResources(mockapi.ListFilter{}, pagination.Params{Page: 1, Limit: 20})
	assert.Zero(t, total)

	_, err = store.ViewResource(item.ID, reporter.ID, false)
	assert.True(t, apperr.IsNotFound(err))
	_, err = store.ViewResource(item.ID, owner.ID, false)
	assert.NoError(t, err)

	stats := store.Analytics()
	assert.Equal(t, 0, stats.PendingReports)
	assert.Equal(t, 1, stats.TotalResources)
	assert.Equal(t, 0, stats.ApprovedResources)
	assert.Len(t, store.Reports(admin.StatusApproved), 1)
	assert.Empty(t, store.Reports(admin.StatusPending))
}
