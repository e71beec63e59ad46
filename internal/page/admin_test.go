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

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/forum"
	"github.com/taibuivan/campusshare/internal/mockapi/mockapitest"
	"github.com/taibuivan/campusshare/internal/page"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/resource"
)

// moderationFixture uploads a resource, reports it and returns the admin deps.
func moderationFixture(t *testing.T, env *mockapitest.Env) (page.Deps, *auth.Result, *resource.Resource) {
	t.Helper()

	bob := env.Register(t, "bob@campus.edu")
	notes := env.Upload(t, bob.Token, "Leaked Exam", resource.TypeExam)

	ana, _ := student(t, env, "ana@campus.edu")
	err := ana.Resources.Report(context.Background(), notes.ID, resource.ReportInput{
		Type:   resource.ReportCopyright,
		Reason: "This is the real exam",
	})
	require.NoError(t, err)

	return signIn(t, env.BaseURL, mockapitest.AdminEmail, mockapitest.AdminPassword), bob, notes
}

func findUser(users []auth.User, id string) auth.User {
	for _, user := range users {
		if user.ID == id {
			return user
		}
	}
	return auth.User{}
}

/*
TestConsole_Load fills every panel.
*/
func TestConsole_Load(t *testing.T) {
	env := mockapitest.Start(t)
	moderator, _, notes := moderationFixture(t, env)

	loaded, err := page.NewConsole(moderator).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, loaded.Reports, 1)
	assert.Equal(t, notes.ID, loaded.Reports[0].ResourceID)
	assert.Len(t, loaded.Users, 3)
	assert.Equal(t, 1, loaded.Analytics.PendingReports)
	assert.Equal(t, 1, loaded.Analytics.TotalResources)
}

/*
TestConsole_ResolveRemovesReport verifies the optimistic removal sticks on success.
*/
func TestConsole_ResolveRemovesReport(t *testing.T) {
	env := mockapitest.Start(t)
	moderator, _, notes := moderationFixture(t, env)
	ctx := context.Background()

	console := page.NewConsole(moderator)
	loaded, err := console.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, console.Resolve(ctx, loaded.Reports[0].ID, admin.Approve, "confirmed"))
	assert.Empty(t, console.View().Reports)
	assert.False(t, console.Busy(loaded.Reports[0].ID))

	_, err = moderator.Resources.Get(ctx, notes.ID)
	require.NoError(t, err, "administrators still see withdrawn resources")

	err = console.Resolve(ctx, loaded.Reports[0].ID, admin.Reject, "")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestConsole_ResolveRollsBack verifies a rejected resolution puts the report back.
*/
func TestConsole_ResolveRollsBack(t *testing.T) {
	env := mockapitest.Start(t)
	moderator, _, _ := moderationFixture(t, env)
	ctx := context.Background()

	console := page.NewConsole(moderator)
	loaded, err := console.Load(ctx)
	require.NoError(t, err)
	reportID := loaded.Reports[0].ID

	// Another moderator gets there first.
	_, err = moderator.Admin.Resolve(ctx, reportID, admin.Reject, "")
	require.NoError(t, err)

	err = console.Resolve(ctx, reportID, admin.Approve, "")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	reports := console.View().Reports
	require.Len(t, reports, 1)
	assert.Equal(t, reportID, reports[0].ID)
	assert.False(t, console.Busy(reportID))
}

/*
TestConsole_BanToggle verifies ban and unban patch the local list.
*/
func TestConsole_BanToggle(t *testing.T) {
	env := mockapitest.Start(t)
	moderator, bob, _ := moderationFixture(t, env)
	ctx := context.Background()

	console := page.NewConsole(moderator)
	_, err := console.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, console.SetBanned(ctx, bob.User.ID, true))
	assert.Equal(t, auth.StatusBanned, findUser(console.View().Users, bob.User.ID).Status())

	require.NoError(t, console.SetBanned(ctx, bob.User.ID, false))
	assert.Equal(t, auth.StatusActive, findUser(console.View().Users, bob.User.ID).Status())

	adminUser := moderator.Session.State().User()
	err = console.SetBanned(ctx, adminUser.ID, true)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))

	err = console.SetBanned(ctx, "missing", true)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestConsole_BanRollsBack verifies a failed ban restores the previous status.
*/
func TestConsole_BanRollsBack(t *testing.T) {
	env := mockapitest.Start(t)
	_, bob, _ := moderationFixture(t, env)
	ctx := context.Background()

	baseURL := failing(t, env, func(r *http.Request) bool {
		return strings.HasSuffix(r.URL.Path, "/ban")
	})
	moderator := signIn(t, baseURL, mockapitest.AdminEmail, mockapitest.AdminPassword)

	console := page.NewConsole(moderator)
	_, err := console.Load(ctx)
	require.NoError(t, err)

	err = console.SetBanned(ctx, bob.User.ID, true)
	assert.Error(t, err)
	assert.Equal(t, auth.StatusActive, findUser(console.View().Users, bob.User.ID).Status())
	assert.False(t, console.Busy(bob.User.ID))
}

/*
TestConsole_ModerateTopic locks a topic against new replies.
*/
func TestConsole_ModerateTopic(t *testing.T) {
	env := mockapitest.Start(t)
	moderator, _, _ := moderationFixture(t, env)
	ana := signIn(t, env.BaseURL, "ana@campus.edu", mockapitest.Password)
	ctx := context.Background()

	topic, err := ana.Forum.CreateTopic(ctx, forum.NewTopic{Title: "Off topic", Content: "..."})
	require.NoError(t, err)

	console := page.NewConsole(moderator)
	require.NoError(t, console.ModerateTopic(ctx, topic.ID, admin.TopicFlags{IsLocked: true}))

	_, err = ana.Forum.CreateReply(ctx, topic.ID, forum.NewReply{Content: "still here"})
	assert.True(t, apperr.IsForbidden(err))
}
