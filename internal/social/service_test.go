// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/mockapi/mockapitest"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/social"
)

/*
TestService_RejectsBadInputLocally verifies validation happens before the request.
*/
func TestService_RejectsBadInputLocally(t *testing.T) {
	env := mockapitest.Start(t)
	service := social.NewService(env.Client(t, nil))
	ctx := context.Background()

	_, err := service.Rate(ctx, "any", social.MaxRating+1)
	assert.True(t, apperr.IsValidation(err))

	_, err = service.AddComment(ctx, "any", social.NewComment{Content: ""})
	assert.True(t, apperr.IsValidation(err))
}

/*
TestService_FollowsAndFeed verifies follow counters and the activity feed.
*/
func TestService_FollowsAndFeed(t *testing.T) {
	env := mockapitest.Start(t)
	ana := env.Register(t, "ana@campus.edu")
	bob := env.Register(t, "bob@campus.edu")
	env.Upload(t, bob.Token, "Bob's Notes", "notes")

	service := social.NewService(env.As(t, ana.Token))
	ctx := context.Background()

	require.NoError(t, service.Follow(ctx, bob.User.ID))

	following, err := service.IsFollowing(ctx, bob.User.ID)
	require.NoError(t, err)
	assert.True(t, following)

	stats, err := service.FollowStats(ctx, bob.User.ID)
	require.NoError(t, err)
	assert.Equal(t, social.FollowStats{Followers: 1, Following: 0}, *stats)

	feed, err := service.ActivityFeed(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, feed.Resources, 1)
	assert.Equal(t, "Bob's Notes", feed.Resources[0].Title)

	require.NoError(t, service.Unfollow(ctx, bob.User.ID))
	following, err = service.IsFollowing(ctx, bob.User.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

/*
TestService_RatingSummary verifies the caller's own rating is reported.
*/
func TestService_RatingSummary(t *testing.T) {
	env := mockapitest.Start(t)
	ana := env.Register(t, "ana@campus.edu")
	res := env.Upload(t, ana.Token, "Optics", "notes")

	service := social.NewService(env.As(t, ana.Token))
	ctx := context.Background()

	_, err := service.Rate(ctx, res.ID, 4)
	require.NoError(t, err)

	summary, err := service.Rating(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, 4, summary.Mine())
}
