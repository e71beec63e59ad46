// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/mockapi/mockapitest"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/resource"
)

/*
TestService_Resolve verifies a report can be resolved once and unknown decisions never leave the client.
*/
func TestService_Resolve(t *testing.T) {
	env := mockapitest.Start(t)
	ana := env.Register(t, "ana@campus.edu")
	res := env.Upload(t, ana.Token, "Copied Slides", "slides")
	require.NoError(t, resource.NewService(env.As(t, ana.Token)).Report(context.Background(), res.ID,
		resource.ReportInput{Type: resource.ReportCopyright, Reason: "from a paid course"}))

	service := admin.NewService(env.As(t, env.Admin(t).Token))
	ctx := context.Background()

	pending, err := service.Reports(ctx, admin.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending.Reports, 1)
	id := pending.Reports[0].ID

	_, err = service.Resolve(ctx, id, "escalate", "")
	assert.True(t, apperr.IsValidation(err))

	report, err := service.Resolve(ctx, id, admin.Reject, "fair use")
	require.NoError(t, err)
	assert.Equal(t, admin.StatusRejected, report.Status)
	assert.Equal(t, "fair use", report.AdminNotes)

	_, err = service.Resolve(ctx, id, admin.Approve, "")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestService_Ban verifies ban and unban return the updated account.
*/
func TestService_Ban(t *testing.T) {
	env := mockapitest.Start(t)
	ana := env.Register(t, "ana@campus.edu")
	service := admin.NewService(env.As(t, env.Admin(t).Token))
	ctx := context.Background()

	banned, err := service.Ban(ctx, ana.User.ID)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)

	unbanned, err := service.Unban(ctx, ana.User.ID)
	require.NoError(t, err)
	assert.False(t, unbanned.IsBanned)
}
