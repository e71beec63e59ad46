// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/platform/ctxutil"
	"github.com/taibuivan/campusshare/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.RequestID(ctx))
	assert.Equal(t, "req-42", ctxutil.RequestID(ctxutil.WithRequestID(ctx, "req-42")))
}

/*
TestLogger verifies the fallback to the default logger, including a nil one.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), ctxutil.Logger(ctx))
	assert.Same(t, slog.Default(), ctxutil.Logger(ctxutil.WithLogger(ctx, nil)))

	scoped := slog.New(slog.NewJSONHandler(io.Discard, nil))
	assert.Same(t, scoped, ctxutil.Logger(ctxutil.WithLogger(ctx, scoped)))
}

func TestClaims(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.Claims(ctx))
	assert.Empty(t, ctxutil.UserID(ctx))

	ctx = ctxutil.WithClaims(ctx, &sec.AuthClaims{UserID: "u-7", Role: string(sec.RoleStudent)})
	claims := ctxutil.Claims(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "u-7", ctxutil.UserID(ctx))
}
