// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/platform/sec"
	"github.com/taibuivan/campusshare/internal/platform/tokenstore"
)

/*
TestStores_Contract runs the shared load/save/clear contract against every implementation.
*/
func TestStores_Contract(t *testing.T) {
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	stores := map[string]tokenstore.Store{
		"memory": tokenstore.NewMemoryStore(""),
		"file":   tokenstore.NewFileStore(filepath.Join(t.TempDir(), "nested", "token")),
		"redis":  tokenstore.NewRedisStore(client, "campusshare:test:token"),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			token, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)

			require.NoError(t, store.Save(ctx, "opaque-token"))
			token, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "opaque-token", token)

			require.NoError(t, store.Clear(ctx))
			require.NoError(t, store.Clear(ctx))
			token, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)
		})
	}
}

/*
TestFileStore_Permissions verifies the token file is readable by its owner only.
*/
func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := tokenstore.NewFileStore(path)
	require.NoError(t, store.Save(context.Background(), "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

/*
TestRedisStore_FollowsTokenExpiry verifies the key TTL tracks the JWT exp claim.
*/
func TestRedisStore_FollowsTokenExpiry(t *testing.T) {
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	defer client.Close()

	issuer, err := sec.NewTokenService("secret", "campusshare.test", time.Hour)
	require.NoError(t, err)
	token, err := issuer.GenerateAccessToken("u1", "ada@uni.edu", "student")
	require.NoError(t, err)

	store := tokenstore.NewRedisStore(client, "session")
	require.NoError(t, store.Save(context.Background(), token))

	ttl := server.TTL("session")
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 60)

	server.FastForward(2 * time.Hour)
	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
