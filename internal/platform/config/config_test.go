// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/platform/config"
)

/*
TestLoad_Defaults verifies the client defaults when only the token file is pinned.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CAMPUS_TOKEN_FILE", "/tmp/campusshare-test/token")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.APIURL)
	assert.Equal(t, config.TokenStoreFile, cfg.TokenStore)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "/tmp/campusshare-test/token", cfg.TokenFile)
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_RedisRequiresURL verifies that the redis store cannot start without a URL.
*/
func TestLoad_RedisRequiresURL(t *testing.T) {
	t.Setenv("CAMPUS_TOKEN_FILE", "/tmp/campusshare-test/token")
	t.Setenv("CAMPUS_TOKEN_STORE", "redis")

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("CAMPUS_REDIS_URL", "redis://localhost:6379/0")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.TokenStoreRedis, cfg.TokenStore)
}

/*
TestLoad_UnknownStore verifies that a typo in the store kind fails fast.
*/
func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("CAMPUS_TOKEN_FILE", "/tmp/campusshare-test/token")
	t.Setenv("CAMPUS_TOKEN_STORE", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoadBackend_Defaults verifies the reference backend defaults.
*/
func TestLoadBackend_Defaults(t *testing.T) {
	cfg, err := config.LoadBackend()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
}
