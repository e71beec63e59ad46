// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mockapitest runs the reference backend behind httptest for package tests.

Usage:

	env := mockapitest.Start(t)
	api := env.Client(t, nil)
	student := env.Register(t, "ana@campus.edu")
*/
package mockapitest

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/mockapi"
	"github.com/taibuivan/campusshare/internal/platform/apiclient"
	"github.com/taibuivan/campusshare/internal/platform/config"
	"github.com/taibuivan/campusshare/internal/platform/constants"
	"github.com/taibuivan/campusshare/internal/platform/sec"
	"github.com/taibuivan/campusshare/internal/resource"
)

// # Fixtures

const (
	Secret        = "mockapitest-secret"
	AdminEmail    = "admin@campus.edu"
	AdminPassword = "admin-password"
	Password      = "student-password"
)

// Env is a running backend plus the knobs tests need to drive it.
type Env struct {
	Server *mockapi.Server
	HTTP   *httptest.Server

	// BaseURL is the API root, ending in /api/v1.
	BaseURL string
}

// Start boots a backend with a seeded administrator. It is closed on cleanup.
func Start(t testing.TB) *Env {
	t.Helper()

	restore := sec.WithHashCost(bcrypt.MinCost)
	t.Cleanup(restore)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.BackendConfig{
		Environment:       "test",
		ServerPort:        "0",
		JWTSecret:         Secret,
		TokenTTL:          time.Hour,
		SeedAdminEmail:    AdminEmail,
		SeedAdminPassword: AdminPassword,
	}
	server, err := mockapi.New(ctx, cfg, Logger())
	require.NoError(t, err)

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	return &Env{Server: server, HTTP: httpServer, BaseURL: httpServer.URL + "/api/v1"}
}

// Logger discards output so test logs stay readable.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Client builds an API client against the backend. A nil source sends anonymous requests.
func (env *Env) Client(t testing.TB, tokens apiclient.TokenSource) *apiclient.Client {
	t.Helper()

	client, err := apiclient.New(apiclient.Options{
		BaseURL:    env.BaseURL,
		HTTPClient: env.HTTP.Client(),
		Logger:     Logger(),
	})
	require.NoError(t, err)

	if tokens != nil {
		client.SetTokenSource(tokens)
	}
	return client
}

// As builds a client that always sends token.
func (env *Env) As(t testing.TB, token string) *apiclient.Client {
	return env.Client(t, Static(token))
}

// Static adapts a fixed token to [apiclient.TokenSource].
func Static(token string) apiclient.TokenSource {
	return apiclient.TokenFunc(func(context.Context) (string, error) { return token, nil })
}

// # Accounts

// Register signs up a student through the public endpoint.
func (env *Env) Register(t testing.TB, email string) *auth.Result {
	t.Helper()

	name := strings.Split(email, "@")[0]
	result, err := auth.NewService(env.Client(t, nil)).Register(context.Background(), auth.Registration{
		FirstName: strings.ToUpper(name[:1]) + name[1:],
		LastName:  "Student",
		Email:     email,
		Password:  Password,
	})
	require.NoError(t, err)
	return result
}

// Admin signs the seeded administrator in.
func (env *Env) Admin(t testing.TB) *auth.Result {
	t.Helper()

	result, err := auth.NewService(env.Client(t, nil)).Login(context.Background(), auth.Credentials{
		Email:    AdminEmail,
		Password: AdminPassword,
	})
	require.NoError(t, err)
	return result
}

// Token mints a session token for userID valid for ttl. A negative ttl yields an expired token.
func Token(t testing.TB, userID string, ttl time.Duration) string {
	t.Helper()

	service, err := sec.NewTokenService(Secret, constants.AuthIssuer, ttl)
	require.NoError(t, err)

	token, err := service.GenerateAccessToken(userID, "", string(sec.RoleStudent))
	require.NoError(t, err)
	return token
}

// # Content

// Upload publishes a small text file as the owner of token.
func (env *Env) Upload(t testing.TB, token, title string, kind resource.Type, tags ...string) *resource.Resource {
	t.Helper()

	created, err := resource.NewService(env.As(t, token)).Upload(context.Background(), resource.Upload{
		Title:    title,
		Type:     kind,
		Tags:     tags,
		FileName: strings.ReplaceAll(strings.ToLower(title), " ", "-") + ".txt",
		Size:     int64(len(title)),
		Content:  strings.NewReader(title),
	})
	require.NoError(t, err)
	return created
}
