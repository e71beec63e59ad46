// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/mockapi/mockapitest"
	"github.com/taibuivan/campusshare/internal/page"
	"github.com/taibuivan/campusshare/internal/platform/config"
	"github.com/taibuivan/campusshare/internal/platform/tokenstore"
)

// cli runs commands against one backend, sharing a token store between runs
// the way separate invocations share the token file.
type cli struct {
	t     *testing.T
	env   *mockapitest.Env
	store tokenstore.Store
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, env: mockapitest.Start(t), store: tokenstore.NewMemoryStore("")}
}

// run executes one invocation and returns its output.
func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()

	cfg := &config.Config{
		Environment:    "test",
		APIURL:         c.env.BaseURL,
		RequestTimeout: 5 * time.Second,
		TokenStore:     config.TokenStoreMemory,
		Debounce:       20 * time.Millisecond,
	}

	var out bytes.Buffer
	a, err := buildApp(context.Background(), cfg, mockapitest.Logger(), strings.NewReader(stdin), &out, appOptions{
		store:      c.store,
		httpClient: c.env.HTTP.Client(),
	})
	require.NoError(c.t, err)
	defer a.Close()

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetErr(&out)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = root.ExecuteContext(ctx)
	return out.String(), err
}

func (c *cli) mustRun(stdin string, args ...string) string {
	c.t.Helper()
	out, err := c.run(stdin, args...)
	require.NoError(c.t, err, out)
	return out
}

/*
TestSessionCommands verifies that a login persists across invocations until logout.
*/
func TestSessionCommands(t *testing.T) {
	c := newCLI(t)
	c.env.Register(t, "ana@campus.edu")

	out := c.mustRun("", "login", "--email", "ana@campus.edu", "--password", mockapitest.Password)
	assert.Contains(t, out, "Signed in as Ana Student")

	out = c.mustRun("", "whoami")
	assert.Contains(t, out, "ana@campus.edu")

	c.mustRun("", "logout")
	_, err := c.run("", "whoami")
	assert.ErrorIs(t, err, errSignedOut)
}

/*
TestLogin_PasswordFromStdin verifies the prompt-less password path and the
generic invalid credentials message.
*/
func TestLogin_PasswordFromStdin(t *testing.T) {
	c := newCLI(t)
	c.env.Register(t, "ana@campus.edu")

	_, err := c.run("wrong-password\n", "login", "--email", "ana@campus.edu")
	require.Error(t, err)
	assert.Equal(t, page.MsgInvalidCredentials, err.Error())

	out := c.mustRun(mockapitest.Password+"\n", "login", "--email", "ana@campus.edu")
	assert.Contains(t, out, "Signed in")
}

/*
TestRegister_EmailTaken verifies registration errors are mapped by code.
*/
func TestRegister_EmailTaken(t *testing.T) {
	c := newCLI(t)
	c.env.Register(t, "ana@campus.edu")

	_, err := c.run("", "register", "--first-name", "Ana", "--last-name", "Again",
		"--email", "ana@campus.edu", "--password", "long-enough-password")
	require.Error(t, err)
	assert.Equal(t, page.MsgEmailTaken, err.Error())
}

/*
TestAdminCommands_RequireAdmin verifies the admin group is closed to students.
*/
func TestAdminCommands_RequireAdmin(t *testing.T) {
	c := newCLI(t)
	c.env.Register(t, "ana@campus.edu")

	c.mustRun("", "login", "--email", "ana@campus.edu", "--password", mockapitest.Password)
	_, err := c.run("", "admin", "stats")
	assert.ErrorIs(t, err, errNotAdmin)

	c.mustRun("", "login", "--email", mockapitest.AdminEmail, "--password", mockapitest.AdminPassword)
	out := c.mustRun("", "admin", "users")
	assert.Contains(t, out, "ana@campus.edu")
	assert.Contains(t, out, mockapitest.AdminEmail)
}

/*
TestResourceCommands verifies upload, listing and the bookmark toggle end to end.
*/
func TestResourceCommands(t *testing.T) {
	c := newCLI(t)
	c.env.Register(t, "ana@campus.edu")
	c.mustRun("", "login", "--email", "ana@campus.edu", "--password", mockapitest.Password)

	path := filepath.Join(t.TempDir(), "thermo-notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("entropy always wins"), 0o600))

	out := c.mustRun("", "resources", "upload", path, "--tags", "Physics, heat")
	require.Contains(t, out, `Uploaded "thermo-notes" as `)
	fields := strings.Fields(out)
	id := fields[len(fields)-1]

	out = c.mustRun("", "resources", "list", "--search", "thermo")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "1 of 1 resources")

	out = c.mustRun("", "bookmarks", "toggle", id)
	assert.Contains(t, out, "Saved")

	out = c.mustRun("", "bookmarks", "list")
	assert.Contains(t, out, id)

	out = c.mustRun("", "bookmarks", "toggle", id)
	assert.Contains(t, out, "Removed")

	out = c.mustRun("", "bookmarks", "list")
	assert.Contains(t, out, "No bookmarks yet.")
}

/*
TestBrowse_DebouncesInput verifies that a burst of search terms prints the
result of the last term.
*/
func TestBrowse_DebouncesInput(t *testing.T) {
	c := newCLI(t)
	ana := c.env.Register(t, "ana@campus.edu")
	c.env.Upload(t, ana.Token, "Graph Theory", "notes")
	c.mustRun("", "login", "--email", "ana@campus.edu", "--password", mockapitest.Password)

	out := c.mustRun("g\ngr\ngraph\n", "resources", "browse")
	assert.Contains(t, out, `# search "graph"`)
	assert.Contains(t, out, "Graph Theory")
}

/*
TestResourcesShow_NotFound verifies the terminal state of a missing resource.
*/
func TestResourcesShow_NotFound(t *testing.T) {
	c := newCLI(t)
	c.env.Register(t, "ana@campus.edu")
	c.mustRun("", "login", "--email", "ana@campus.edu", "--password", mockapitest.Password)

	_, err := c.run("", "resources", "show", "missing")
	require.Error(t, err)
	assert.Equal(t, "Resource not found", err.Error())
}
