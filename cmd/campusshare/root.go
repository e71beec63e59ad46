// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campusshare/internal/guard"
	"github.com/taibuivan/campusshare/internal/page"
	"github.com/taibuivan/campusshare/internal/platform/constants"
)

// newRootCommand builds the command tree.
//
// Every command restores the persisted session first. Commands behind a
// guard replace that hook with [app.require].
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               constants.AppName,
		Short:             "Share and discover academic resources from the terminal",
		Version:           constants.AppVersion,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.restore,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)

	root.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newProfileCommand(a),
		newResourcesCommand(a),
		newBookmarksCommand(a),
		newFollowCommand(a, true),
		newFollowCommand(a, false),
		newUserCommand(a),
		newFeedCommand(a),
		newForumCommand(a),
		newAdminCommand(a),
	)
	return root
}

// signedIn marks cmd as requiring an authenticated session.
func signedIn(a *app, cmd *cobra.Command) *cobra.Command {
	cmd.PreRunE = a.require(guard.Authenticated)
	return cmd
}

// # Errors

// userError carries the message shown to the user while keeping the cause
// reachable through [errors.Is] and [errors.As].
type userError struct {
	message string
	cause   error
}

func (e *userError) Error() string { return e.message }
func (e *userError) Unwrap() error { return e.cause }

// failed maps err onto the generic action message.
func failed(err error) error {
	return present(err, page.ActionMessage)
}

// present maps err through message unless it is nil.
func present(err error, message func(error) string) error {
	if err == nil {
		return nil
	}
	return &userError{message: message(err), cause: err}
}

// # Output

// table writes aligned columns; call flush when done.
func (a *app) table(header ...string) (*tabwriter.Writer, func()) {
	writer := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(header, "\t"))
	return writer, func() { _ = writer.Flush() }
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// mark renders a boolean column.
func mark(on bool, label string) string {
	if on {
		return label
	}
	return "-"
}

// truncate shortens s to n runes for table columns.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
