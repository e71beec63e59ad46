// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/page"
	"github.com/taibuivan/campusshare/pkg/pointer"
)

// # Authentication Commands

func newLoginCommand(a *app) *cobra.Command {
	var creds auth.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Long:  "Sign in with email and password. When --password is omitted it is read from the first line of stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if creds.Password == "" {
				password, err := a.readLine()
				if err != nil {
					return err
				}
				creds.Password = password
			}

			result, err := a.session.Login(cmd.Context(), creds)
			if err != nil {
				return present(err, page.LoginMessage)
			}
			a.printf("Signed in as %s <%s>\n", result.User.FullName(), result.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCommand(a *app) *cobra.Command {
	var reg auth.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reg.Password == "" {
				password, err := a.readLine()
				if err != nil {
					return err
				}
				reg.Password = password
			}

			result, err := a.session.Register(cmd.Context(), reg)
			if err != nil {
				return present(err, page.RegisterMessage)
			}
			a.printf("Welcome, %s! You are signed in.\n", result.User.FirstName)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&reg.FirstName, "first-name", "", "first name")
	flags.StringVar(&reg.LastName, "last-name", "", "last name")
	flags.StringVar(&reg.Email, "email", "", "account email")
	flags.StringVar(&reg.Password, "password", "", "password (min 8 characters)")
	flags.StringVar(&reg.StudentID, "student-id", "", "student id")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.session.Logout(cmd.Context())
			a.printf("Signed out.\n")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return signedIn(a, &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a.printUser(a.session.State().User())
			return nil
		},
	})
}

func newProfileCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}
	cmd.AddCommand(newProfileUpdateCommand(a))
	return cmd
}

func newProfileUpdateCommand(a *app) *cobra.Command {
	var (
		update              auth.ProfileUpdate
		first, last, sid, m string
		year                int
	)

	cmd := signedIn(a, &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		Long:  "Update the fields given as flags. Fields that are not passed keep their value.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("first-name") {
				update.FirstName = pointer.To(first)
			}
			if flags.Changed("last-name") {
				update.LastName = pointer.To(last)
			}
			if flags.Changed("student-id") {
				update.StudentID = pointer.To(sid)
			}
			if flags.Changed("major") {
				update.Major = pointer.To(m)
			}
			if flags.Changed("year") {
				update.Year = pointer.To(year)
			}
			if update.IsEmpty() {
				return errors.New("nothing to update; pass at least one field flag")
			}

			user, err := page.NewProfileEditor(a.deps).Save(cmd.Context(), update)
			if err != nil {
				return failed(err)
			}
			a.printUser(user)
			return nil
		},
	})

	flags := cmd.Flags()
	flags.StringVar(&first, "first-name", "", "first name")
	flags.StringVar(&last, "last-name", "", "last name")
	flags.StringVar(&sid, "student-id", "", "student id")
	flags.StringVar(&m, "major", "", "major")
	flags.IntVar(&year, "year", 0, "year of study")
	return cmd
}

// # Helpers

// readLine reads one trimmed line from the command input.
func (a *app) readLine() (string, error) {
	line, err := bufio.NewReader(a.in).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" && err != nil {
		return "", errors.New("a password is required on stdin or via --password")
	}
	return line, nil
}

func (a *app) printUser(user *auth.User) {
	if user == nil {
		return
	}
	w, flush := a.table("FIELD", "VALUE")
	defer flush()

	fmt.Fprintf(w, "id\t%s\n", user.ID)
	fmt.Fprintf(w, "name\t%s\n", user.FullName())
	fmt.Fprintf(w, "email\t%s\n", user.Email)
	fmt.Fprintf(w, "role\t%s\n", user.Role)
	fmt.Fprintf(w, "status\t%s\n", user.Status())
	if user.StudentID != "" {
		fmt.Fprintf(w, "student id\t%s\n", user.StudentID)
	}
	if user.Major != "" {
		fmt.Fprintf(w, "major\t%s\n", user.Major)
	}
	if user.Year > 0 {
		fmt.Fprintf(w, "year\t%d\n", user.Year)
	}
}
