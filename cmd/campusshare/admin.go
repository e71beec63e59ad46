// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/guard"
	"github.com/taibuivan/campusshare/internal/page"
)

// newAdminCommand groups the moderation console. Every subcommand requires an
// administrator session.
func newAdminCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "admin",
		Short:             "Moderation console (administrators only)",
		PersistentPreRunE: a.require(guard.Admin),
	}
	cmd.AddCommand(
		newAdminStatsCommand(a),
		newAdminReportsCommand(a),
		newAdminResolveCommand(a),
		newAdminUsersCommand(a),
		newAdminBanCommand(a, true),
		newAdminBanCommand(a, false),
		newAdminTopicCommand(a),
	)
	return cmd
}

func newAdminStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Platform analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := a.deps.Admin.Analytics(cmd.Context())
			if err != nil {
				return failed(err)
			}

			w, flush := a.table("METRIC", "VALUE")
			defer flush()
			fmt.Fprintf(w, "users\t%d (%d active)\n", stats.TotalUsers, stats.ActiveUsers)
			fmt.Fprintf(w, "resources\t%d (%d approved)\n", stats.TotalResources, stats.ApprovedResources)
			fmt.Fprintf(w, "downloads\t%d\n", stats.TotalDownloads)
			fmt.Fprintf(w, "views\t%d\n", stats.TotalViews)
			fmt.Fprintf(w, "comments\t%d\n", stats.TotalComments)
			fmt.Fprintf(w, "ratings\t%d\n", stats.TotalRatings)
			fmt.Fprintf(w, "pending reports\t%d\n", stats.PendingReports)
			return nil
		},
	}
}

func newAdminReportsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List pending reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console := page.NewConsole(a.deps)
			loaded, err := console.Load(cmd.Context())
			if err != nil {
				return failed(err)
			}
			if len(loaded.Reports) == 0 {
				a.printf("No pending reports.\n")
				return nil
			}

			w, flush := a.table("ID", "RESOURCE", "TYPE", "REPORTER", "REASON")
			defer flush()
			for _, report := range loaded.Reports {
				title := report.ResourceID
				if report.Resource != nil {
					title = report.Resource.Title
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", report.ID, truncate(title, 32), report.Type, report.ReporterName(), truncate(report.Reason, 40))
			}
			return nil
		},
	}
}

func newAdminResolveCommand(a *app) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:       "resolve REPORT_ID approve|reject",
		Short:     "Uphold (approve) or dismiss (reject) a report",
		Args:      cobra.MatchAll(cobra.ExactArgs(2), validDecision),
		ValidArgs: []string{string(admin.Approve), string(admin.Reject)},
		RunE: func(cmd *cobra.Command, args []string) error {
			console := page.NewConsole(a.deps)
			if _, err := console.Load(cmd.Context()); err != nil {
				return failed(err)
			}
			if err := console.Resolve(cmd.Context(), args[0], admin.Decision(args[1]), notes); err != nil {
				return failed(err)
			}
			outcome := "dismissed"
			if admin.Decision(args[1]) == admin.Approve {
				outcome = "upheld"
			}
			a.printf("Report %s %s. %d pending.\n", args[0], outcome, len(console.View().Reports))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "note stored with the decision")
	return cmd
}

func validDecision(_ *cobra.Command, args []string) error {
	switch admin.Decision(args[1]) {
	case admin.Approve, admin.Reject:
		return nil
	default:
		return fmt.Errorf("decision must be %q or %q", admin.Approve, admin.Reject)
	}
}

func newAdminUsersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := page.NewConsole(a.deps).Load(cmd.Context())
			if err != nil {
				return failed(err)
			}

			w, flush := a.table("ID", "NAME", "EMAIL", "ROLE", "STATUS")
			defer flush()
			for _, user := range loaded.Users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", user.ID, user.FullName(), user.Email, user.Role, user.Status())
			}
			return nil
		},
	}
}

func newAdminBanCommand(a *app, banned bool) *cobra.Command {
	use, short, done := "ban USER_ID", "Ban a user", "banned"
	if !banned {
		use, short, done = "unban USER_ID", "Lift a ban", "unbanned"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			console := page.NewConsole(a.deps)
			if _, err := console.Load(cmd.Context()); err != nil {
				return failed(err)
			}
			if err := console.SetBanned(cmd.Context(), args[0], banned); err != nil {
				return failed(err)
			}
			a.printf("User %s %s.\n", args[0], done)
			return nil
		},
	}
}

func newAdminTopicCommand(a *app) *cobra.Command {
	var flags admin.TopicFlags

	cmd := &cobra.Command{
		Use:   "topic TOPIC_ID",
		Short: "Pin or lock a forum topic",
		Long:  "Set the topic's pinned and locked flags. Flags that are not passed are sent as false.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := page.NewConsole(a.deps).ModerateTopic(cmd.Context(), args[0], flags); err != nil {
				return failed(err)
			}
			a.printf("Topic %s: pinned=%t locked=%t\n", args[0], flags.IsPinned, flags.IsLocked)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.IsPinned, "pin", false, "pin the topic")
	cmd.Flags().BoolVar(&flags.IsLocked, "lock", false, "lock the topic")
	return cmd
}
