// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campusshare/internal/page"
)

// newFollowCommand builds `follow` when follow is true and `unfollow` otherwise.
// Both are idempotent: nothing is sent when the state already matches.
func newFollowCommand(a *app, follow bool) *cobra.Command {
	use, short, done := "follow USER_ID", "Follow a user", "Following %s\n"
	if !follow {
		use, short, done = "unfollow USER_ID", "Stop following a user", "No longer following %s\n"
	}

	return signedIn(a, &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profilePage := page.NewPublicProfile(a.deps, args[0])
			profile, err := profilePage.Load(cmd.Context())
			if err != nil {
				return failed(err)
			}

			if profile.Following != follow {
				if _, err := profilePage.ToggleFollow(cmd.Context()); err != nil {
					return failed(err)
				}
			}
			a.printf(done, profile.User.FullName())
			return nil
		},
	})
}

func newUserCommand(a *app) *cobra.Command {
	return signedIn(a, &cobra.Command{
		Use:   "user USER_ID",
		Short: "Show a user's public profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := page.NewPublicProfile(a.deps, args[0]).Load(cmd.Context())
			if err != nil {
				return failed(err)
			}

			a.printf("%s\n", profile.User.FullName())
			a.printf("%d followers · %d following", profile.Stats.Followers, profile.Stats.Following)
			switch {
			case profile.Own:
				a.printf(" · this is you\n")
			case profile.Following:
				a.printf(" · you follow them\n")
			default:
				a.printf("\n")
			}

			if len(profile.Resources) == 0 {
				a.printf("\nNo public uploads.\n")
				return nil
			}
			a.printf("\n")
			w, flush := a.table("ID", "TITLE", "TYPE")
			defer flush()
			for _, res := range profile.Resources {
				fmt.Fprintf(w, "%s\t%s\t%s\n", res.ID, truncate(res.Title, 48), res.Type)
			}
			return nil
		},
	})
}

func newFeedCommand(a *app) *cobra.Command {
	var pageNumber, pageSize int

	cmd := signedIn(a, &cobra.Command{
		Use:   "feed",
		Short: "Recent uploads from people you follow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			feed, err := a.deps.Social.ActivityFeed(cmd.Context(), pageNumber, pageSize)
			if err != nil {
				return failed(err)
			}
			if len(feed.Resources) == 0 {
				a.printf("Nothing new from the people you follow.\n")
				return nil
			}

			w, flush := a.table("ID", "TITLE", "AUTHOR", "UPLOADED")
			defer flush()
			for _, res := range feed.Resources {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", res.ID, truncate(res.Title, 40), res.AuthorName(), res.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	})

	cmd.Flags().IntVar(&pageNumber, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", page.DashboardPageSize, "items per page")
	return cmd
}
