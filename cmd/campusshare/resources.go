// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campusshare/internal/bookmark"
	"github.com/taibuivan/campusshare/internal/page"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
)

func newResourcesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"res"},
		Short:   "Browse, upload and review shared resources",
	}
	cmd.AddCommand(
		newResourcesListCommand(a),
		newResourcesBrowseCommand(a),
		newResourcesShowCommand(a),
		newResourcesUploadCommand(a),
		newResourcesDownloadCommand(a),
		newResourcesReportCommand(a),
		newResourcesRateCommand(a),
		newResourcesCommentCommand(a),
	)
	return cmd
}

// # Listing

func newResourcesListCommand(a *app) *cobra.Command {
	var (
		filters   page.Filters
		kind      string
		following bool
	)

	cmd := signedIn(a, &cobra.Command{
		Use:   "list",
		Short: "List resources with your bookmarks marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters.Type = resource.Type(kind)
			if following {
				filters.Tab = page.TabFollowing
			}

			dashboard := page.NewDashboard(a.deps, 0)
			defer dashboard.Close()

			dashboard.SetFilters(cmd.Context(), filters)
			loaded, err := dashboard.Load(cmd.Context())
			if err != nil {
				return failed(err)
			}
			a.printDashboard(loaded)
			return nil
		},
	})

	flags := cmd.Flags()
	flags.StringVar(&filters.Search, "search", "", "search term")
	flags.StringVar(&kind, "type", "", "resource type (notes, slides, textbook, assignment, exam, video, other)")
	flags.StringVar(&filters.SortBy, "sort", page.DashboardDefaultSort, "sort order (newest, popular, rating)")
	flags.BoolVar(&following, "following", false, "show uploads from people you follow")
	return cmd
}

func newResourcesBrowseCommand(a *app) *cobra.Command {
	return signedIn(a, &cobra.Command{
		Use:   "browse",
		Short: "Search interactively, one term per line on stdin",
		Long: "Each line read from stdin replaces the search term. Reloads wait until the\n" +
			"input has been stable for CAMPUS_DEBOUNCE, so fast typing issues one request.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.browse(cmd.Context())
		},
	})
}

// browse feeds stdin lines into a debounced dashboard and prints every load
// it reports. At end of input it waits for the load of the last term.
func (a *app) browse(ctx context.Context) error {
	type result struct {
		view *page.DashboardView
		err  error
	}
	results := make(chan result, 16)

	dashboard := page.NewDashboard(a.deps, a.cfg.Debounce)
	defer dashboard.Close()
	dashboard.OnLoad(func(loaded *page.DashboardView, err error) {
		results <- result{view: loaded, err: err}
	})

	var last *string
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		last = &term
		dashboard.SetFilters(ctx, page.Filters{Search: term})
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if last == nil {
		return nil
	}

	for {
		select {
		case got := <-results:
			if got.err != nil {
				return failed(got.err)
			}
			a.printf("# search %q\n", got.view.Filters.Search)
			a.printDashboard(got.view)
			if got.view.Filters.Search == *last {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *app) printDashboard(loaded *page.DashboardView) {
	if len(loaded.Entries) == 0 {
		a.printf("No resources found.\n")
	} else {
		a.printEntries(loaded.Entries)
		a.printf("%d of %d resources\n", len(loaded.Entries), loaded.Total)
	}

	if len(loaded.Recommendations) > 0 {
		a.printf("\nRecommended for you:\n")
		for _, rec := range loaded.Recommendations {
			a.printf("  %s  %s\n", rec.ID, rec.Title)
		}
	}
}

func (a *app) printEntries(entries []bookmark.Entry) {
	w, flush := a.table("ID", "TITLE", "TYPE", "RATING", "DOWNLOADS", "SAVED")
	defer flush()
	for _, entry := range entries {
		res := entry.Resource
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\t%s\n",
			res.ID, truncate(res.Title, 48), res.Type, res.AverageRating, res.DownloadCount,
			mark(entry.Bookmarked, "★"))
	}
}

// # Detail

func newResourcesShowCommand(a *app) *cobra.Command {
	return signedIn(a, &cobra.Command{
		Use:   "show ID",
		Short: "Show a resource with its rating, comments and similar resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := page.NewResourceDetail(a.deps, args[0]).Load(cmd.Context())
			if detail != nil && detail.NotFound {
				if apperr.IsTransport(err) {
					return failed(err)
				}
				return &userError{message: "Resource not found", cause: err}
			}
			if err != nil {
				return failed(err)
			}
			a.printDetail(detail)
			return nil
		},
	})
}

func (a *app) printDetail(detail *page.Detail) {
	res := detail.Resource
	a.printf("%s\n%s\n\n", res.Title, strings.Repeat("=", len([]rune(res.Title))))
	if res.Description != "" {
		a.printf("%s\n\n", res.Description)
	}

	w, flush := a.table("FIELD", "VALUE")
	fmt.Fprintf(w, "id\t%s\n", res.ID)
	fmt.Fprintf(w, "type\t%s\n", res.Type)
	fmt.Fprintf(w, "file\t%s (%d bytes)\n", res.FileName, res.FileSize)
	if author := res.AuthorName(); author != "" {
		fmt.Fprintf(w, "author\t%s\n", author)
	}
	if tags := res.TagNames(); len(tags) > 0 {
		fmt.Fprintf(w, "tags\t%s\n", strings.Join(tags, ", "))
	}
	fmt.Fprintf(w, "rating\t%.1f (%d votes, yours: %s)\n", detail.Rating.Average, detail.Rating.Count, ratingLabel(detail.Rating))
	fmt.Fprintf(w, "downloads\t%d\n", res.DownloadCount)
	fmt.Fprintf(w, "bookmarked\t%s\n", mark(detail.Card != nil && detail.Card.Bookmarked(), "yes"))
	flush()

	if len(detail.Comments) > 0 {
		a.printf("\nComments:\n")
		a.printComments(detail.Comments, 1)
	}
	if len(detail.Similar) > 0 {
		a.printf("\nSimilar:\n")
		for _, similar := range detail.Similar {
			a.printf("  %s  %s\n", similar.ID, similar.Title)
		}
	}
}

func (a *app) printComments(comments []social.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, comment := range comments {
		author := "someone"
		if comment.User != nil {
			author = comment.User.FullName()
		}
		a.printf("%s[%s] %s: %s\n", indent, comment.ID, author, comment.Content)
		a.printComments(comment.Replies, depth+1)
	}
}

func ratingLabel(summary social.RatingSummary) string {
	if mine := summary.Mine(); mine > 0 {
		return strconv.Itoa(mine)
	}
	return "-"
}

// # Actions

func newResourcesUploadCommand(a *app) *cobra.Command {
	form := page.DefaultUploadForm()
	var kind, sharing string

	cmd := signedIn(a, &cobra.Command{
		Use:   "upload FILE",
		Short: "Share a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			info, err := file.Stat()
			if err != nil {
				return err
			}

			form.Type = resource.Type(kind)
			form.SharingLevel = resource.SharingLevel(sharing)
			form.FileName = filepath.Base(args[0])
			form.Size = info.Size()
			form.Content = file
			if form.Title == "" {
				form.Title = strings.TrimSuffix(form.FileName, filepath.Ext(form.FileName))
			}

			created, err := page.SubmitUpload(cmd.Context(), a.deps, form)
			if err != nil {
				return failed(err)
			}
			a.printf("Uploaded %q as %s\n", created.Title, created.ID)
			return nil
		},
	})

	flags := cmd.Flags()
	flags.StringVar(&form.Title, "title", "", "title (defaults to the file name)")
	flags.StringVar(&form.Description, "description", "", "description")
	flags.StringVar(&kind, "type", string(form.Type), "resource type")
	flags.StringVar(&sharing, "sharing", string(form.SharingLevel), "sharing level (public, university, course)")
	flags.StringVar(&form.Tags, "tags", "", "comma separated tags")
	return cmd
}

func newResourcesDownloadCommand(a *app) *cobra.Command {
	var output string

	cmd := signedIn(a, &cobra.Command{
		Use:   "download ID",
		Short: "Print a download link, or save the file with --output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := page.NewResourceDetail(a.deps, args[0]).DownloadURL(cmd.Context())
			if err != nil {
				return failed(err)
			}
			if output == "" {
				a.printf("%s\n", link)
				return nil
			}

			written, err := fetch(cmd.Context(), link, output)
			if err != nil {
				return err
			}
			a.printf("Saved %d bytes to %s\n", written, output)
			return nil
		},
	})

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the file to this path")
	return cmd
}

// fetch downloads a pre-signed link into path.
func fetch(ctx context.Context, link, path string) (int64, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return 0, err
	}
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return 0, failed(apperr.Transport(err))
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download failed: %s", response.Status)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	written, err := io.Copy(file, response.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return written, err
}

func newResourcesReportCommand(a *app) *cobra.Command {
	var input resource.ReportInput
	var kind string

	cmd := signedIn(a, &cobra.Command{
		Use:   "report ID",
		Short: "Report a resource to the moderators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Type = resource.ReportType(kind)
			if err := page.NewResourceDetail(a.deps, args[0]).Report(cmd.Context(), input); err != nil {
				return failed(err)
			}
			a.printf("Thanks, the moderators will review it.\n")
			return nil
		},
	})

	cmd.Flags().StringVar(&kind, "type", string(resource.ReportOther), "inappropriate, copyright, spam or other")
	cmd.Flags().StringVar(&input.Reason, "reason", "", "what is wrong with the resource")
	return cmd
}

func newResourcesRateCommand(a *app) *cobra.Command {
	return signedIn(a, &cobra.Command{
		Use:   "rate ID STARS",
		Short: "Rate a resource from 1 to 5",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stars, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.New("STARS must be a number from 1 to 5")
			}
			summary, err := page.NewResourceDetail(a.deps, args[0]).Rate(cmd.Context(), stars)
			if err != nil {
				return failed(err)
			}
			a.printf("Rated %d. Average is now %.1f from %d votes.\n", stars, summary.Average, summary.Count)
			return nil
		},
	})
}

func newResourcesCommentCommand(a *app) *cobra.Command {
	var parent string

	cmd := signedIn(a, &cobra.Command{
		Use:   "comment ID TEXT",
		Short: "Comment on a resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parentID *string
			if parent != "" {
				parentID = &parent
			}
			comment, err := page.NewResourceDetail(a.deps, args[0]).Comment(cmd.Context(), args[1], parentID)
			if err != nil {
				return failed(err)
			}
			a.printf("Posted comment %s\n", comment.ID)
			return nil
		},
	})

	cmd.Flags().StringVar(&parent, "parent", "", "reply to this comment id")
	return cmd
}

// # Bookmarks

func newBookmarksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage saved resources",
	}
	cmd.AddCommand(
		signedIn(a, &cobra.Command{
			Use:   "list",
			Short: "List saved resources",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cards, err := page.NewShelf(a.deps).Load(cmd.Context())
				if err != nil {
					return failed(err)
				}
				if len(cards) == 0 {
					a.printf("No bookmarks yet.\n")
					return nil
				}
				w, flush := a.table("RESOURCE", "BOOKMARK")
				defer flush()
				for _, card := range cards {
					fmt.Fprintf(w, "%s\t%s\n", card.ResourceID(), card.BookmarkID())
				}
				return nil
			},
		}),
		signedIn(a, &cobra.Command{
			Use:   "toggle ID",
			Short: "Save or unsave a resource",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				detail, err := page.NewResourceDetail(a.deps, args[0]).Load(cmd.Context())
				if err != nil {
					return failed(err)
				}
				if detail.Card == nil {
					return errors.New("bookmarks are unavailable right now")
				}

				bookmarked, err := detail.Card.Toggle(cmd.Context())
				if err != nil {
					return present(err, page.BookmarkMessage)
				}
				if bookmarked {
					a.printf("Saved %q\n", detail.Resource.Title)
				} else {
					a.printf("Removed %q from bookmarks\n", detail.Resource.Title)
				}
				return nil
			},
		}),
	)
	return cmd
}
