// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campusshare/internal/forum"
	"github.com/taibuivan/campusshare/internal/page"
)

func newForumCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forum",
		Short: "Discussion topics",
	}
	cmd.AddCommand(
		newForumListCommand(a),
		newForumShowCommand(a),
		newForumPostCommand(a),
		newForumReplyCommand(a),
		newForumVoteCommand(a),
	)
	return cmd
}

func newForumListCommand(a *app) *cobra.Command {
	var sortBy string

	cmd := signedIn(a, &cobra.Command{
		Use:   "list",
		Short: "List topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := page.NewForumFeed(a.deps).Sort(cmd.Context(), sortBy)
			if err != nil {
				return failed(err)
			}
			if len(list.Topics) == 0 {
				a.printf("No topics yet. Start one with `forum post`.\n")
				return nil
			}

			w, flush := a.table("ID", "TITLE", "REPLIES", "SCORE", "FLAGS")
			defer flush()
			for _, topic := range list.Topics {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", topic.ID, truncate(topic.Title, 48), topic.ReplyCount, topic.Score(), topicFlags(topic))
			}
			return nil
		},
	})

	cmd.Flags().StringVar(&sortBy, "sort", forum.SortNewest, "newest, popular or unanswered")
	return cmd
}

func newForumShowCommand(a *app) *cobra.Command {
	return signedIn(a, &cobra.Command{
		Use:   "show TOPIC_ID",
		Short: "Show a topic and its replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, replies, err := page.NewThread(a.deps, args[0]).Load(cmd.Context())
			if err != nil {
				return failed(err)
			}

			a.printf("%s  [%s] score %d\n", topic.Title, topicFlags(*topic), topic.Score())
			a.printf("%s\n\n", topic.Content)
			a.printReplies(replies, 0)
			return nil
		},
	})
}

func (a *app) printReplies(replies []forum.Reply, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, reply := range replies {
		author := "someone"
		if reply.User != nil {
			author = reply.User.FullName()
		}
		a.printf("%s[%s] %s (%+d): %s\n", indent, reply.ID, author, reply.Score(), reply.Content)
		a.printReplies(reply.Replies, depth+1)
	}
}

func topicFlags(topic forum.Topic) string {
	var flags []string
	if topic.IsPinned {
		flags = append(flags, "pinned")
	}
	if topic.IsLocked {
		flags = append(flags, "locked")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func newForumPostCommand(a *app) *cobra.Command {
	return signedIn(a, &cobra.Command{
		Use:   "post TITLE CONTENT",
		Short: "Start a topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, err := page.NewForumFeed(a.deps).Post(cmd.Context(), forum.NewTopic{Title: args[0], Content: args[1]})
			if err != nil {
				return failed(err)
			}
			a.printf("Posted topic %s\n", topic.ID)
			return nil
		},
	})
}

func newForumReplyCommand(a *app) *cobra.Command {
	var parent string

	cmd := signedIn(a, &cobra.Command{
		Use:   "reply TOPIC_ID CONTENT",
		Short: "Reply to a topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parentID *string
			if parent != "" {
				parentID = &parent
			}
			reply, err := page.NewThread(a.deps, args[0]).Reply(cmd.Context(), args[1], parentID)
			if err != nil {
				return failed(err)
			}
			a.printf("Posted reply %s\n", reply.ID)
			return nil
		},
	})

	cmd.Flags().StringVar(&parent, "parent", "", "answer this reply id")
	return cmd
}

func newForumVoteCommand(a *app) *cobra.Command {
	var replyID string
	var down bool

	cmd := signedIn(a, &cobra.Command{
		Use:   "vote TOPIC_ID",
		Short: "Vote on a topic, or on one of its replies with --reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thread := page.NewThread(a.deps, args[0])

			var err error
			if replyID != "" {
				err = thread.VoteReply(cmd.Context(), replyID, !down)
			} else {
				err = thread.VoteTopic(cmd.Context(), !down)
			}
			if err != nil {
				return failed(err)
			}

			topic, _ := thread.Topic()
			if topic != nil {
				a.printf("Voted. Topic score is %d.\n", topic.Score())
			}
			return nil
		},
	})

	cmd.Flags().StringVar(&replyID, "reply", "", "vote on this reply instead of the topic")
	cmd.Flags().BoolVar(&down, "down", false, "downvote")
	return cmd
}
