// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/taibuivan/campusshare/internal/forum"
	"github.com/taibuivan/campusshare/internal/platform/ctxutil"
	"github.com/taibuivan/campusshare/internal/platform/validate"
	"github.com/taibuivan/campusshare/internal/view"
)

// # Topic Feed

// ForumFeed lists topics in one sort order.
type ForumFeed struct {
	deps   Deps
	latest view.Latest[*forum.TopicList]

	mu     sync.Mutex
	sortBy string
}

// NewForumFeed returns the feed sorted newest first.
func NewForumFeed(deps Deps) *ForumFeed {
	return &ForumFeed{deps: deps, sortBy: forum.SortNewest}
}

// SortBy returns the current order.
func (f *ForumFeed) SortBy() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortBy
}

// Topics returns the last committed listing.
func (f *ForumFeed) Topics() (*forum.TopicList, bool) {
	return f.latest.Get()
}

// Sort switches the order and reloads.
func (f *ForumFeed) Sort(ctx context.Context, sortBy string) (*forum.TopicList, error) {
	if err := (&validate.Validator{}).OneOf("sort_by", sortBy, forum.Sorts...).Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.sortBy = sortBy
	f.mu.Unlock()
	return f.Load(ctx)
}

// Load fetches the topics in the current order.
func (f *ForumFeed) Load(ctx context.Context) (*forum.TopicList, error) {
	f.mu.Lock()
	query := forum.TopicQuery{SortBy: f.sortBy}
	ctx, gen := f.latest.Begin(ctx)
	f.mu.Unlock()

	topics, err := f.deps.Forum.Topics(ctx, query)
	if !f.latest.Current(gen) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	if !f.latest.Commit(gen, topics) {
		return nil, ErrSuperseded
	}
	return topics, nil
}

// Post creates a topic and reloads the feed.
//
// A failed reload does not fail the post; the topic is returned either way.
func (f *ForumFeed) Post(ctx context.Context, topic forum.NewTopic) (*forum.Topic, error) {
	created, err := f.deps.Forum.CreateTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	if _, err := f.Load(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		ctxutil.Logger(ctx).Warn("topics_refresh_failed", "topic_id", created.ID, "error", err)
	}
	return created, nil
}

// # Topic Thread

// Thread is one topic with its replies.
type Thread struct {
	deps    Deps
	topicID string

	mu      sync.Mutex
	topic   *forum.Topic
	replies []forum.Reply
}

// NewThread returns the page of topicID.
func NewThread(deps Deps, topicID string) *Thread {
	return &Thread{deps: deps, topicID: topicID}
}

// Topic returns the last loaded topic and its replies.
func (t *Thread) Topic() (*forum.Topic, []forum.Reply) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.topic, slices.Clone(t.replies)
}

/*
Load fetches the topic and its replies concurrently.

Description: The topic is REQUIRED. Replies are OPTIONAL; when their fetch
fails the replies embedded in the topic are shown instead.
*/
func (t *Thread) Load(ctx context.Context) (*forum.Topic, []forum.Reply, error) {
	var (
		topic         *forum.Topic
		replies       []forum.Reply
		repliesFailed bool
	)

	err := view.Gather(ctx,
		view.Required("topic", func(ctx context.Context) error {
			found, err := t.deps.Forum.Topic(ctx, t.topicID)
			topic = found
			return err
		}),
		view.Optional("replies", func(ctx context.Context) error {
			found, err := t.deps.Forum.Replies(ctx, t.topicID)
			replies = found
			return err
		}, func() { repliesFailed = true }),
	)
	if err != nil {
		return nil, nil, err
	}
	if repliesFailed {
		replies = topic.Replies
	}

	t.mu.Lock()
	t.topic, t.replies = topic, replies
	t.mu.Unlock()
	return topic, slices.Clone(replies), nil
}

// Reply posts a reply, optionally under another reply, and reloads the thread.
func (t *Thread) Reply(ctx context.Context, content string, parentID *string) (*forum.Reply, error) {
	created, err := t.deps.Forum.CreateReply(ctx, t.topicID, forum.NewReply{Content: content, ParentID: parentID})
	if err != nil {
		return nil, err
	}
	if _, _, err := t.Load(ctx); err != nil {
		ctxutil.Logger(ctx).Warn("thread_refresh_failed", "topic_id", t.topicID, "error", err)
	}
	return created, nil
}

// VoteTopic votes on the topic and reloads the thread.
func (t *Thread) VoteTopic(ctx context.Context, isUpvote bool) error {
	if err := t.deps.Forum.VoteTopic(ctx, t.topicID, isUpvote); err != nil {
		return err
	}
	_, _, err := t.Load(ctx)
	return err
}

// VoteReply votes on one reply and reloads the thread.
func (t *Thread) VoteReply(ctx context.Context, replyID string, isUpvote bool) error {
	if err := t.deps.Forum.VoteReply(ctx, replyID, isUpvote); err != nil {
		return err
	}
	_, _, err := t.Load(ctx)
	return err
}
