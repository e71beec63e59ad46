// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"sort"
	"strings"

	"github.com/taibuivan/campusshare/internal/forum"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/pkg/pagination"
)

const (
	votableTopic = "topic"
	votableReply = "reply"
)

// CreateTopic opens a thread owned by userID.
func (store *Store) CreateTopic(userID string, input forum.NewTopic) forum.Topic {
	store.mu.Lock()
	defer store.mu.Unlock()

	topic := &forum.Topic{
		ID:        newID(),
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		UserID:    userID,
		CreatedAt: store.now(),
	}
	store.topics[topic.ID] = topic
	return store.topicViewLocked(topic, false)
}

// Topics lists threads in the requested order.
func (store *Store) Topics(sortBy, search string, page pagination.Params) ([]forum.Topic, int) {
	store.mu.Lock()
	defer store.mu.Unlock()

	search = strings.ToLower(strings.TrimSpace(search))
	matches := make([]forum.Topic, 0, len(store.topics))
	for _, topic := range store.topics {
		if sortBy == forum.SortUnanswered && topic.ReplyCount > 0 {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(topic.Title+" "+topic.Content), search) {
			continue
		}
		matches = append(matches, store.topicViewLocked(topic, false))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		switch sortBy {
		case forum.SortPopular:
			if a.UpvoteCount != b.UpvoteCount {
				return a.UpvoteCount > b.UpvoteCount
			}
			if a.ReplyCount != b.ReplyCount {
				return a.ReplyCount > b.ReplyCount
			}
		case forum.SortUnanswered:
		default:
			if a.IsPinned != b.IsPinned {
				return a.IsPinned
			}
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return pagination.Apply(matches, page), len(matches)
}

// ViewTopic fetches a thread with its reply tree and counts the view.
func (store *Store) ViewTopic(id string) (forum.Topic, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	topic, ok := store.topics[id]
	if !ok {
		return forum.Topic{}, apperr.NotFound("Topic")
	}
	topic.ViewCount++
	return store.topicViewLocked(topic, true), nil
}

// Replies returns the reply tree of a thread.
func (store *Store) Replies(topicID string) ([]forum.Reply, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.topics[topicID]; !ok {
		return nil, apperr.NotFound("Topic")
	}
	return store.replyTreeLocked(topicID), nil
}

// CreateReply answers a thread. Locked threads accept no replies.
func (store *Store) CreateReply(userID, topicID string, input forum.NewReply) (forum.Reply, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	topic, ok := store.topics[topicID]
	if !ok {
		return forum.Reply{}, apperr.NotFound("Topic")
	}
	if topic.IsLocked {
		return forum.Reply{}, apperr.Forbidden("Topic is locked")
	}
	if input.ParentID != nil {
		parent, ok := store.replies[*input.ParentID]
		if !ok || parent.TopicID != topicID {
			return forum.Reply{}, apperr.NotFound("Parent reply")
		}
	}

	reply := &forum.Reply{
		ID:        newID(),
		TopicID:   topicID,
		Content:   strings.TrimSpace(input.Content),
		UserID:    userID,
		ParentID:  input.ParentID,
		CreatedAt: store.now(),
	}
	store.replies[reply.ID] = reply
	topic.ReplyCount++

	view := *reply
	view.User = store.userRefLocked(userID)
	return view, nil
}

// VoteTopic records a vote on a thread.
func (store *Store) VoteTopic(userID, topicID string, isUpvote bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	topic, ok := store.topics[topicID]
	if !ok {
		return apperr.NotFound("Topic")
	}
	store.applyVoteLocked(voteKey{userID, votableTopic, topicID}, isUpvote, &topic.UpvoteCount, &topic.DownvoteCount)
	return nil
}

// VoteReply records a vote on a reply.
func (store *Store) VoteReply(userID, replyID string, isUpvote bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	reply, ok := store.replies[replyID]
	if !ok {
		return apperr.NotFound("Reply")
	}
	store.applyVoteLocked(voteKey{userID, votableReply, replyID}, isUpvote, &reply.UpvoteCount, &reply.DownvoteCount)
	return nil
}

/*
applyVoteLocked keeps one vote per user and target.

Description: A first vote increments its counter. Switching direction moves
one count from the old counter to the new one. Repeating a vote is a no-op.
*/
func (store *Store) applyVoteLocked(key voteKey, isUpvote bool, up, down *int) {
	previous, voted := store.votes[key]
	if voted && previous == isUpvote {
		return
	}
	if voted {
		if previous {
			*up--
		} else {
			*down--
		}
	}
	if isUpvote {
		*up++
	} else {
		*down++
	}
	store.votes[key] = isUpvote
}

func (store *Store) topicViewLocked(topic *forum.Topic, withReplies bool) forum.Topic {
	view := *topic
	view.User = store.userRefLocked(topic.UserID)
	view.Replies = nil
	if withReplies {
		view.Replies = store.replyTreeLocked(topic.ID)
	}
	return view
}

// replyTreeLocked nests replies under their parents, best voted first.
func (store *Store) replyTreeLocked(topicID string) []forum.Reply {
	flat := make([]forum.Reply, 0)
	for _, reply := range store.replies {
		if reply.TopicID == topicID {
			view := *reply
			view.User = store.userRefLocked(reply.UserID)
			flat = append(flat, view)
		}
	}
	sort.Slice(flat, func(i, j int) bool {
		if flat[i].UpvoteCount != flat[j].UpvoteCount {
			return flat[i].UpvoteCount > flat[j].UpvoteCount
		}
		if !flat[i].CreatedAt.Equal(flat[j].CreatedAt) {
			return flat[i].CreatedAt.Before(flat[j].CreatedAt)
		}
		return flat[i].ID < flat[j].ID
	})
	return threadReplies(flat, nil)
}

func threadReplies(flat []forum.Reply, parentID *string) []forum.Reply {
	var level []forum.Reply
	for _, reply := range flat {
		if !sameParent(reply.ParentID, parentID) {
			continue
		}
		reply.Replies = threadReplies(flat, &reply.ID)
		level = append(level, reply)
	}
	return level
}

// SetTopicFlags pins or locks a thread.
func (store *Store) SetTopicFlags(topicID string, pinned, locked bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	topic, ok := store.topics[topicID]
	if !ok {
		return apperr.NotFound("Topic")
	}
	topic.IsPinned = pinned
	topic.IsLocked = locked
	return nil
}
