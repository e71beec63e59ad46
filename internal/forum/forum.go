// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package forum is the domain service module for discussion topics and replies.

Votes are fire-and-forget: callers re-fetch the topic to see new counters
instead of reconciling them locally.
*/
package forum

import (
	"net/url"
	"strconv"
	"time"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/validate"
)

// Sort orders accepted by the topic listing.
const (
	SortNewest     = "newest"
	SortPopular    = "popular"
	SortUnanswered = "unanswered"
)

// Sorts lists every accepted sort order.
var Sorts = []string{SortNewest, SortPopular, SortUnanswered}

// # Domain Entities

// Topic is a discussion thread.
type Topic struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	UserID        string     `json:"user_id"`
	User          *auth.User `json:"user,omitempty"`
	ViewCount     int        `json:"view_count"`
	ReplyCount    int        `json:"reply_count"`
	UpvoteCount   int        `json:"upvote_count"`
	DownvoteCount int        `json:"downvote_count"`
	IsPinned      bool       `json:"is_pinned"`
	IsLocked      bool       `json:"is_locked"`
	Replies       []Reply    `json:"replies,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Score is upvotes minus downvotes.
func (t Topic) Score() int { return t.UpvoteCount - t.DownvoteCount }

// Reply is an answer inside a topic, optionally nested under another reply.
type Reply struct {
	ID            string     `json:"id"`
	TopicID       string     `json:"topic_id"`
	Content       string     `json:"content"`
	UserID        string     `json:"user_id"`
	User          *auth.User `json:"user,omitempty"`
	ParentID      *string    `json:"parent_id,omitempty"`
	UpvoteCount   int        `json:"upvote_count"`
	DownvoteCount int        `json:"downvote_count"`
	Replies       []Reply    `json:"replies,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Score is upvotes minus downvotes.
func (r Reply) Score() int { return r.UpvoteCount - r.DownvoteCount }

// TopicList is one page of the topic listing.
type TopicList struct {
	Topics []Topic `json:"topics"`
	Total  int     `json:"total"`
}

// # Payloads

// TopicQuery filters the topic listing.
type TopicQuery struct {
	SortBy   string
	Search   string
	Page     int
	PageSize int
}

// Query encodes the non-zero parameters.
func (q TopicQuery) Query() url.Values {
	query := url.Values{}
	if q.SortBy != "" {
		query.Set("sort_by", q.SortBy)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return query
}

// NewTopic is the body of a topic creation.
type NewTopic struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate rejects blank topics.
func (t NewTopic) Validate() error {
	return (&validate.Validator{}).
		Required("title", t.Title).
		MaxLen("title", t.Title, 200).
		Required("content", t.Content).
		Err()
}

// NewReply is the body of a reply creation.
type NewReply struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

// Validate rejects blank replies.
func (r NewReply) Validate() error {
	return (&validate.Validator{}).Required("content", r.Content).Err()
}
