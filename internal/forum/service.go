// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package forum

import (
	"context"
	"net/url"

	"github.com/taibuivan/campusshare/internal/platform/apiclient"
	"github.com/taibuivan/campusshare/internal/platform/validate"
)

// Service maps the /forum endpoints onto named operations.
type Service struct {
	api *apiclient.Client
}

// NewService constructs a new [Service].
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

func topicPath(id, suffix string) string {
	return "/forum/topics/" + url.PathEscape(id) + suffix
}

// Topics lists topics in the requested order.
func (service *Service) Topics(ctx context.Context, query TopicQuery) (*TopicList, error) {
	if query.SortBy != "" {
		if err := (&validate.Validator{}).OneOf("sort_by", query.SortBy, Sorts...).Err(); err != nil {
			return nil, err
		}
	}

	var out TopicList
	if err := service.api.Get(ctx, "/forum/topics", query.Query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTopic opens a new thread.
func (service *Service) CreateTopic(ctx context.Context, topic NewTopic) (*Topic, error) {
	if err := topic.Validate(); err != nil {
		return nil, err
	}

	var out struct {
		Topic Topic `json:"topic"`
	}
	if err := service.api.Post(ctx, "/forum/topics", topic, &out); err != nil {
		return nil, err
	}
	return &out.Topic, nil
}

// Topic fetches a single thread. Replies may be embedded.
func (service *Service) Topic(ctx context.Context, id string) (*Topic, error) {
	var out struct {
		Topic Topic `json:"topic"`
	}
	if err := service.api.Get(ctx, topicPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out.Topic, nil
}

// Replies lists the replies of a thread.
func (service *Service) Replies(ctx context.Context, topicID string) ([]Reply, error) {
	var out struct {
		Replies []Reply `json:"replies"`
	}
	if err := service.api.Get(ctx, topicPath(topicID, "/replies"), nil, &out); err != nil {
		return nil, err
	}
	return out.Replies, nil
}

// CreateReply answers a thread, or another reply when ParentID is set.
func (service *Service) CreateReply(ctx context.Context, topicID string, reply NewReply) (*Reply, error) {
	if err := reply.Validate(); err != nil {
		return nil, err
	}

	var out struct {
		Reply Reply `json:"reply"`
	}
	if err := service.api.Post(ctx, topicPath(topicID, "/replies"), reply, &out); err != nil {
		return nil, err
	}
	return &out.Reply, nil
}

// VoteTopic records an up or down vote on a thread.
func (service *Service) VoteTopic(ctx context.Context, topicID string, isUpvote bool) error {
	return service.api.Post(ctx, topicPath(topicID, "/vote"), vote{IsUpvote: isUpvote}, nil)
}

// VoteReply records an up or down vote on a reply.
func (service *Service) VoteReply(ctx context.Context, replyID string, isUpvote bool) error {
	return service.api.Post(ctx, "/forum/replies/"+url.PathEscape(replyID)+"/vote", vote{IsUpvote: isUpvote}, nil)
}

type vote struct {
	IsUpvote bool `json:"is_upvote"`
}
