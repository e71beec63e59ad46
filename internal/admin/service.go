// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/apiclient"
	"github.com/taibuivan/campusshare/internal/platform/validate"
)

// Service maps the /admin endpoints onto named operations.
type Service struct {
	api *apiclient.Client
}

// NewService constructs a new [Service].
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Analytics fetches the platform overview.
func (service *Service) Analytics(ctx context.Context) (*Analytics, error) {
	var out struct {
		Analytics Analytics `json:"analytics"`
	}
	if err := service.api.Get(ctx, "/admin/analytics", nil, &out); err != nil {
		return nil, err
	}
	return &out.Analytics, nil
}

// Reports lists reports, optionally filtered by status.
func (service *Service) Reports(ctx context.Context, status ReportStatus) (*ReportList, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	var out ReportList
	if err := service.api.Get(ctx, "/admin/reports", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

/*
Resolve applies a moderator decision to a report.

Parameters:
  - id: Report ID
  - decision: [Approve] or [Reject]
  - notes: Optional admin notes stored with the report

Returns:
  - *Report: The updated report
  - error: VALIDATION_ERROR for an unknown decision, or any backend error
*/
func (service *Service) Resolve(ctx context.Context, id string, decision Decision, notes string) (*Report, error) {
	if err := (&validate.Validator{}).OneOf("decision", string(decision), string(Approve), string(Reject)).Err(); err != nil {
		return nil, err
	}

	var out struct {
		Report Report `json:"report"`
	}
	path := fmt.Sprintf("/admin/reports/%s/%s", url.PathEscape(id), decision)
	body := map[string]string{"admin_notes": notes}
	if err := service.api.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Report, nil
}

// Users lists every account.
func (service *Service) Users(ctx context.Context) ([]auth.User, error) {
	var out struct {
		Users []auth.User `json:"users"`
	}
	if err := service.api.Get(ctx, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// Ban blocks a user from signing in.
func (service *Service) Ban(ctx context.Context, userID string) (*auth.User, error) {
	return service.setBanned(ctx, userID, "/ban")
}

// Unban lifts a ban.
func (service *Service) Unban(ctx context.Context, userID string) (*auth.User, error) {
	return service.setBanned(ctx, userID, "/unban")
}

func (service *Service) setBanned(ctx context.Context, userID, verb string) (*auth.User, error) {
	var out struct {
		User auth.User `json:"user"`
	}
	if err := service.api.Post(ctx, "/admin/users/"+url.PathEscape(userID)+verb, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// # Forum Moderation

// TopicFlags are the moderator-controlled switches of a forum topic.
type TopicFlags struct {
	IsPinned bool `json:"is_pinned"`
	IsLocked bool `json:"is_locked"`
}

// ModerateTopic pins or locks a topic. A locked topic refuses new replies.
func (service *Service) ModerateTopic(ctx context.Context, topicID string, flags TopicFlags) error {
	return service.api.Put(ctx, "/admin/topics/"+url.PathEscape(topicID), flags, nil)
}
