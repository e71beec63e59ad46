// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/campusshare/internal/platform/apiclient"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
)

// Service maps the /auth endpoints onto named operations.
type Service struct {
	api *apiclient.Client
}

// NewService constructs a new [Service].
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

/*
Login exchanges credentials for a token and the user record.

Returns:
  - *Result: Token and user
  - error: UNAUTHORIZED on bad credentials, TRANSPORT_ERROR when offline
*/
func (service *Service) Login(ctx context.Context, creds Credentials) (*Result, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	var out Result
	if err := service.api.Post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

/*
Register creates an account and signs it in.

Returns:
  - *Result: Token and user
  - error: EMAIL_TAKEN, WEAK_PASSWORD, VALIDATION_ERROR or TRANSPORT_ERROR
*/
func (service *Service) Register(ctx context.Context, reg Registration) (*Result, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	var out Result
	if err := service.api.Post(ctx, "/auth/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the user owning the current bearer token.
func (service *Service) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := service.api.Get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateProfile applies a partial update and returns the stored user.
func (service *Service) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	if update.IsEmpty() {
		return nil, apperr.ValidationError("Nothing to update")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	var out struct {
		User User `json:"user"`
	}
	if err := service.api.Put(ctx, "/auth/profile", update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
