// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"errors"

	"github.com/taibuivan/campusshare/internal/platform/apperr"
)

// # Form Messages

const (
	MsgServerOffline      = "Server is offline. Please make sure the backend is running."
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailTaken         = "This email is already registered. Try logging in!"
	MsgWeakPassword       = "Password is too short (minimum 8 characters)."
	MsgRegisterFailed     = "Registration failed. Please check your information."
	MsgBookmarkFailed     = "Check your connection: Bookmark sync failed"
	MsgActionFailed       = "Action failed. Try again."
)

// LoginMessage maps a login failure to the message shown on the form.
func LoginMessage(err error) string {
	if apperr.IsTransport(err) {
		return MsgServerOffline
	}
	return MsgInvalidCredentials
}

// RegisterMessage maps a registration failure to the message shown on the form.
//
// The decision is made on the error code only, never on the message text.
func RegisterMessage(err error) string {
	switch {
	case apperr.IsTransport(err):
		return MsgServerOffline
	case apperr.HasCode(err, apperr.CodeEmailTaken):
		return MsgEmailTaken
	case apperr.HasCode(err, apperr.CodeWeakPassword):
		return MsgWeakPassword
	default:
		return MsgRegisterFailed
	}
}

// BookmarkMessage maps a failed toggle to a notification.
//
// A consistency error is a defect and is shown verbatim so it gets reported.
func BookmarkMessage(err error) string {
	if apperr.IsConsistency(err) {
		return err.Error()
	}
	return MsgBookmarkFailed
}

// ActionMessage maps any other failed action to a notification.
func ActionMessage(err error) string {
	switch {
	case apperr.IsTransport(err):
		return MsgServerOffline
	case errors.Is(err, ErrBusy):
		return "Please wait for the previous action to finish."
	}
	if ae := apperr.As(err); ae != nil && ae.HTTPStatus >= 400 && ae.HTTPStatus < 500 {
		return ae.Message
	}
	return MsgActionFailed
}
