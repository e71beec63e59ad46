// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth is the domain service module for identity endpoints.

It owns the User entity as the client sees it and the four operations of the
/auth surface: login, register, current user, and profile update. It holds no
session state; that belongs to the session controller.
*/
package auth

import (
	"strings"
	"time"

	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/platform/constants"
	"github.com/taibuivan/campusshare/internal/platform/sec"
	"github.com/taibuivan/campusshare/internal/platform/validate"
)

// # Domain Entities

// User is a registered member as returned by the backend.
//
// Identity is server-assigned; the client never mutates ID.
type User struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	StudentID string       `json:"student_id,omitempty"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Role      sec.UserRole `json:"role"`
	IsActive  bool         `json:"is_active"`
	IsBanned  bool         `json:"is_banned"`
	Year      int          `json:"year,omitempty"`
	Major     string       `json:"major,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// # User Status

const (
	StatusActive = "active"
	StatusBanned = "banned"
)

// Status folds the backend flags into the single status shown to moderators.
func (u User) Status() string {
	if u.IsBanned {
		return StatusBanned
	}
	return StatusActive
}

// IsAdmin reports whether the user may open the moderation console.
func (u User) IsAdmin() bool {
	return u.Role == sec.RoleAdmin
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// # Payloads

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate rejects empty credentials before a request is spent on them.
func (c Credentials) Validate() error {
	return (&validate.Validator{}).
		Required(FieldEmail, c.Email).
		Required(FieldPassword, c.Password).
		Err()
}

// Registration is the register request body.
type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	StudentID string `json:"student_id,omitempty"`
}

// Validate applies the backend's registration rules locally.
//
// A short password is reported as WEAK_PASSWORD so that the form maps it the
// same way whether the client or the backend caught it.
func (r Registration) Validate() error {
	err := (&validate.Validator{}).
		Required(FieldFirstName, r.FirstName).
		Required(FieldLastName, r.LastName).
		Required(FieldEmail, r.Email).
		Email(FieldEmail, r.Email).
		Required(FieldPassword, r.Password).
		Err()
	if err != nil {
		return err
	}
	if len(r.Password) < constants.MinPasswordLength {
		return apperr.WeakPassword(constants.MinPasswordLength)
	}
	return nil
}

// ProfileUpdate carries the fields a user may change about themselves.
// Nil fields are left untouched by the backend.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	StudentID *string `json:"student_id,omitempty"`
	Major     *string `json:"major,omitempty"`
	Year      *int    `json:"year,omitempty"`
}

// Validate rejects blank names and impossible study years.
func (p ProfileUpdate) Validate() error {
	v := &validate.Validator{}
	if p.FirstName != nil {
		v.Required(FieldFirstName, *p.FirstName)
	}
	if p.LastName != nil {
		v.Required(FieldLastName, *p.LastName)
	}
	if p.Year != nil {
		v.Range(FieldYear, *p.Year, 1, 10)
	}
	return v.Err()
}

// IsEmpty reports whether the update would change nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.StudentID == nil && p.Major == nil && p.Year == nil
}

// Result is the body returned by login and register.
type Result struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// # Field Identifiers

const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldStudentID = "student_id"
	FieldYear      = "year"
)
