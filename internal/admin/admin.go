// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin is the domain service module for the moderation console.

Report resolution follows the backend contract: approving a report upholds it
and withdraws the reported resource from listings; rejecting a report dismisses
it and leaves the resource untouched.
*/
package admin

import (
	"time"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/resource"
)

// ReportStatus is the moderation state of a report.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusApproved ReportStatus = "approved"
	StatusRejected ReportStatus = "rejected"
)

// Decision is a moderator's verdict on a report.
type Decision string

const (
	// Approve upholds the report; the resource is withdrawn.
	Approve Decision = "approve"

	// Reject dismisses the report; the resource stays.
	Reject Decision = "reject"
)

// # Domain Entities

// Report is a user complaint about a resource.
type Report struct {
	ID         string              `json:"id"`
	ResourceID string              `json:"resource_id"`
	Resource   *resource.Resource  `json:"resource,omitempty"`
	UserID     string              `json:"user_id"`
	User       *auth.User          `json:"user,omitempty"`
	Type       resource.ReportType `json:"type"`
	Reason     string              `json:"reason"`
	Status     ReportStatus        `json:"status"`
	ReviewedBy *string             `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time          `json:"reviewed_at,omitempty"`
	AdminNotes string              `json:"admin_notes,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ReporterName returns the reporter's display name when embedded.
func (r Report) ReporterName() string {
	if r.User == nil {
		return ""
	}
	return r.User.FullName()
}

// Analytics is the platform overview shown on the console.
//
// The zero value is the fallback shown when analytics cannot be loaded.
type Analytics struct {
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	TotalResources    int `json:"total_resources"`
	ApprovedResources int `json:"approved_resources"`
	TotalDownloads    int `json:"total_downloads"`
	TotalViews        int `json:"total_views"`
	PendingReports    int `json:"pending_reports"`
	TotalComments     int `json:"total_comments"`
	TotalRatings      int `json:"total_ratings"`
}

// ReportList is one page of reports.
type ReportList struct {
	Reports []Report `json:"reports"`
	Total   int      `json:"total"`
}
