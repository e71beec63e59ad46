// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"sort"
	"strings"

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/platform/sec"
	"github.com/taibuivan/campusshare/internal/resource"
)

// SeedUser creates an account with the given role, or returns the existing
// account when the email is already registered.
func (store *Store) SeedUser(reg auth.Registration, role sec.UserRole) (auth.User, error) {
	store.mu.Lock()
	id, exists := store.emails[strings.ToLower(strings.TrimSpace(reg.Email))]
	store.mu.Unlock()

	if exists {
		return store.User(id)
	}
	return store.CreateUser(reg, role)
}

// FileReport records a pending complaint about a resource.
func (store *Store) FileReport(userID, resourceID string, input resource.ReportInput) (admin.Report, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.resources[resourceID]; !ok {
		return admin.Report{}, apperr.NotFound("Resource")
	}
	for _, existing := range store.reports {
		if existing.UserID == userID && existing.ResourceID == resourceID && existing.Status == admin.StatusPending {
			return admin.Report{}, apperr.Conflict("You already reported this resource")
		}
	}

	report := &admin.Report{
		ID:         newID(),
		ResourceID: resourceID,
		UserID:     userID,
		Type:       input.Type,
		Reason:     strings.TrimSpace(input.Reason),
		Status:     admin.StatusPending,
		CreatedAt:  store.now(),
	}
	store.reports[report.ID] = report
	return store.reportViewLocked(report), nil
}

// Reports lists reports newest first, optionally filtered by status.
func (store *Store) Reports(status admin.ReportStatus) []admin.Report {
	store.mu.Lock()
	defer store.mu.Unlock()

	reports := make([]admin.Report, 0, len(store.reports))
	for _, report := range store.reports {
		if status != "" && report.Status != status {
			continue
		}
		reports = append(reports, store.reportViewLocked(report))
	}
	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		}
		return reports[i].ID > reports[j].ID
	})
	return reports
}

/*
ResolveReport applies a moderator decision.

Description: Approving upholds the report and withdraws the resource from
listings. Rejecting dismisses the report. Only pending reports can be resolved.

Returns:
  - admin.Report: The updated report
  - error: NOT_FOUND for an unknown report, CONFLICT when already resolved
*/
func (store *Store) ResolveReport(reviewerID, reportID string, decision admin.Decision, notes string) (admin.Report, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	report, ok := store.reports[reportID]
	if !ok {
		return admin.Report{}, apperr.NotFound("Report")
	}
	if report.Status != admin.StatusPending {
		return admin.Report{}, apperr.Conflict("Report is already resolved")
	}

	switch decision {
	case admin.Approve:
		report.Status = admin.StatusApproved
		if record, ok := store.resources[report.ResourceID]; ok {
			record.resource.IsApproved = false
			record.resource.UpdatedAt = store.now()
		}
	case admin.Reject:
		report.Status = admin.StatusRejected
	default:
		return admin.Report{}, apperr.ValidationError("Unknown decision")
	}

	reviewedAt := store.now()
	report.ReviewedBy = &reviewerID
	report.ReviewedAt = &reviewedAt
	report.AdminNotes = notes
	return store.reportViewLocked(report), nil
}

// Analytics computes the platform overview.
func (store *Store) Analytics() admin.Analytics {
	store.mu.Lock()
	defer store.mu.Unlock()

	stats := admin.Analytics{
		TotalUsers:     len(store.users),
		TotalResources: len(store.resources),
		TotalComments:  len(store.comments),
		TotalRatings:   len(store.ratings),
	}
	for _, record := range store.users {
		if record.user.IsActive && !record.user.IsBanned {
			stats.ActiveUsers++
		}
	}
	for _, record := range store.resources {
		if record.resource.IsApproved {
			stats.ApprovedResources++
		}
		stats.TotalDownloads += record.resource.DownloadCount
		stats.TotalViews += record.resource.ViewCount
	}
	for _, report := range store.reports {
		if report.Status == admin.StatusPending {
			stats.PendingReports++
		}
	}
	return stats
}

func (store *Store) reportViewLocked(report *admin.Report) admin.Report {
	view := *report
	if _, ok := store.resources[report.ResourceID]; ok {
		embedded := store.resourceViewLocked(report.ResourceID)
		view.Resource = &embedded
	}
	view.User = store.userRefLocked(report.UserID)
	return view
}
