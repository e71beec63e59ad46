// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/middleware"
	requestutil "github.com/taibuivan/campusshare/internal/platform/request"
	"github.com/taibuivan/campusshare/internal/platform/respond"
	"github.com/taibuivan/campusshare/internal/platform/sec"
	"github.com/taibuivan/campusshare/internal/platform/validate"
)

func (handler *Handler) adminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/analytics", handler.analytics)
	router.Get("/reports", handler.listReports)
	router.Post("/reports/{id}/approve", handler.resolveReport(admin.Approve))
	router.Post("/reports/{id}/reject", handler.resolveReport(admin.Reject))
	router.Get("/users", handler.listUsers)
	router.Post("/users/{id}/ban", handler.setBanned(true))
	router.Post("/users/{id}/unban", handler.setBanned(false))
	router.Put("/topics/{id}", handler.moderateTopic)

	return router
}

// analytics handles GET /api/v1/admin/analytics.
func (handler *Handler) analytics(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]admin.Analytics{"analytics": handler.store.Analytics()})
}

// listReports handles GET /api/v1/admin/reports?status=pending|approved|rejected.
func (handler *Handler) listReports(writer http.ResponseWriter, request *http.Request) {
	status := request.URL.Query().Get("status")
	if status != "" {
		err := (&validate.Validator{}).
			OneOf("status", status, string(admin.StatusPending), string(admin.StatusApproved), string(admin.StatusRejected)).
			Err()
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	reports := handler.store.Reports(admin.ReportStatus(status))
	respond.OK(writer, admin.ReportList{Reports: reports, Total: len(reports)})
}

/*
resolveReport builds the handler for one moderator decision.

POST /api/v1/admin/reports/{id}/approve
POST /api/v1/admin/reports/{id}/reject

Request:
  - Body: {admin_notes} (optional)

Response:
  - 200: {message, report}
  - 404: Report not found
  - 409: Report is already resolved
*/
func (handler *Handler) resolveReport(decision admin.Decision) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		reviewer, err := handler.currentUser(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input struct {
			AdminNotes string `json:"admin_notes"`
		}
		if err := requestutil.DecodeOptionalJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		report, err := handler.store.ResolveReport(reviewer.ID, requestutil.Param(request, "id"), decision, input.AdminNotes)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, struct {
			Message string       `json:"message"`
			Report  admin.Report `json:"report"`
		}{"Report " + string(report.Status), report})
	}
}

// listUsers handles GET /api/v1/admin/users.
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string][]auth.User{"users": handler.store.Users()})
}

// setBanned builds the ban and unban handlers.
func (handler *Handler) setBanned(banned bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		actor, err := handler.currentUser(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		user, err := handler.store.SetBanned(actor.ID, requestutil.Param(request, "id"), banned)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		message := "User unbanned"
		if banned {
			message = "User banned"
		}
		respond.OK(writer, struct {
			Message string    `json:"message"`
			User    auth.User `json:"user"`
		}{message, user})
	}
}

// moderateTopic handles PUT /api/v1/admin/topics/{id} with {is_pinned, is_locked}.
func (handler *Handler) moderateTopic(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		IsPinned bool `json:"is_pinned"`
		IsLocked bool `json:"is_locked"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.store.SetTopicFlags(requestutil.Param(request, "id"), input.IsPinned, input.IsLocked); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Acknowledge(writer, "Topic updated")
}
