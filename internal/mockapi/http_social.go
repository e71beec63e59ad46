// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/middleware"
	requestutil "github.com/taibuivan/campusshare/internal/platform/request"
	"github.com/taibuivan/campusshare/internal/platform/respond"
	"github.com/taibuivan/campusshare/internal/platform/validate"
	"github.com/taibuivan/campusshare/internal/social"
	"github.com/taibuivan/campusshare/pkg/pagination"
)

// # Bookmarks

func (handler *Handler) bookmarkRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.addBookmark)
	router.Get("/", handler.listBookmarks)
	router.Delete("/{id}", handler.deleteBookmark)

	return router
}

/*
AddBookmark saves a resource for the caller.

POST /api/v1/bookmarks

Request:
  - Body: {resource_id}

Response:
  - 201: {bookmark}
  - 404: Resource not found
  - 409: Resource already bookmarked
*/
func (handler *Handler) addBookmark(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		ResourceID string `json:"resource_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := (&validate.Validator{}).Required("resource_id", input.ResourceID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookmark, err := handler.store.AddBookmark(user.ID, input.ResourceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]social.Bookmark{"bookmark": bookmark})
}

// listBookmarks handles GET /api/v1/bookmarks.
func (handler *Handler) listBookmarks(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]social.Bookmark{"bookmarks": handler.store.Bookmarks(user.ID)})
}

// deleteBookmark handles DELETE /api/v1/bookmarks/{id}. The ID is the bookmark's own.
func (handler *Handler) deleteBookmark(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.store.DeleteBookmark(user.ID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Acknowledge(writer, "Bookmark removed")
}

// # Follows

func (handler *Handler) followRoutes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/users/{id}/followers", handler.followers)
	router.Get("/users/{id}/following", handler.following)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/feed", handler.feed)
		r.Post("/users/{id}", handler.follow)
		r.Delete("/users/{id}", handler.unfollow)
		r.Get("/users/{id}/check", handler.checkFollow)
	})

	return router
}

// follow handles POST /api/v1/follows/users/{id}.
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.store.Follow(user.ID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, respond.Ack{Message: "Followed"})
}

// unfollow handles DELETE /api/v1/follows/users/{id}.
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.store.Unfollow(user.ID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Acknowledge(writer, "Unfollowed")
}

// checkFollow handles GET /api/v1/follows/users/{id}/check.
func (handler *Handler) checkFollow(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	following := handler.store.IsFollowing(user.ID, requestutil.Param(request, "id"))
	respond.OK(writer, map[string]bool{"is_following": following})
}

// followers handles GET /api/v1/follows/users/{id}/followers.
func (handler *Handler) followers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.store.Followers(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, struct {
		Followers []auth.User `json:"followers"`
		Total     int         `json:"total"`
	}{users, len(users)})
}

// following handles GET /api/v1/follows/users/{id}/following.
func (handler *Handler) following(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.store.Following(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, struct {
		Following []auth.User `json:"following"`
		Total     int         `json:"total"`
	}{users, len(users)})
}

/*
Feed lists resources uploaded by users the caller follows.

GET /api/v1/follows/feed

Request:
  - Query: page, page_size

Response:
  - 200: {resources, total, page, page_size}
*/
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	items, total := handler.store.Feed(user.ID, page)
	respond.OK(writer, social.Feed{Resources: items, Total: total, Page: page.Page, PageSize: page.Limit})
}
