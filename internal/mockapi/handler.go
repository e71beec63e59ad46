// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mockapi is an in-memory reference backend for the CampusShare REST API.

It speaks the same wire contract as the production service: bare JSON objects
keyed by entity name, bearer JWT authentication, and error bodies of the form
{"error", "code", "details"}. Tests mount it behind httptest; cmd/mockapi runs
it as a standalone server for local development.

# Architecture

  - [Store]: the whole state behind one mutex. Every accessor returns copies.
  - [Handler]: thin HTTP mediation. Decodes, validates, calls the store, responds.
  - [Server]: the middleware chain and the versioned mount point.
*/
package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/platform/middleware"
	requestutil "github.com/taibuivan/campusshare/internal/platform/request"
	"github.com/taibuivan/campusshare/internal/platform/respond"
	"github.com/taibuivan/campusshare/internal/platform/sec"
)

// # Definitions & Constructors

// Handler implements every endpoint of the CampusShare contract.
type Handler struct {
	store  *Store
	tokens *sec.TokenService
	files  *sec.TokenService
}

// NewHandler constructs a [Handler].
//
// tokens signs session tokens; files signs short-lived download links.
func NewHandler(store *Store, tokens, files *sec.TokenService) *Handler {
	return &Handler{store: store, tokens: tokens, files: files}
}

// Routes returns a [chi.Router] with every route group mounted.
//
// # Endpoints
//   - /auth            : Registration, login and the current account.
//   - /resources       : Catalogue, uploads, comments, ratings and reports.
//   - /recommendations : Personalised suggestions.
//   - /bookmarks       : The caller's saved resources.
//   - /follows         : Follow graph and activity feed.
//   - /forum           : Topics, replies and votes.
//   - /admin           : Moderation console (admin role).
//   - /files           : Signed file downloads.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Mount("/auth", handler.authRoutes())
	router.Mount("/resources", handler.resourceRoutes())
	router.Mount("/bookmarks", handler.bookmarkRoutes())
	router.Mount("/follows", handler.followRoutes())
	router.Mount("/forum", handler.forumRoutes())
	router.Mount("/admin", handler.adminRoutes())
	router.Get("/files/{id}", handler.serveFile)

	router.With(middleware.RequireAuth).Get("/recommendations", handler.recommendations)

	return router
}

// # Helpers

// currentUser resolves the caller's account from the verified token.
//
// A token whose account vanished or was banned is treated as rejected.
func (handler *Handler) currentUser(request *http.Request) (auth.User, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return auth.User{}, err
	}

	user, err := handler.store.User(userID)
	if err != nil {
		return auth.User{}, apperr.Unauthorized("Account no longer exists")
	}
	if user.IsBanned {
		return auth.User{}, apperr.Unauthorized("Account is banned")
	}
	return user, nil
}

// issue mints a session token for user and writes {token, user}.
func (handler *Handler) issue(writer http.ResponseWriter, request *http.Request, status int, user auth.User) {
	token, err := handler.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	respond.JSON(writer, status, auth.Result{Token: token, User: user})
}

// viewerID returns the caller's ID on routes where authentication is optional.
func viewerID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}

// isAdmin reports whether the caller holds the admin role.
func isAdmin(request *http.Request) bool {
	claims := requestutil.Claims(request)
	return claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleAdmin)
}
