// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
	"github.com/taibuivan/campusshare/internal/platform/validate"
)

func (handler *Handler) authRoutes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
		r.Put("/profile", handler.updateProfile)
	})

	return router
}

/*
Register creates a student account and signs it in.

POST /api/v1/auth/register

Request:
  - Body: auth.Registration

Response:
  - 201: {token, user}
  - 400: VALIDATION_ERROR or WEAK_PASSWORD
  - 409: EMAIL_TAKEN, or CONFLICT for a known student ID
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input auth.Registration
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := input.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.store.CreateUser(input, sec.RoleStudent)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.issue(writer, request, http.StatusCreated, user)
}

/*
Login exchanges credentials for a session token.

POST /api/v1/auth/login

Response:
  - 200: {token, user}
  - 401: Invalid email or password
  - 403: Account is banned
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input auth.Credentials
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := input.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.store.Authenticate(input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.issue(writer, request, http.StatusOK, user)
}

// me handles GET /api/v1/auth/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]auth.User{"user": user})
}

/*
UpdateProfile applies a partial update to the caller's account.

PUT /api/v1/auth/profile

Response:
  - 200: {user}
  - 400: VALIDATION_ERROR for an empty or malformed update
  - 409: CONFLICT when the student ID belongs to someone else
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input auth.ProfileUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}
	if input.IsEmpty() {
		respond.Error(writer, request, apperr.ValidationError("Nothing to update"))
		return
	}
	if err := input.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.store.UpdateProfile(user.ID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]auth.User{"user": updated})
}
