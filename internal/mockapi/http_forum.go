// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campusshare/internal/forum"
	"github.com/taibuivan/campusshare/internal/platform/middleware"
	requestutil "github.com/taibuivan/campusshare/internal/platform/request"
	"github.com/taibuivan/campusshare/internal/platform/respond"
	"github.com/taibuivan/campusshare/internal/platform/validate"
	"github.com/taibuivan/campusshare/pkg/pagination"
)

func (handler *Handler) forumRoutes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/topics", handler.listTopics)
	router.Get("/topics/{id}", handler.getTopic)
	router.Get("/topics/{id}/replies", handler.listReplies)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/topics", handler.createTopic)
		r.Post("/topics/{id}/replies", handler.createReply)
		r.Post("/topics/{id}/vote", handler.voteTopic)
		r.Post("/replies/{id}/vote", handler.voteReply)
	})

	return router
}

/*
ListTopics returns one page of threads.

GET /api/v1/forum/topics

Request:
  - Query: sort_by (newest|popular|unanswered), search, page, page_size

Response:
  - 200: {topics, total}
  - 400: VALIDATION_ERROR for an unknown sort
*/
func (handler *Handler) listTopics(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	sortBy := query.Get("sort_by")
	if sortBy == "" {
		sortBy = forum.SortNewest
	}
	if err := (&validate.Validator{}).OneOf("sort_by", sortBy, forum.Sorts...).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	topics, total := handler.store.Topics(sortBy, query.Get("search"), pagination.FromRequest(request))
	respond.OK(writer, forum.TopicList{Topics: topics, Total: total})
}

// createTopic handles POST /api/v1/forum/topics.
func (handler *Handler) createTopic(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input forum.NewTopic
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	topic := handler.store.CreateTopic(user.ID, input)
	respond.Created(writer, map[string]forum.Topic{"topic": topic})
}

// getTopic handles GET /api/v1/forum/topics/{id}. Replies are embedded.
func (handler *Handler) getTopic(writer http.ResponseWriter, request *http.Request) {
	topic, err := handler.store.ViewTopic(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]forum.Topic{"topic": topic})
}

// listReplies handles GET /api/v1/forum/topics/{id}/replies.
func (handler *Handler) listReplies(writer http.ResponseWriter, request *http.Request) {
	replies, err := handler.store.Replies(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if replies == nil {
		replies = []forum.Reply{}
	}
	respond.OK(writer, map[string][]forum.Reply{"replies": replies})
}

/*
CreateReply answers a thread or another reply.

POST /api/v1/forum/topics/{id}/replies

Request:
  - Body: {content, parent_id}

Response:
  - 201: {reply}
  - 403: Topic is locked
  - 404: Topic or parent reply not found
*/
func (handler *Handler) createReply(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input forum.NewReply
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reply, err := handler.store.CreateReply(user.ID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]forum.Reply{"reply": reply})
}

type voteRequest struct {
	IsUpvote bool `json:"is_upvote"`
}

// voteTopic handles POST /api/v1/forum/topics/{id}/vote.
func (handler *Handler) voteTopic(writer http.ResponseWriter, request *http.Request) {
	handler.vote(writer, request, handler.store.VoteTopic)
}

// voteReply handles POST /api/v1/forum/replies/{id}/vote.
func (handler *Handler) voteReply(writer http.ResponseWriter, request *http.Request) {
	handler.vote(writer, request, handler.store.VoteReply)
}

func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request, apply func(userID, targetID string, isUpvote bool) error) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input voteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := apply(user.ID, requestutil.Param(request, "id"), input.IsUpvote); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Acknowledge(writer, "Vote recorded")
}
