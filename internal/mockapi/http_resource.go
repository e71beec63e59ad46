// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/platform/constants"
	"github.com/taibuivan/campusshare/internal/platform/middleware"
	requestutil "github.com/taibuivan/campusshare/internal/platform/request"
	"github.com/taibuivan/campusshare/internal/platform/respond"
	"github.com/taibuivan/campusshare/internal/platform/validate"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
	"github.com/taibuivan/campusshare/pkg/pagination"
)

// maxUploadBytes bounds the multipart body of an upload.
const maxUploadBytes = 32 << 20

// # Routing

func (handler *Handler) resourceRoutes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.listResources)
	router.Get("/{id}", handler.getResource)
	router.Get("/{id}/similar", handler.similarResources)
	router.Get("/{id}/comments", handler.listComments)
	router.Get("/{id}/rating", handler.getRating)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.uploadResource)
		r.Get("/{id}/download", handler.downloadLink)
		r.Post("/{id}/report", handler.reportResource)
		r.Post("/{id}/comments", handler.addComment)
		r.Post("/{id}/rating", handler.rateResource)
	})

	return router
}

// # Catalogue

/*
ListResources returns one page of approved resources.

GET /api/v1/resources

Request:
  - Query: search, type, tag, sort_by (newest|popular|rating), page, page_size

Response:
  - 200: {resources, total, page}
*/
func (handler *Handler) listResources(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	sortBy := query.Get("sort_by")
	if sortBy != "" {
		err := (&validate.Validator{}).
			OneOf("sort_by", sortBy, resource.SortNewest, resource.SortPopular, resource.SortRating).
			Err()
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	page := pagination.FromRequest(request)
	items, total := handler.store.ListResources(ListFilter{
		Search: query.Get("search"),
		Type:   query.Get("type"),
		Tag:    query.Get("tag"),
		SortBy: sortBy,
	}, page)

	respond.OK(writer, resource.Page{Resources: items, Total: total, Page: page.Page})
}

// getResource handles GET /api/v1/resources/{id}.
func (handler *Handler) getResource(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.store.ViewResource(requestutil.Param(request, "id"), viewerID(request), isAdmin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]resource.Resource{"resource": item})
}

// similarResources handles GET /api/v1/resources/{id}/similar.
func (handler *Handler) similarResources(writer http.ResponseWriter, request *http.Request) {
	limit := requestutil.QueryInt(request, "limit", 4)

	items, err := handler.store.SimilarResources(requestutil.Param(request, "id"), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]resource.Resource{"resources": items})
}

// recommendations handles GET /api/v1/recommendations.
func (handler *Handler) recommendations(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items := handler.store.Recommendations(user.ID, requestutil.QueryInt(request, "limit", 10))
	respond.OK(writer, map[string][]resource.Resource{"resources": items})
}

// # Uploads

/*
UploadResource stores a new file and its metadata.

POST /api/v1/resources

Request:
  - Body: multipart/form-data with title, description, type, sharing_level,
    tags (comma separated) and file

Response:
  - 201: {resource}
  - 400: VALIDATION_ERROR for missing metadata or an empty file
*/
func (handler *Handler) uploadResource(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, maxUploadBytes)
	if err := request.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart body"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "A file is required"))
		return
	}
	defer file.Close()

	sharing := resource.SharingLevel(request.FormValue("sharing_level"))
	if sharing == "" {
		sharing = resource.SharingPublic
	}

	upload := resource.Upload{
		Title:        request.FormValue("title"),
		Description:  request.FormValue("description"),
		Type:         resource.Type(request.FormValue("type")),
		SharingLevel: sharing,
		Tags:         resource.SplitTags(request.FormValue("tags")),
		FileName:     header.Filename,
		Size:         header.Size,
		Content:      file,
	}
	if err := upload.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	created, err := handler.store.CreateResource(user.ID, NewUpload{
		Title:        upload.Title,
		Description:  upload.Description,
		Type:         upload.Type,
		SharingLevel: upload.SharingLevel,
		Tags:         upload.Tags,
		FileName:     upload.FileName,
		Content:      content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]resource.Resource{"resource": created})
}

// # Downloads

/*
DownloadLink issues a pre-signed URL for the file of a resource.

GET /api/v1/resources/{id}/download

Description: The link embeds a short-lived signed token, so it can be opened
without the bearer header. The download is counted when the file is served.

Response:
  - 200: {download_url}
  - 404: Resource not found
*/
func (handler *Handler) downloadLink(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	if !handler.store.ResourceExists(id) {
		respond.Error(writer, request, apperr.NotFound("Resource"))
		return
	}

	token, err := handler.files.GenerateAccessToken(id, "", "")
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}
	link := fmt.Sprintf("%s://%s/api/v1/files/%s?token=%s", scheme, request.Host, url.PathEscape(id), url.QueryEscape(token))
	respond.OK(writer, map[string]string{"download_url": link})
}

// serveFile handles GET /api/v1/files/{id}?token=...
func (handler *Handler) serveFile(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	claims, err := handler.files.VerifyToken(request.URL.Query().Get("token"))
	if err != nil || claims.Subject != id {
		respond.Error(writer, request, apperr.Forbidden("Download link is invalid or expired"))
		return
	}

	item, content, err := handler.store.Download(id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.HeaderContentType, item.FileType)
	writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.FileName))
	http.ServeContent(writer, request, item.FileName, item.UpdatedAt, bytes.NewReader(content))
}

// # Reports

/*
ReportResource files a moderation report.

POST /api/v1/resources/{id}/report

Response:
  - 201: {message, report}
  - 409: The caller already has a pending report on this resource
*/
func (handler *Handler) reportResource(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input resource.ReportInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.store.FileReport(user.ID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, struct {
		Message string       `json:"message"`
		Report  admin.Report `json:"report"`
	}{"Report submitted", report})
}

// # Comments

// listComments handles GET /api/v1/resources/{id}/comments.
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.store.Comments(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if comments == nil {
		comments = []social.Comment{}
	}
	respond.OK(writer, map[string][]social.Comment{"comments": comments})
}

// addComment handles POST /api/v1/resources/{id}/comments.
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input social.NewComment
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.store.AddComment(user.ID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]social.Comment{"comment": comment})
}

// # Ratings

// getRating handles GET /api/v1/resources/{id}/rating.
func (handler *Handler) getRating(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.store.RatingSummary(requestutil.Param(request, "id"), viewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

// rateResource handles POST /api/v1/resources/{id}/rating.
func (handler *Handler) rateResource(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.currentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Value int `json:"value"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rating, err := handler.store.Rate(user.ID, requestutil.Param(request, "id"), input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]social.Rating{"rating": rating})
}
