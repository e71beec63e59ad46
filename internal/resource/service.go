// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resource

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/campusshare/internal/platform/apiclient"
)

// Service maps the resource endpoints onto named operations.
type Service struct {
	api *apiclient.Client
}

// NewService constructs a new [Service].
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// List fetches one page of resources matching params.
func (service *Service) List(ctx context.Context, params ListParams) (*Page, error) {
	var out Page
	if err := service.api.Get(ctx, "/resources", params.Query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single resource.
func (service *Service) Get(ctx context.Context, id string) (*Resource, error) {
	var out struct {
		Resource Resource `json:"resource"`
	}
	if err := service.api.Get(ctx, "/resources/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Resource, nil
}

/*
Upload sends the file and its metadata as one multipart request.

Description: Tags are normalized before sending. Uploads are never retried
automatically; a failed upload must be resubmitted by the user.

Returns:
  - *Resource: The created record, including its server-assigned ID
  - error: VALIDATION_ERROR before sending, or any backend error
*/
func (service *Service) Upload(ctx context.Context, upload Upload) (*Resource, error) {
	if upload.SharingLevel == "" {
		upload.SharingLevel = SharingPublic
	}
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"title":         upload.Title,
		"description":   upload.Description,
		"type":          string(upload.Type),
		"sharing_level": string(upload.SharingLevel),
	}
	if tags := NormalizeTags(upload.Tags); len(tags) > 0 {
		fields["tags"] = strings.Join(tags, ",")
	}

	var out struct {
		Resource Resource `json:"resource"`
	}
	file := apiclient.FilePart{Field: "file", FileName: upload.FileName, Content: upload.Content}
	if err := service.api.PostMultipart(ctx, "/resources", fields, file, &out); err != nil {
		return nil, err
	}
	return &out.Resource, nil
}

// DownloadURL fetches a pre-signed download link.
func (service *Service) DownloadURL(ctx context.Context, id string) (string, error) {
	var out struct {
		DownloadURL string `json:"download_url"`
	}
	if err := service.api.Get(ctx, "/resources/"+url.PathEscape(id)+"/download", nil, &out); err != nil {
		return "", err
	}
	return out.DownloadURL, nil
}

// Report files a moderation report against a resource.
func (service *Service) Report(ctx context.Context, id string, input ReportInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	return service.api.Post(ctx, "/resources/"+url.PathEscape(id)+"/report", input, nil)
}

// Similar fetches resources related to id.
func (service *Service) Similar(ctx context.Context, id string, limit int) ([]Resource, error) {
	var out struct {
		Resources []Resource `json:"resources"`
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := service.api.Get(ctx, "/resources/"+url.PathEscape(id)+"/similar", query, &out); err != nil {
		return nil, err
	}
	return out.Resources, nil
}

// Recommendations fetches personalised suggestions for the caller.
func (service *Service) Recommendations(ctx context.Context, limit int) ([]Resource, error) {
	var out struct {
		Resources []Resource `json:"resources"`
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := service.api.Get(ctx, "/recommendations", query, &out); err != nil {
		return nil, err
	}
	return out.Resources, nil
}
