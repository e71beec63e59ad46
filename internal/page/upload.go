// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"io"

	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/resource"
)

// UploadForm is the upload screen's input as the user typed it.
type UploadForm struct {
	Title        string
	Description  string
	Type         resource.Type
	SharingLevel resource.SharingLevel

	// Tags is the raw comma separated field.
	Tags string

	FileName string
	Size     int64
	Content  io.Reader
}

// DefaultUploadForm returns the values the form opens with.
func DefaultUploadForm() UploadForm {
	return UploadForm{Type: resource.TypeNotes, SharingLevel: resource.SharingPublic}
}

/*
SubmitUpload validates the form and sends it as one multipart request.

Returns:
  - *resource.Resource: The created record
  - error: VALIDATION_ERROR before any request is made, or the backend error.
    The upload is not retried.
*/
func SubmitUpload(ctx context.Context, deps Deps, form UploadForm) (*resource.Resource, error) {
	if form.Content == nil || form.FileName == "" {
		return nil, apperr.ValidationError("Please select a file to upload.",
			apperr.FieldError{Field: "file", Message: "A file is required"})
	}

	return deps.Resources.Upload(ctx, resource.Upload{
		Title:        form.Title,
		Description:  form.Description,
		Type:         form.Type,
		SharingLevel: form.SharingLevel,
		Tags:         resource.SplitTags(form.Tags),
		FileName:     form.FileName,
		Size:         form.Size,
		Content:      form.Content,
	})
}
