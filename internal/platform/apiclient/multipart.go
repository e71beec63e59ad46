// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// FilePart is the file section of a multipart upload.
type FilePart struct {
	Field    string
	FileName string
	Content  io.Reader
}

// PostMultipart issues a multipart/form-data POST with plain fields and one file.
//
// The form is buffered in memory before sending.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file FilePart, out any) error {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("apiclient: write field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile(file.Field, file.FileName)
	if err != nil {
		return fmt.Errorf("apiclient: create file part: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return fmt.Errorf("apiclient: copy file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("apiclient: close multipart: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, nil, &buffer, writer.FormDataContentType(), out)
}
