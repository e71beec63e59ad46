// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package resource is the domain service module for the shared academic files.

It covers listing, detail, upload, download links, reports, similar resources
and personalised recommendations.
*/
package resource

import (
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/validate"
	"github.com/taibuivan/campusshare/pkg/slice"
	"github.com/taibuivan/campusshare/pkg/slug"
)

// # Enumerations

// Type classifies the uploaded material.
type Type string

const (
	TypeNotes      Type = "notes"
	TypeSlides     Type = "slides"
	TypeTextbook   Type = "textbook"
	TypeAssignment Type = "assignment"
	TypeExam       Type = "exam"
	TypeVideo      Type = "video"
	TypeOther      Type = "other"
)

// Types lists every accepted [Type] in display order.
var Types = []Type{TypeNotes, TypeSlides, TypeTextbook, TypeAssignment, TypeExam, TypeVideo, TypeOther}

// SharingLevel limits who may see a resource.
type SharingLevel string

const (
	SharingPublic     SharingLevel = "public"
	SharingUniversity SharingLevel = "university"
	SharingCourse     SharingLevel = "course"
)

// Sort orders accepted by the listing endpoint.
const (
	SortNewest  = "newest"
	SortPopular = "popular"
	SortRating  = "rating"
)

// ReportType names the reason category of a report.
type ReportType string

const (
	ReportInappropriate ReportType = "inappropriate"
	ReportCopyright     ReportType = "copyright"
	ReportSpam          ReportType = "spam"
	ReportOther         ReportType = "other"
)

// # Domain Entities

// Resource is an uploaded academic file record.
//
// Bookmark state is not a field here. It lives in a separate collection and
// is joined on the client by the bookmark package.
type Resource struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	User          *auth.User   `json:"user,omitempty"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Type          Type         `json:"type"`
	FileName      string       `json:"file_name"`
	FileSize      int64        `json:"file_size"`
	FileType      string       `json:"file_type"`
	SharingLevel  SharingLevel `json:"sharing_level"`
	IsApproved    bool         `json:"is_approved"`
	DownloadCount int          `json:"download_count"`
	ViewCount     int          `json:"view_count"`
	AverageRating float64      `json:"average_rating"`
	Tags          []TagLink    `json:"tags,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TagLink is the resource-to-tag association as serialized by the backend.
type TagLink struct {
	Tag Tag `json:"tag"`
}

// Tag is a normalized label.
type Tag struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// TagNames flattens the tag associations.
func (r Resource) TagNames() []string {
	return slice.Map(r.Tags, func(link TagLink) string { return link.Tag.Name })
}

// AuthorName returns the uploader's display name when embedded.
func (r Resource) AuthorName() string {
	if r.User == nil {
		return ""
	}
	return r.User.FullName()
}

// # Queries

// ListParams filters the resource listing.
type ListParams struct {
	Search       string
	Type         Type
	Tag          string
	SortBy       string
	Page         int
	PageSize     int
	UniversityID string
}

// Query encodes the non-zero parameters.
func (p ListParams) Query() url.Values {
	query := url.Values{}
	setIf(query, "search", strings.TrimSpace(p.Search))
	setIf(query, "type", string(p.Type))
	setIf(query, "tag", p.Tag)
	setIf(query, "sort_by", p.SortBy)
	setIf(query, "university_id", p.UniversityID)
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return query
}

// Page is one page of the resource listing.
type Page struct {
	Resources []Resource `json:"resources"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
}

// # Payloads

// Upload describes a new resource and its file.
type Upload struct {
	Title        string
	Description  string
	Type         Type
	SharingLevel SharingLevel
	Tags         []string
	FileName     string
	Size         int64
	Content      io.Reader
}

// Validate applies the upload form rules.
func (u Upload) Validate() error {
	return (&validate.Validator{}).
		Required("title", u.Title).
		MaxLen("title", u.Title, 200).
		OneOf("type", string(u.Type), slice.Map(Types, func(t Type) string { return string(t) })...).
		OneOf("sharing_level", string(u.SharingLevel), string(SharingPublic), string(SharingUniversity), string(SharingCourse)).
		Required("file", u.FileName).
		NonEmpty("file", u.Size).
		Custom("file", u.Content == nil, "A file is required").
		Err()
}

// NormalizeTags slugs, de-duplicates and drops empty tags, keeping input order.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, candidate := range raw {
		tag := slug.From(candidate)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// SplitTags parses the comma separated tag field of the upload form.
func SplitTags(field string) []string {
	return NormalizeTags(strings.Split(field, ","))
}

// ReportInput is the body of a report against a resource.
type ReportInput struct {
	Type   ReportType `json:"type"`
	Reason string     `json:"reason"`
}

// Validate rejects unknown categories and empty reasons.
func (r ReportInput) Validate() error {
	return (&validate.Validator{}).
		OneOf("type", string(r.Type), string(ReportInappropriate), string(ReportCopyright), string(ReportSpam), string(ReportOther)).
		Required("reason", r.Reason).
		MaxLen("reason", r.Reason, 1000).
		Err()
}

func setIf(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
