// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Listings are requested with 1-indexed "page" and "page_size" query
// parameters. Out-of-range values fall back to the defaults instead of
// failing the request.
package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Query parameter names.
const (
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the index of the first item on [Params.Page].
//
// A page too far out to index saturates at [math.MaxInt], which [Apply]
// treats as past the end.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// FromRequest parses "page" and "page_size" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or negative values fall back to [DefaultPage] and [DefaultLimit].
// A page size above [MaxLimit] is capped at [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, ParamPage, DefaultPage)
	limit := parseIntParam(r, ParamPageSize, DefaultLimit)

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Apply returns the window of items selected by p. It never returns nil.
func Apply[T any](items []T, p Params) []T {
	offset := p.Offset()
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Limit < end-offset {
		end = offset + p.Limit
	}
	return items[offset:end]
}

// parseIntParam parses a single positive integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultVal
	}

	return n
}
