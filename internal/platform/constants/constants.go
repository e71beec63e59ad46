// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Metadata: application name and version.
  - Client Timing: request, debounce and session-restore limits.
  - Server Timing: timeouts for the reference backend.
  - Rate Limiting: token-bucket parameters for the reference backend.
  - Headers and JSON field identifiers shared by both sides of the wire.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "campusshare"
	AppVersion = "0.1.0-dev"
	UserAgent  = AppName + "/" + AppVersion
)

// # Client Timing

const (
	// DefaultRequestTimeout bounds a single outbound API call.
	DefaultRequestTimeout = 15 * time.Second

	// DefaultDebounce is how long filter input must be stable before a reload.
	DefaultDebounce = 500 * time.Millisecond

	// SessionRestoreTimeout bounds the startup /auth/me round trip.
	SessionRestoreTimeout = 10 * time.Second
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim of tokens minted by the reference backend.
	AuthIssuer = "campusshare.local"

	// MinPasswordLength mirrors the backend's registration rule.
	MinPasswordLength = 8
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"

	ContentTypeJSON = "application/json; charset=utf-8"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)
