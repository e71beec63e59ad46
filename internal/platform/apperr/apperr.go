// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error taxonomy for CampusShare.

The same [AppError] type is produced by the reference backend when it writes an
error response and by the HTTP client adapter when it reads one, so callers on
either side match on the machine-readable Code and never on message text.

Taxonomy:

  - Transport: no response reached the client (offline, backend down).
  - Validation: structured 4xx describing bad input, with per-field details.
  - Authorization: 401/403, handled by forced logout or a permission redirect.
  - NotFound: the referenced entity is absent.
  - Consistency: client-only defect signal (e.g. a bookmark card without an id).
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeTransport          = "TRANSPORT_ERROR"
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeRateLimited        = "RATE_LIMITED"
	CodeUnprocessable      = "UNPROCESSABLE"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeConsistency        = "CONSISTENCY_ERROR"
)

// AppError is the canonical error type for CampusShare.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for logging only and is never serialized.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "EMAIL_TAKEN").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to a user.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code. Zero for client-only errors.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// HasField reports whether the error carries a detail for the named field.
func (e *AppError) HasField(field string) bool {
	for _, detail := range e.Details {
		if detail.Field == field {
			return true
		}
	}
	return false
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Resource") // Returns "Resource not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// EmailTaken creates a 409 [AppError] for a registration with a known email.
func EmailTaken() *AppError {
	return &AppError{
		Code:       CodeEmailTaken,
		Message:    "Email is already registered",
		HTTPStatus: http.StatusConflict,
	}
}

// WeakPassword creates a 400 [AppError] for a password below the minimum length.
func WeakPassword(minLength int) *AppError {
	return &AppError{
		Code:       CodeWeakPassword,
		Message:    fmt.Sprintf("Password must be at least %d characters", minLength),
		HTTPStatus: http.StatusBadRequest,
		Details:    []FieldError{{Field: "password", Message: fmt.Sprintf("Minimum %d characters", minLength)}},
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Unprocessable creates a 422 [AppError] for semantically invalid input.
func Unprocessable(msg string) *AppError {
	return &AppError{
		Code:       CodeUnprocessable,
		Message:    msg,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for maintenance mode.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Client-only Errors

// Transport creates an [AppError] for a request that never received a response.
func Transport(cause error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Message: "The service is unreachable",
		Cause:   cause,
	}
}

// Consistency creates an [AppError] signalling a client-side invariant violation.
//
// It marks a defect, not a retryable failure, and must never be swallowed.
func Consistency(msg string) *AppError {
	return &AppError{
		Code:    CodeConsistency,
		Message: msg,
	}
}

// FromResponse rebuilds an [AppError] from a decoded error body.
//
// When the body carries no code, one is derived from the HTTP status so that
// callers never need to inspect the message.
func FromResponse(status int, code, message string, details []FieldError) *AppError {
	if code == "" {
		code = codeForStatus(status)
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
		Details:    details,
	}
}

// codeForStatus maps an HTTP status onto the default error code.
func codeForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return CodeValidation
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusForbidden:
		return CodeForbidden
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusConflict:
		return CodeConflict
	case status == http.StatusUnprocessableEntity:
		return CodeUnprocessable
	case status == http.StatusTooManyRequests:
		return CodeRateLimited
	case status == http.StatusServiceUnavailable:
		return CodeServiceUnavailable
	default:
		return CodeInternal
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries one of the given codes.
func HasCode(err error, codes ...string) bool {
	ae := As(err)
	if ae == nil {
		return false
	}
	for _, code := range codes {
		if ae.Code == code {
			return true
		}
	}
	return false
}

// IsTransport reports whether err means no response reached the client.
func IsTransport(err error) bool { return HasCode(err, CodeTransport) }

// IsValidation reports whether err describes rejected input.
func IsValidation(err error) bool {
	return HasCode(err, CodeValidation, CodeWeakPassword, CodeUnprocessable)
}

// IsUnauthorized reports whether err is an authentication rejection (401).
func IsUnauthorized(err error) bool { return HasCode(err, CodeUnauthorized) }

// IsForbidden reports whether err is a permission rejection (403).
func IsForbidden(err error) bool { return HasCode(err, CodeForbidden) }

// IsNotFound reports whether err means the referenced entity is absent.
func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }

// IsConsistency reports whether err is a client-side invariant violation.
func IsConsistency(err error) bool { return HasCode(err, CodeConsistency) }
