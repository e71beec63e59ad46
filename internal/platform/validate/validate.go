// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field-level failures into one VALIDATION_ERROR.

Forms run it before a request leaves the client and the reference backend runs
it again on arrival, so a rejected registration or upload looks the same to
the page whichever side caught it.

	err := (&validate.Validator{}).
		Required("title", upload.Title).
		OneOf("resource_type", string(upload.Type), types...).
		Err()
*/
package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/taibuivan/campusshare/internal/platform/apperr"
)

// ErrInvalidJSON is the error for a request body that does not decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates failures. The zero value is ready to use; it is not
// safe for concurrent use.
type Validator struct {
	failures []apperr.FieldError
}

// Required fails a value that is empty after trimming spaces.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// OneOf fails a value outside allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.Custom(field, !slices.Contains(allowed, value),
		"Must be one of: "+strings.Join(allowed, ", "))
}

// Range fails a value outside [low, high].
func (v *Validator) Range(field string, value, low, high int) *Validator {
	return v.Custom(field, value < low || value > high,
		fmt.Sprintf("Must be between %d and %d", low, high))
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// HasErrors reports whether anything failed so far.
func (v *Validator) HasErrors() bool { return len(v.failures) > 0 }

// Err ends the chain: nil when every rule passed, otherwise one
// VALIDATION_ERROR listing all failures in the order they were recorded.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.failures...)
}

// RequiredError builds a VALIDATION_ERROR for a single field.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
