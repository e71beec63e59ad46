// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer builds the optional fields of partial-update payloads.

A nil field is left out of the request body; a non-nil one is sent even when
it holds the zero value.
*/
package pointer

// To returns a pointer to the provided value (e.g. pointer.To("Physics")).
func To[T any](v T) *T {
	return &v
}
