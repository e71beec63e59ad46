// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campusshare/internal/platform/apperr"
)

/*
TestFromResponse_DerivesCodeFromStatus verifies that code-less error bodies
are still classified by code.
*/
func TestFromResponse_DerivesCodeFromStatus(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, apperr.CodeValidation},
		{http.StatusUnauthorized, apperr.CodeUnauthorized},
		{http.StatusForbidden, apperr.CodeForbidden},
		{http.StatusNotFound, apperr.CodeNotFound},
		{http.StatusConflict, apperr.CodeConflict},
		{http.StatusTooManyRequests, apperr.CodeRateLimited},
		{http.StatusBadGateway, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			ae := apperr.FromResponse(tt.status, "", "", nil)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.status, ae.HTTPStatus)
			assert.NotEmpty(t, ae.Message)
		})
	}
}

/*
TestFromResponse_KeepsServerCode verifies that an explicit code wins over the status.
*/
func TestFromResponse_KeepsServerCode(t *testing.T) {
	ae := apperr.FromResponse(http.StatusConflict, apperr.CodeEmailTaken, "taken", nil)
	assert.Equal(t, apperr.CodeEmailTaken, ae.Code)
	assert.Equal(t, "taken", ae.Error())
}

/*
TestClassifiers_TraverseWrapping verifies helpers see through fmt.Errorf wrapping.
*/
func TestClassifiers_TraverseWrapping(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("login: %w", apperr.Transport(cause))

	assert.True(t, apperr.IsTransport(err))
	assert.False(t, apperr.IsUnauthorized(err))
	assert.ErrorIs(t, err, cause)

	assert.True(t, apperr.IsValidation(apperr.WeakPassword(8)))
	assert.True(t, apperr.IsNotFound(apperr.NotFound("Resource")))
	assert.True(t, apperr.IsConsistency(apperr.Consistency("missing bookmark id")))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeInternal))
}

/*
TestAppError_HasField checks per-field detail lookup.
*/
func TestAppError_HasField(t *testing.T) {
	ae := apperr.WeakPassword(8)
	require.Len(t, ae.Details, 1)
	assert.True(t, ae.HasField("password"))
	assert.False(t, ae.HasField("email"))
}
