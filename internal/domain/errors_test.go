package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrAPI,
		ErrNotFound,
		ErrBadRequest,
		ErrServer,
		ErrAccessDenied,
		ErrValidation,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNewAPIError_Defaults(t *testing.T) {
	tests := []struct {
		name           string
		kind           Kind
		sentinel       error
		expectedMsg    string
		expectedStatus int
	}{
		{
			name:           "api",
			kind:           KindAPI,
			sentinel:       ErrAPI,
			expectedMsg:    "Error while interacting with Networker API",
			expectedStatus: 400,
		},
		{
			name:           "not found",
			kind:           KindNotFound,
			sentinel:       ErrNotFound,
			expectedMsg:    "Content not found",
			expectedStatus: 404,
		},
		{
			name:           "bad request",
			kind:           KindBadRequest,
			sentinel:       ErrBadRequest,
			expectedMsg:    "Invalid request body or parameters",
			expectedStatus: 400,
		},
		{
			name:           "server",
			kind:           KindServer,
			sentinel:       ErrServer,
			expectedMsg:    "Networker Server encountered an error. Please try again",
			expectedStatus: 500,
		},
		{
			name:           "access denied",
			kind:           KindAccessDenied,
			sentinel:       ErrAccessDenied,
			expectedMsg:    "Username or password invalid or access to Networker api not granted.",
			expectedStatus: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.kind, 0, "")

			assert.Equal(t, tt.expectedMsg, err.Error())
			assert.Equal(t, tt.expectedStatus, StatusCodeOf(err))
			require.ErrorIs(t, err, tt.sentinel)
			require.ErrorIs(t, err, ErrAPI)

			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestNewAPIError_UpstreamValuesWin(t *testing.T) {
	err := NewAPIError(KindServer, 503, "maintenance")

	assert.Equal(t, "maintenance", err.Error())
	assert.Equal(t, 503, StatusCodeOf(err))
	assert.True(t, IsServer(err))
	assert.False(t, IsNotFound(err))
}

func TestAPIError_KindsDoNotOverlap(t *testing.T) {
	err := NewNotFoundError("missing")

	assert.True(t, IsNotFound(err))
	assert.True(t, IsAPIError(err))
	assert.False(t, IsBadRequest(err))
	assert.False(t, IsServer(err))
	assert.False(t, IsAccessDenied(err))
	assert.False(t, IsValidation(err))
}

func TestAPIError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("resolving vms: %w", NewAccessDeniedError("nope"))

	assert.True(t, IsAccessDenied(err))
	assert.Equal(t, 403, StatusCodeOf(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "nope", apiErr.Message)
}

func TestNewVMNotFoundError(t *testing.T) {
	err := NewVMNotFoundError("demo01")

	assert.Equal(t, "VM demo01 not found in Networker", err.Error())
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 404, StatusCodeOf(err))
}

func TestKindOf_PlainError(t *testing.T) {
	kind, ok := KindOf(errors.New("boom"))

	assert.False(t, ok)
	assert.Equal(t, KindAPI, kind)
	assert.Equal(t, 0, StatusCodeOf(errors.New("boom")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "NotFoundError", KindNotFound.String())
	assert.Equal(t, "AccessDeniedError", KindAccessDenied.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "vm_names",
			message:     "must not be empty",
			expectedMsg: "validation failed for vm_names: must not be empty",
		},
		{
			name:        "without field",
			field:       "",
			message:     "general validation error",
			expectedMsg: "validation failed: general validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrValidation)
			assert.False(t, IsAPIError(err))

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestMessageOf(t *testing.T) {
	wrapped := fmt.Errorf("resolving vms: %w", NewVMNotFoundError("db01"))

	assert.Equal(t, "VM db01 not found in Networker", MessageOf(wrapped))
	assert.Equal(t, "resolving vms: VM db01 not found in Networker", wrapped.Error())
	assert.Equal(t, "plain failure", MessageOf(errors.New("plain failure")))
}
