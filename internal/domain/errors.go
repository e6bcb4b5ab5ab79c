// Package domain contains business types and errors for Networker protection management.
// Domain errors represent Networker-level failures, NOT transport errors.
// Adapters translate HTTP outcomes into these kinds and callers map them to their own conventions.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a Networker API failure.
type Kind int

const (
	// KindAPI is the base kind for any failed interaction with the Networker API.
	KindAPI Kind = iota

	// KindNotFound indicates a missing resource, upstream (404) or locally (unknown VM).
	KindNotFound

	// KindBadRequest indicates the API rejected the request body or parameters.
	KindBadRequest

	// KindServer indicates the Networker server failed (5xx).
	KindServer

	// KindAccessDenied indicates missing or rejected credentials.
	KindAccessDenied
)

// Sentinel errors for use with errors.Is().
var (
	// ErrAPI matches every Networker API error regardless of kind.
	ErrAPI = errors.New("networker api error")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest indicates invalid request body or parameters.
	ErrBadRequest = errors.New("bad request")

	// ErrServer indicates the Networker server encountered an error.
	ErrServer = errors.New("server error")

	// ErrAccessDenied indicates authentication or authorization failed.
	ErrAccessDenied = errors.New("access denied")

	// ErrValidation indicates operation input was rejected before contacting Networker.
	ErrValidation = errors.New("validation failed")
)

// kindDefaults holds the fallback message and status for a kind.
type kindDefaults struct {
	name     string
	message  string
	status   int
	sentinel error
}

// defaults is consulted whenever an upstream message or status is missing.
var defaults = map[Kind]kindDefaults{
	KindAPI: {
		name:     "APIError",
		message:  "Error while interacting with Networker API",
		status:   http.StatusBadRequest,
		sentinel: ErrAPI,
	},
	KindNotFound: {
		name:     "NotFoundError",
		message:  "Content not found",
		status:   http.StatusNotFound,
		sentinel: ErrNotFound,
	},
	KindBadRequest: {
		name:     "BadRequestError",
		message:  "Invalid request body or parameters",
		status:   http.StatusBadRequest,
		sentinel: ErrBadRequest,
	},
	KindServer: {
		name:     "ServerError",
		message:  "Networker Server encountered an error. Please try again",
		status:   http.StatusInternalServerError,
		sentinel: ErrServer,
	},
	KindAccessDenied: {
		name:     "AccessDeniedError",
		message:  "Username or password invalid or access to Networker api not granted.",
		status:   http.StatusForbidden,
		sentinel: ErrAccessDenied,
	},
}

// String returns the kind's error type name.
func (k Kind) String() string {
	if d, ok := defaults[k]; ok {
		return d.name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// DefaultMessage returns the message used when the upstream message is absent.
func (k Kind) DefaultMessage() string {
	return defaults[k].message
}

// DefaultStatus returns the status code used when the upstream status is absent.
func (k Kind) DefaultStatus() int {
	return defaults[k].status
}

// APIError is a classified Networker failure.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
}

// Error implements the error interface.
// The message is reported verbatim so callers can surface it as-is.
func (e *APIError) Error() string {
	return e.Message
}

// Is reports whether target is ErrAPI or the sentinel of the error's kind.
func (e *APIError) Is(target error) bool {
	if target == ErrAPI {
		return true
	}

	d, ok := defaults[e.Kind]

	return ok && target == d.sentinel
}

// NewAPIError creates an error of the given kind.
// An empty message or a zero status falls back to the kind defaults.
func NewAPIError(kind Kind, status int, message string) error {
	if message == "" {
		message = kind.DefaultMessage()
	}

	if status == 0 {
		status = kind.DefaultStatus()
	}

	return &APIError{Kind: kind, StatusCode: status, Message: message}
}

// NewNotFoundError creates a not found error with the given message.
func NewNotFoundError(message string) error {
	return NewAPIError(KindNotFound, 0, message)
}

// NewBadRequestError creates a bad request error with the given message.
func NewBadRequestError(message string) error {
	return NewAPIError(KindBadRequest, 0, message)
}

// NewServerError creates a server error with the given message.
func NewServerError(message string) error {
	return NewAPIError(KindServer, 0, message)
}

// NewAccessDeniedError creates an access denied error with the given message.
func NewAccessDeniedError(message string) error {
	return NewAPIError(KindAccessDenied, 0, message)
}

// NewVMNotFoundError reports a VM name missing from the Networker inventory.
func NewVMNotFoundError(name string) error {
	return NewNotFoundError(fmt.Sprintf("VM %s not found in Networker", name))
}

// ValidationError provides context for rejected operation input.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// KindOf returns the kind of a classified error.
// The second return value is false when err carries no APIError.
func KindOf(err error) (Kind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}

	return KindAPI, false
}

// StatusCodeOf returns the status code of a classified error, or 0.
func StatusCodeOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// MessageOf returns the message of a classified error without any wrapping
// context, or err.Error() for other errors.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	return err.Error()
}

// IsAPIError checks if an error is any classified Networker error.
func IsAPIError(err error) bool {
	return errors.Is(err, ErrAPI)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsBadRequest checks if an error is a bad request error.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// IsServer checks if an error is a server error.
func IsServer(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAccessDenied checks if an error is an access denied error.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}
