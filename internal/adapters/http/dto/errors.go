// Package dto holds the gateway's request and response bodies and maps
// Networker errors onto HTTP responses.
package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/networker-service/internal/domain"
	"github.com/jsamuelsen/networker-service/internal/platform/logging"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail carries one of the ErrorCode constants. Details maps request
// fields to their validation messages.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes.
const (
	// ErrorCodeNotFound indicates the VM or protection group was not found.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeValidation indicates request validation failed.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeForbidden indicates the operation is not permitted.
	ErrorCodeForbidden = "FORBIDDEN"

	// ErrorCodeUnauthorized indicates authentication is required.
	ErrorCodeUnauthorized = "UNAUTHORIZED"

	// ErrorCodeUpstream indicates Networker failed or answered unexpectedly.
	ErrorCodeUpstream = "UPSTREAM_ERROR"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeBadRequest indicates the request was malformed or Networker rejected it.
	ErrorCodeBadRequest = "BAD_REQUEST"
)

// NewErrorResponse returns an envelope without details.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails returns an envelope with field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID sets the trace ID and returns e.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode returns the status written for code; unknown codes are 500.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrorCodeUpstream:
		return http.StatusBadGateway
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError classifies err. Networker errors keep Networker's message;
// anything unclassified becomes a 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())
		if validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, domain.MessageOf(err))

	case domain.IsBadRequest(err):
		return http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, domain.MessageOf(err))

	case domain.IsAccessDenied(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, domain.MessageOf(err))

	case domain.IsServer(err), domain.IsAPIError(err):
		return http.StatusBadGateway, NewErrorResponse(ErrorCodeUpstream, domain.MessageOf(err))

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, "request timed out")

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// HandleError writes the error response for err, including the trace ID
// when the request is traced. Internal errors are logged with full details.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			slog.String("error", err.Error()),
			slog.String("trace_id", errResp.TraceID),
		)
	}

	c.JSON(status, errResp)
}

// AbortWithErrorCode stops the handler chain with code's status.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), errResp)
}

// RespondWithValidationErrors writes a 400 listing each invalid field.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	errResp := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", fieldErrors)
	errResp.TraceID = GetTraceID(c)

	c.JSON(http.StatusBadRequest, errResp)
}

// GetTraceID returns the OpenTelemetry trace ID of the request, or "".
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}
