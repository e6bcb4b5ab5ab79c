package acl

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jsamuelsen/networker-service/internal/adapters/clients"
	"github.com/jsamuelsen/networker-service/internal/domain"
)

// ErrorResponse is the error document Networker returns with failed requests.
type ErrorResponse struct {
	Message string     `json:"message"`
	Status  statusCode `json:"status"`
}

// statusCode accepts the status as a JSON number or a numeric string.
// Any other value, such as a structured status object, decodes as 0 so the
// rest of the document still counts.
type statusCode int

// UnmarshalJSON implements json.Unmarshaler.
func (s *statusCode) UnmarshalJSON(data []byte) error {
	n, err := strconv.Atoi(string(bytes.Trim(data, `"`)))
	if err != nil {
		n = 0
	}

	*s = statusCode(n)

	return nil
}

// ParseErrorResponse attempts to parse an error response body.
// Returns nil if the body is empty or is not a JSON object.
func ParseErrorResponse(body []byte) *ErrorResponse {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return nil
	}

	return &errResp
}

// ClassifyFailure converts a failed outcome into a domain error.
//
// The message and status are read from the error document. When the body
// cannot be parsed, the transport message and status are used instead. A
// document without a status keeps the HTTP status of the response. The
// status then selects the kind:
//
//   - >= 500 → server error
//   - 404 → not found
//   - 401, 403 → access denied
//   - 400 → bad request
//   - anything else → API error
func ClassifyFailure(outcome *clients.Outcome) error {
	if outcome == nil {
		return domain.NewAPIError(domain.KindAPI, 0, "")
	}

	message := outcome.Message
	status := outcome.StatusCode

	if errResp := ParseErrorResponse(outcome.Body); errResp != nil {
		message = errResp.Message
		if errResp.Status != 0 {
			status = int(errResp.Status)
		}
	}

	return domain.NewAPIError(kindForStatus(status), status, message)
}

// kindForStatus maps a status code to an error kind.
func kindForStatus(status int) domain.Kind {
	switch {
	case status >= http.StatusInternalServerError:
		return domain.KindServer
	case status == http.StatusNotFound:
		return domain.KindNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return domain.KindAccessDenied
	case status == http.StatusBadRequest:
		return domain.KindBadRequest
	default:
		return domain.KindAPI
	}
}
