package clients

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OutcomeKind tags the result of a Networker request.
type OutcomeKind int

const (
	// OutcomeSuccess is a 200 response with a JSON body.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeEmpty is a 201 or 204 response; the body is not read.
	OutcomeEmpty

	// OutcomeFailure is any other status, or a transport failure without response.
	OutcomeFailure
)

// String returns a readable name for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailure:
		return "failure"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the classified result of one request.
type Outcome struct {
	Kind OutcomeKind

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Body holds the JSON document of a successful response, or the raw
	// response body of a failure (which may not be JSON).
	Body []byte

	// Message is the transport's description: the status text, or the
	// transport error when no response was received.
	Message string
}

// Decode unmarshals a successful body into v.
// Empty outcomes leave v untouched.
func (o *Outcome) Decode(v any) error {
	if o.Kind != OutcomeSuccess {
		return nil
	}

	if err := json.Unmarshal(o.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// classify maps a response to an Outcome.
func classify(resp *http.Response) (*Outcome, error) {
	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil || !json.Valid(body) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, resp.Status)
		}

		return &Outcome{Kind: OutcomeSuccess, StatusCode: resp.StatusCode, Body: body, Message: resp.Status}, nil

	case http.StatusCreated, http.StatusNoContent:
		return &Outcome{Kind: OutcomeEmpty, StatusCode: resp.StatusCode, Message: resp.Status}, nil

	default:
		// The body is best effort; classification falls back to the status text.
		body, _ := io.ReadAll(resp.Body)

		return &Outcome{Kind: OutcomeFailure, StatusCode: resp.StatusCode, Body: body, Message: resp.Status}, nil
	}
}
