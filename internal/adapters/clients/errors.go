// Package clients provides the HTTP transport for the Networker REST API.
package clients

import "errors"

// Client errors represent failures in the HTTP client layer.
// These are distinct from domain errors: a non-2xx status is reported as a
// failed Outcome and classified by the ACL layer, not returned as an error here.
var (
	// ErrInvalidJSON is returned when a 200 response carries a body that is not JSON.
	// It signals a misconfigured endpoint or proxy rather than a Networker failure.
	ErrInvalidJSON = errors.New("Server returned error with invalid JSON") //nolint:staticcheck // surfaced verbatim to callers

	// ErrNilConfig is returned by New when no configuration is supplied.
	ErrNilConfig = errors.New("config is required")
)

// MissingCredentialsMessage is reported when hostname, username or password is unset.
const MissingCredentialsMessage = "Username, password or hostname not defined"
