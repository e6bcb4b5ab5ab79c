// Package acl is the Anti-Corruption Layer between the Networker REST API
// and the domain.
//
// It keeps Networker's wire format out of the rest of the codebase:
//
//   - Inventory and protection group documents are decoded into unexported
//     DTOs and translated to [domain.VM] values and UUID lists.
//   - Failed outcomes are converted to [domain.APIError] values by
//     [ClassifyFailure], which is the only place HTTP statuses become kinds.
//
// # Package Components
//
//   - [BaseAdapter]: embeddable request helper that classifies failures
//   - [ErrorResponse] / [ParseErrorResponse]: Networker error documents
//   - [ClassifyFailure]: status precedence to error kind
//   - [DecodeResponse] / [TranslateSlice]: generic decoding helpers
//   - [NetworkerClient]: the adapter implementing ports.NetworkerClient
//
// # Error Handling Strategy
//
// Networker failures are classified by status:
//   - 5xx → [domain.ErrServer]
//   - 404 → [domain.ErrNotFound]
//   - 401/403 → [domain.ErrAccessDenied]
//   - 400 → [domain.ErrBadRequest]
//   - anything else, including transport errors → [domain.ErrAPI]
//
// A 200 response without JSON is not classified; [clients.ErrInvalidJSON]
// is passed through unchanged.
package acl
