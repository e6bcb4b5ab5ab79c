// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrAccessDenied, etc.)
package ports

import (
	"context"

	"github.com/jsamuelsen/networker-service/internal/domain"
)

// NetworkerClient is the contract for the Networker REST API.
// Each method issues exactly one request; implementations never retry.
//
// Failures are classified domain errors (domain.ErrAPI and one of its kinds).
// A 200 response that is not JSON is reported as an infrastructure error.
type NetworkerClient interface {
	// RefreshVCenters triggers an inventory refresh of every registered vCenter.
	// Returns the decoded response body, or nil when Networker sent none.
	RefreshVCenters(ctx context.Context) (any, error)

	// ListVMs returns the current VM inventory.
	ListVMs(ctx context.Context) ([]domain.VM, error)

	// ProtectionGroupVMs returns the UUIDs of the VMs in a protection group.
	// Returns domain.ErrNotFound if the group does not exist.
	ProtectionGroupVMs(ctx context.Context, group string) ([]string, error)

	// UpdateWorkItems adds or removes the given VMs from a protection group.
	UpdateWorkItems(ctx context.Context, group string, mode domain.Mode, vcenter string, uuids []string) error
}
