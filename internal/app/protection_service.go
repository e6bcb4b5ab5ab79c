// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// What does NOT belong here:
//   - HTTP, CLI or Ansible specifics (that's adapters)
//   - Networker wire formats (that's the ACL)
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/jsamuelsen/networker-service/internal/domain"
	"github.com/jsamuelsen/networker-service/internal/platform/logging"
	"github.com/jsamuelsen/networker-service/internal/ports"
)

// ProtectionService refreshes vCenter inventory and reconciles protection
// group membership. Every operation issues its requests one after another
// and re-reads inventory and membership on each call.
type ProtectionService struct {
	client ports.NetworkerClient
	clock  clock.Clock
	logger *slog.Logger
}

// ProtectionServiceConfig contains configuration for the protection service.
type ProtectionServiceConfig struct {
	Client ports.NetworkerClient

	// Clock is used for the post-refresh wait. Defaults to the real clock.
	Clock clock.Clock

	Logger *slog.Logger
}

// UpdateRequest describes the desired membership of a set of VMs.
type UpdateRequest struct {
	VMNames         []string
	Mode            domain.Mode
	ProtectionGroup string
	VCenter         string
}

// NewProtectionService creates a new protection service with the provided dependencies.
// Panics if Client is nil.
func NewProtectionService(cfg ProtectionServiceConfig) *ProtectionService {
	if cfg.Client == nil {
		panic("ProtectionService: Client is required")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ProtectionService{
		client: cfg.Client,
		clock:  clk,
		logger: logger.With(slog.String("component", "app.ProtectionService")),
	}
}

// RefreshVCenters triggers an inventory refresh and then blocks for waitFor,
// giving Networker time to settle before VMs are looked up. The wait is a
// fixed delay and is not interrupted by ctx.
func (s *ProtectionService) RefreshVCenters(ctx context.Context, waitFor time.Duration) (any, error) {
	s.logger.InfoContext(ctx, "refreshing vcenters", slog.Duration("wait_for", waitFor))

	result, err := s.client.RefreshVCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing vcenters: %w", err)
	}

	if waitFor > 0 {
		s.logger.DebugContext(ctx, "waiting for vcenter refresh", slog.Duration("wait_for", waitFor))
		s.clock.Sleep(waitFor)
	}

	return result, nil
}

// ResolveVMUUIDs maps VM names to UUIDs, preserving order and duplicates.
//
// In removal mode a name missing from the inventory is skipped, since such a
// VM cannot be a group member. In any other mode the first missing name fails
// the call with a not found error.
func (s *ProtectionService) ResolveVMUUIDs(ctx context.Context, names []string, mode domain.Mode) ([]string, error) {
	vms, err := s.client.ListVMs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vms: %w", err)
	}

	byName := make(map[string]string, len(vms))
	for _, vm := range vms {
		byName[vm.Name] = vm.UUID
	}

	uuids := make([]string, 0, len(names))

	for _, name := range names {
		uuid, ok := byName[name]
		if !ok {
			if mode.IsRemoval() {
				logging.FromContext(ctx).DebugContext(ctx, "skipping vm missing from inventory", slog.String("vm", name))
				continue
			}

			return nil, domain.NewVMNotFoundError(name)
		}

		uuids = append(uuids, uuid)
	}

	return uuids, nil
}

// UpdateProtectionGroup brings the listed VMs into the requested state.
//
// Only VMs whose membership actually changes are sent to Networker, in a
// single request. When nothing changes no request is made and the returned
// change reports Changed() == false. Any failure aborts the remaining steps.
func (s *ProtectionService) UpdateProtectionGroup(ctx context.Context, req UpdateRequest) (*domain.MembershipChange, error) {
	if req.ProtectionGroup == "" {
		return nil, domain.NewValidationError("protection_group", "is required")
	}

	if req.Mode != domain.ModeAdd && req.Mode != domain.ModeDelete {
		return nil, domain.NewValidationError("mode", fmt.Sprintf("unsupported mode %q", req.Mode))
	}

	logger := s.logger.With(
		slog.String("protection_group", req.ProtectionGroup),
		slog.String("mode", string(req.Mode)),
	)

	uuids, err := s.ResolveVMUUIDs(ctx, req.VMNames, req.Mode)
	if err != nil {
		return nil, fmt.Errorf("resolving vms: %w", err)
	}

	members, err := s.client.ProtectionGroupVMs(ctx, req.ProtectionGroup)
	if err != nil {
		return nil, fmt.Errorf("fetching protection group: %w", err)
	}

	changes := changeSet(uuids, members, req.Mode)
	if len(changes) == 0 {
		logger.InfoContext(ctx, "protection group already up to date")
		return &domain.MembershipChange{}, nil
	}

	if err := s.client.UpdateWorkItems(ctx, req.ProtectionGroup, req.Mode, req.VCenter, changes); err != nil {
		return nil, fmt.Errorf("updating protection group: %w", err)
	}

	logger.InfoContext(ctx, "protection group updated", slog.Int("vms", len(changes)))

	return &domain.MembershipChange{UUIDs: changes}, nil
}

// changeSet returns the UUIDs whose membership differs from the desired state:
// non-members when adding, members when deleting.
func changeSet(uuids, members []string, mode domain.Mode) []string {
	current := make(map[string]struct{}, len(members))
	for _, m := range members {
		current[m] = struct{}{}
	}

	var changes []string

	for _, uuid := range uuids {
		_, isMember := current[uuid]
		if isMember == mode.IsRemoval() {
			changes = append(changes, uuid)
		}
	}

	return changes
}
