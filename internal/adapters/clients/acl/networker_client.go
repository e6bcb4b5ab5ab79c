package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jsamuelsen/networker-service/internal/adapters/clients"
	"github.com/jsamuelsen/networker-service/internal/domain"
	"github.com/jsamuelsen/networker-service/internal/platform/logging"
)

// Networker resource paths, relative to /{base path}/{version}/.
const (
	refreshVCentersPath = "global/vmware/op/refreshvcenters"
	vmInventoryPath     = "global/vmware/vms"
	protectionGroupPath = "global/protectiongroups/"
	updateWorkItemsOp   = "/op/updatevmwareworkitems"

	// DefaultHealthPath is probed by Check when no path is configured.
	DefaultHealthPath = "global/serverconfig"
)

// NetworkerClientConfig contains configuration for the Networker adapter.
type NetworkerClientConfig struct {
	// Client is the HTTP client to use for requests.
	Client *clients.Client

	// HealthPath is the resource fetched by Check. Empty uses DefaultHealthPath.
	HealthPath string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// NetworkerClient implements ports.NetworkerClient against the Networker REST API.
// It translates inventory and protection group documents to domain values.
type NetworkerClient struct {
	BaseAdapter

	healthPath string
	logger     *slog.Logger
}

// NewNetworkerClient creates a new Networker adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewNetworkerClient(cfg NetworkerClientConfig) *NetworkerClient {
	if cfg.Client == nil {
		panic("NetworkerClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	healthPath := cfg.HealthPath
	if healthPath == "" {
		healthPath = DefaultHealthPath
	}

	return &NetworkerClient{
		BaseAdapter: NewBaseAdapter(cfg.Client),
		healthPath:  healthPath,
		logger:      logger,
	}
}

// vmInventoryResponse is the VM listing returned by global/vmware/vms.
type vmInventoryResponse struct {
	Count int          `json:"count"`
	VMs   []externalVM `json:"vms"`
}

// externalVM is a single inventory entry, reduced to the requested fields.
type externalVM struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

// protectionGroupResponse is the subset of a protection group document the
// reconciliation needs.
type protectionGroupResponse struct {
	Name                    string                   `json:"name"`
	VMwareWorkItemSelection *vmwareWorkItemSelection `json:"vmwareWorkItemSelection"`
}

type vmwareWorkItemSelection struct {
	VCenterHostname string   `json:"vCenterHostname"`
	VMUUIDs         []string `json:"vmUuids"`
}

// workItemsRequest is the body of an updatevmwareworkitems call. Both keys
// are always sent, even when the vCenter hostname is empty.
type workItemsRequest struct {
	VCenterHostname string   `json:"vCenterHostname"`
	VMUUIDs         []string `json:"vmUuids"`
}

// RefreshVCenters asks Networker to re-read the inventory of all vCenters.
// Returns the decoded response body, or nil when Networker sent none.
// Implements ports.NetworkerClient.
func (c *NetworkerClient) RefreshVCenters(ctx context.Context) (any, error) {
	c.logger.DebugContext(ctx, "refreshing vcenters")

	outcome, err := c.Post(ctx, refreshVCentersPath, nil, "refresh vcenters")
	if err != nil {
		return nil, err
	}

	if outcome.Kind != clients.OutcomeSuccess {
		return nil, nil
	}

	var body any
	if err := outcome.Decode(&body); err != nil {
		return nil, err
	}

	return body, nil
}

// ListVMs returns the VM inventory with only name and UUID populated.
// Implements ports.NetworkerClient.
func (c *NetworkerClient) ListVMs(ctx context.Context) ([]domain.VM, error) {
	c.logger.DebugContext(ctx, "listing vm inventory")

	outcome, err := c.Get(ctx, vmInventoryPath, url.Values{"fl": {"name,uuid"}}, "list vms")
	if err != nil {
		return nil, err
	}

	inventory, err := DecodeResponse[vmInventoryResponse](outcome)
	if err != nil {
		return nil, err
	}

	vms, err := TranslateSlice(inventory.VMs, translateVM)
	if err != nil {
		return nil, err
	}

	result := make([]domain.VM, 0, len(vms))
	for _, vm := range vms {
		result = append(result, *vm)
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated vm inventory",
		slog.Int("vms", len(result)))

	return result, nil
}

// ProtectionGroupVMs returns the UUIDs of the VMs selected by a protection group.
// A group without a VMware work item selection has no members.
// Implements ports.NetworkerClient.
func (c *NetworkerClient) ProtectionGroupVMs(ctx context.Context, group string) ([]string, error) {
	if err := ValidateRequired(group, "protection_group"); err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "fetching protection group", slog.String("protection_group", group))

	outcome, err := c.Get(ctx, protectionGroupPath+group, nil, "get protection group")
	if err != nil {
		return nil, err
	}

	pg, err := DecodeResponse[protectionGroupResponse](outcome)
	if err != nil {
		return nil, err
	}

	if pg.VMwareWorkItemSelection == nil {
		return []string{}, nil
	}

	return pg.VMwareWorkItemSelection.VMUUIDs, nil
}

// UpdateWorkItems adds or removes VMs from a protection group in one request.
// Implements ports.NetworkerClient.
func (c *NetworkerClient) UpdateWorkItems(ctx context.Context, group string, mode domain.Mode, vcenter string, uuids []string) error {
	if err := ValidateRequired(group, "protection_group"); err != nil {
		return err
	}

	body := map[string]workItemsRequest{
		mode.WorkItemsKey(): {
			VCenterHostname: vcenter,
			VMUUIDs:         uuids,
		},
	}

	c.logger.InfoContext(ctx, "updating protection group",
		slog.String("protection_group", group),
		slog.String("mode", string(mode)),
		slog.Int("vms", len(uuids)))

	_, err := c.Post(ctx, protectionGroupPath+group+updateWorkItemsOp, body, "update protection group")

	return err
}

// translateVM converts an inventory entry to a domain VM.
// Entries without a UUID cannot be placed in a protection group.
func translateVM(ext *externalVM) (*domain.VM, error) {
	if ext.UUID == "" {
		return nil, fmt.Errorf("inventory entry %q: %w", ext.Name, domain.NewValidationError("uuid", "is required"))
	}

	return &domain.VM{Name: ext.Name, UUID: ext.UUID}, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *NetworkerClient) Name() string {
	return c.ServiceName()
}

// Check verifies that Networker accepts the configured credentials.
// Implements ports.HealthChecker.
func (c *NetworkerClient) Check(ctx context.Context) error {
	_, err := c.Get(ctx, c.healthPath, nil, "health check")
	return err
}
