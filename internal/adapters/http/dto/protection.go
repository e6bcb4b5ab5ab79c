package dto

import "github.com/jsamuelsen/networker-service/internal/domain"

// RefreshRequest is the optional body of POST /api/v1/vcenters/refresh.
type RefreshRequest struct {
	// WaitFor is how many seconds to wait after Networker accepts the refresh.
	// The handler also bounds it by the server write timeout.
	WaitFor int `json:"waitFor" validate:"gte=0"`
}

// MembershipRequest is the body of PUT /api/v1/protection-groups/:group/vms.
type MembershipRequest struct {
	VCenter string   `json:"vcenter" validate:"required,notempty"`
	VMNames []string `json:"vmNames" validate:"required,min=1,dive,notempty"`

	// State is "present" or "absent". Empty means present.
	State string `json:"state" validate:"omitempty,oneof=present absent"`
}

// DesiredState returns the requested state, defaulting to present.
func (r *MembershipRequest) DesiredState() string {
	if r.State == "" {
		return domain.StatePresent
	}

	return r.State
}

// MembershipResponse reports the outcome of a membership update.
type MembershipResponse struct {
	Changed bool     `json:"changed"`
	UUIDs   []string `json:"uuids"`
}

// NewMembershipResponse converts a domain change into its response.
// UUIDs is always a JSON array, never null.
func NewMembershipResponse(change *domain.MembershipChange) *MembershipResponse {
	uuids := []string{}
	if change != nil && len(change.UUIDs) > 0 {
		uuids = change.UUIDs
	}

	return &MembershipResponse{
		Changed: change.Changed(),
		UUIDs:   uuids,
	}
}
