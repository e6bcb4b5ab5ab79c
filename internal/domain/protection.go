package domain

import (
	"fmt"
	"strings"
)

// Mode is the direction of a protection group membership change.
type Mode string

const (
	// ModeAdd adds VMs to a protection group.
	ModeAdd Mode = "add"

	// ModeDelete removes VMs from a protection group.
	ModeDelete Mode = "delete"
)

// Desired VM states as exposed to callers.
const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

// ParseMode converts a caller-supplied mode or state to a Mode.
// "present" maps to add; "absent" and "remove" map to delete.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeAdd), StatePresent:
		return ModeAdd, nil
	case string(ModeDelete), "remove", StateAbsent:
		return ModeDelete, nil
	default:
		return "", NewValidationError("mode", fmt.Sprintf("unsupported mode %q", s))
	}
}

// ModeFromState maps a desired state to a Mode.
func ModeFromState(state string) (Mode, error) {
	switch state {
	case StatePresent:
		return ModeAdd, nil
	case StateAbsent:
		return ModeDelete, nil
	default:
		return "", NewValidationError("state", fmt.Sprintf("must be one of: %s %s", StatePresent, StateAbsent))
	}
}

// IsRemoval reports whether VMs missing from the inventory may be skipped.
// A VM that is gone from vCenter is already absent from any group.
func (m Mode) IsRemoval() bool {
	return m == ModeDelete
}

// WorkItemsKey returns the request body key for the mode, e.g. "addWorkItems".
func (m Mode) WorkItemsKey() string {
	return string(m) + "WorkItems"
}

// VM is a virtual machine known to the Networker inventory.
type VM struct {
	// Name is the vCenter display name. Names are case-sensitive.
	Name string

	// UUID is the opaque identifier Networker uses for the VM.
	UUID string
}

// MembershipChange is the outcome of a protection group reconciliation.
type MembershipChange struct {
	// UUIDs holds the identifiers sent to Networker.
	// Nil means the group already matched the desired state and no request was made.
	UUIDs []string `json:"uuids"`
}

// Changed reports whether the reconciliation modified the group.
func (c *MembershipChange) Changed() bool {
	return c != nil && c.UUIDs != nil
}
