package main

import (
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/jsamuelsen/networker-service/internal/app"
	"github.com/jsamuelsen/networker-service/internal/domain"
)

// vmResult is printed after a membership change.
type vmResult struct {
	Changed bool     `json:"changed"`
	UUIDs   []string `json:"uuids"`
}

func newVMCmd(opts *globalOptions) *cobra.Command {
	var (
		vcenter string
		group   string
		state   = statePresent
	)

	cmd := &cobra.Command{
		Use:   "vm NAME...",
		Short: "Add VMs to or remove VMs from a protection group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, names []string) error {
			mode, err := domain.ModeFromState(stateOptIDs[state][0])
			if err != nil {
				return err
			}

			svc, err := opts.newService()
			if err != nil {
				return err
			}

			change, err := svc.UpdateProtectionGroup(cmd.Context(), app.UpdateRequest{
				VMNames:         names,
				Mode:            mode,
				ProtectionGroup: group,
				VCenter:         vcenter,
			})
			if err != nil {
				return err
			}

			return opts.printJSON(vmResult{Changed: change.Changed(), UUIDs: change.UUIDs})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&vcenter, "vcenter", "", "FQDN of the vCenter integrated with Networker")
	flags.StringVar(&group, "protection-group", "", "Name of an existing protection group")
	flags.Var(enumflag.New(&state, "state", stateOptIDs, enumflag.EnumCaseInsensitive), "state", "Desired state of the VMs: present or absent")

	_ = cmd.MarkFlagRequired("vcenter")
	_ = cmd.MarkFlagRequired("protection-group")

	return cmd
}
