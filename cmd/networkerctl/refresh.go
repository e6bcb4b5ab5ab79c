package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newRefreshCmd(opts *globalOptions) *cobra.Command {
	var waitFor time.Duration

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the inventory of all vCenters known to Networker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.newService()
			if err != nil {
				return err
			}

			body, err := svc.RefreshVCenters(cmd.Context(), waitFor)
			if err != nil {
				return err
			}

			if body == nil {
				body = map[string]any{}
			}

			return opts.printJSON(body)
		},
	}

	cmd.Flags().DurationVar(&waitFor, "wait-for", 0, "Time to wait after the refresh before returning")

	return cmd
}
