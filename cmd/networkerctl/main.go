// Package main is networkerctl, a command line client for Networker
// vCenter inventory and protection group membership.
//
//	networkerctl refresh --wait-for 10s
//	networkerctl vm --vcenter vc.example.com --protection-group gold --state absent demo01 demo02
//
// Credentials come from --hostname, --username and --password, falling
// back to NETWORKER_HOSTNAME, NETWORKER_USERNAME and NETWORKER_PASSWORD.
package main

import (
	"fmt"
	"os"

	"github.com/jsamuelsen/networker-service/internal/domain"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", domain.MessageOf(err))
		os.Exit(1)
	}
}
