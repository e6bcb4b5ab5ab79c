// Package main is the networker_vcenter_refresh Ansible binary module.
// It asks Networker to refresh the inventory of all configured vCenters.
//
// Options: hostname, username, password, validate_certs, wait_for.
package main

import (
	"context"
	"os"

	"github.com/jsamuelsen/networker-service/internal/adapters/ansible"
	"github.com/jsamuelsen/networker-service/internal/platform/logging"
)

func main() {
	var argsPath string
	if len(os.Args) > 1 {
		argsPath = os.Args[1]
	}

	m := &ansible.Module{
		Stdout: os.Stdout,
		Logger: logging.NewWithWriter(&logging.Config{
			Level:   os.Getenv("NETWORKER_LOG_LEVEL"),
			Format:  "json",
			Service: "networker_vcenter_refresh",
		}, os.Stderr),
	}

	os.Exit(m.RunRefresh(context.Background(), argsPath))
}
