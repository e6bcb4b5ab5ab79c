// Package main is the networker_vcenter_vm Ansible binary module.
// It adds VMs to or removes VMs from a Networker protection group.
//
// Options: hostname, username, password, validate_certs, vcenter, vm_names,
// protection_group, state (present or absent).
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
			Service: "networker_vcenter_vm",
		}, os.Stderr),
	}

	os.Exit(m.RunVM(context.Background(), argsPath))
}
