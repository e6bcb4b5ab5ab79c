package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/jsamuelsen/networker-service/internal/adapters/clients"
	"github.com/jsamuelsen/networker-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/networker-service/internal/app"
	"github.com/jsamuelsen/networker-service/internal/domain"
	"github.com/jsamuelsen/networker-service/internal/platform/config"
	"github.com/jsamuelsen/networker-service/internal/platform/logging"
)

// stateOpt is the desired membership of the VMs named on the command line.
type stateOpt enumflag.Flag

const (
	statePresent stateOpt = iota
	stateAbsent
)

var stateOptIDs = map[stateOpt][]string{
	statePresent: {domain.StatePresent},
	stateAbsent:  {domain.StateAbsent},
}

// globalOptions are shared by every subcommand.
type globalOptions struct {
	hostname  string
	username  string
	password  string
	insecure  bool
	logLevel  string
	logFormat string

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "networkerctl",
		Short:         "Manage Networker vCenter inventory and protection groups",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.hostname, "hostname", "", "Networker REST API URL (env NETWORKER_HOSTNAME)")
	flags.StringVar(&opts.username, "username", "", "Networker username (env NETWORKER_USERNAME)")
	flags.StringVar(&opts.password, "password", "", "Networker password (env NETWORKER_PASSWORD)")
	flags.BoolVar(&opts.insecure, "insecure", false, "Skip TLS certificate validation")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "pretty", "Log format (json, text, pretty)")

	rootCmd.AddCommand(newRefreshCmd(opts), newVMCmd(opts))

	return rootCmd
}

// newService builds the protection service from flags layered over the
// service configuration and NETWORKER_* variables.
func (o *globalOptions) newService() (*app.ProtectionService, error) {
	cfg, err := config.Load(os.Getenv("APP_ENVIRONMENT"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	nw := cfg.Networker
	if o.hostname != "" {
		nw.Hostname = o.hostname
	}

	if o.username != "" {
		nw.Username = o.username
	}

	if o.password != "" {
		nw.Password = o.password
	}

	if o.insecure {
		nw.ValidateCerts = false
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   o.logLevel,
		Format:  o.logFormat,
		Service: "networkerctl",
	}, o.stderr)

	client, err := clients.New(&clients.Config{
		Hostname:           nw.Hostname,
		Username:           nw.Username,
		Password:           nw.Password,
		InsecureSkipVerify: !nw.ValidateCerts,
		APIBasePath:        nw.APIBasePath,
		APIVersion:         nw.APIVersion,
		Timeout:            cfg.Client.Timeout,
		Logger:             logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("networker client ready", slog.String("hostname", nw.Hostname))

	return app.NewProtectionService(app.ProtectionServiceConfig{
		Client: acl.NewNetworkerClient(acl.NetworkerClientConfig{
			Client:     client,
			HealthPath: nw.HealthPath,
			Logger:     logger,
		}),
		Logger: logger,
	}), nil
}

func (o *globalOptions) printJSON(v any) error {
	enc := json.NewEncoder(o.stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
