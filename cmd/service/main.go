// Package main runs the Networker protection gateway: an HTTP service that
// refreshes vCenter inventory and reconciles protection group membership.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/networker-service/internal/adapters/clients"
	"github.com/jsamuelsen/networker-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/networker-service/internal/adapters/http"
	"github.com/jsamuelsen/networker-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/networker-service/internal/app"
	"github.com/jsamuelsen/networker-service/internal/platform/config"
	"github.com/jsamuelsen/networker-service/internal/platform/logging"
	"github.com/jsamuelsen/networker-service/internal/platform/telemetry"
	"github.com/jsamuelsen/networker-service/internal/ports"
)

// Set with -ldflags "-X main.Version=... -X main.Commit=... -X main.BuildTime=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg)
	logging.SetDefault(logger)

	logger.Info("starting networker gateway",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("networker", cfg.Networker.Hostname),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown failed", slog.Any("error", err))
		}
	}()

	networker, err := newNetworkerClient(cfg, logger)
	if err != nil {
		return err
	}

	registry := ports.NewHealthRegistry(cfg.Client.Timeout)
	if err := registry.Register(networker); err != nil {
		return fmt.Errorf("registering networker health check: %w", err)
	}

	service := app.NewProtectionService(app.ProtectionServiceConfig{
		Client: networker,
		Logger: logger,
	})

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.NewDefaultRouterConfig(
		logger,
		&cfg.App,
		&cfg.Auth,
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo(Version, Commit, BuildTime)),
		handlers.NewProtectionHandler(service, cfg.Server.WriteTimeout/2),
	))

	return serve(ctx, logger, server, cfg.Server.ShutdownTimeout)
}

func newLogger(cfg *config.Config) *slog.Logger {
	file := cfg.Log.File

	return logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    file.Enabled,
			Path:       file.Path,
			MaxSizeMB:  file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAgeDays: file.MaxAgeDays,
			Compress:   file.Compress,
		},
	})
}

func newNetworkerClient(cfg *config.Config, logger *slog.Logger) (*acl.NetworkerClient, error) {
	nw := cfg.Networker

	rest, err := clients.New(&clients.Config{
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
		return nil, fmt.Errorf("creating networker client: %w", err)
	}

	return acl.NewNetworkerClient(acl.NetworkerClientConfig{
		Client:     rest,
		HealthPath: nw.HealthPath,
		Logger:     logger,
	}), nil
}

// serve runs the server until ctx is cancelled by a signal, then drains
// in-flight requests for at most the shutdown timeout.
func serve(ctx context.Context, logger *slog.Logger, server *http.Server, timeout time.Duration) error {
	select {
	case err := <-server.Start():
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
