// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultClientTimeout bounds a single Networker request.
	DefaultClientTimeout = 30 * time.Second

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultRequiredRole is the gateway role allowed to change protection groups.
	DefaultRequiredRole = "backup-operator"

	// NetworkerEnvPrefix is the prefix of the Networker credential variables,
	// e.g. NETWORKER_HOSTNAME.
	NetworkerEnvPrefix = "NETWORKER_"
)

// Config is the root configuration structure. Sections carry no required
// tag so a missing section is reported field by field.
type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"`
	Client    ClientConfig    `koanf:"client"`
	Networker NetworkerConfig `koanf:"networker"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig contains gateway-header authentication settings.
// The gateway in front of the service validates tokens and forwards the
// caller's identity in headers.
type AuthConfig struct {
	Enabled       bool   `koanf:"enabled"`
	RequiredRole  string `koanf:"required_role"  validate:"required_if=Enabled true"`
	RolesHeader   string `koanf:"roles_header"   validate:"required_if=Enabled true"`
	SubjectHeader string `koanf:"subject_header" validate:"required_if=Enabled true"`
}

// ClientConfig contains HTTP client settings for Networker requests.
type ClientConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"required,min=100ms"`
}

// NetworkerConfig identifies the Networker server and its credentials.
type NetworkerConfig struct {
	Hostname      string `koanf:"hostname"       validate:"required,url"`
	Username      string `koanf:"username"       validate:"required"`
	Password      string `koanf:"password"       validate:"required"`
	ValidateCerts bool   `koanf:"validate_certs"`
	APIBasePath   string `koanf:"api_base_path"`
	APIVersion    string `koanf:"api_version"`
	HealthPath    string `koanf:"health_path"    validate:"required"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "networker-service",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "networker-service",
		"telemetry.sampling_rate": 1.0,

		"auth.enabled":        false,
		"auth.required_role":  DefaultRequiredRole,
		"auth.roles_header":   "X-User-Roles",
		"auth.subject_header": "X-User-ID",

		"client.timeout": DefaultClientTimeout.String(),

		"networker.hostname":       "",
		"networker.username":       "",
		"networker.password":       "",
		"networker.validate_certs": true,
		"networker.api_base_path":  "nwrestapi",
		"networker.api_version":    "v3",
		"networker.health_path":    "global/serverconfig",
	}
}

// Load builds the configuration from these layers, later ones winning:
//
//	defaults
//	configs/base.yaml
//	configs/{profile}.yaml
//	NETWORKER_* credentials
//	APP_* overrides, e.g. APP_SERVER_PORT sets server.port
//
// Missing files are skipped.
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	layers := []struct {
		name string
		load func(*koanf.Koanf) error
	}{
		{"defaults", func(k *koanf.Koanf) error {
			return k.Load(confmap.Provider(defaults(), "."), nil)
		}},
		{"base config", func(k *koanf.Koanf) error {
			return LoadFileIfExists(k, "configs/base.yaml")
		}},
		{"profile config", func(k *koanf.Koanf) error {
			if profile == "" {
				return nil
			}

			return LoadFileIfExists(k, filepath.Join("configs", profile+".yaml"))
		}},
		{"networker env vars", func(k *koanf.Koanf) error {
			return k.Load(NetworkerEnvProvider("networker."), nil)
		}},
		{"app env vars", func(k *koanf.Koanf) error {
			return k.Load(env.Provider(appEnvPrefix, ".", appEnvKey), nil)
		}},
	}

	for _, layer := range layers {
		if err := layer.load(k); err != nil {
			return nil, fmt.Errorf("loading %s: %w", layer.name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

const appEnvPrefix = "APP_"

// appEnvKey maps APP_SERVER_PORT to server.port.
func appEnvKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, appEnvPrefix)), "_", ".")
}

// NetworkerEnvProvider maps NETWORKER_* variables onto keys below prefix,
// e.g. NETWORKER_VALIDATE_CERTS becomes "<prefix>validate_certs".
// Empty variables are ignored. When keys are given, only those keys are
// loaded and every other NETWORKER_* variable is ignored.
func NetworkerEnvProvider(prefix string, keys ...string) *env.Env {
	return env.ProviderWithValue(NetworkerEnvPrefix, ".", func(name, value string) (string, any) {
		key := strings.ToLower(strings.TrimPrefix(name, NetworkerEnvPrefix))
		if value == "" || (len(keys) > 0 && !slices.Contains(keys, key)) {
			return "", nil
		}

		return prefix + key, value
	})
}

// LoadFileIfExists loads the YAML file at path into k. A missing file is
// not an error.
func LoadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
