package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/networker-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/networker-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/networker-service/internal/platform/config"
	"github.com/jsamuelsen/networker-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AuthConfig contains authentication header configuration.
	AuthConfig *config.AuthConfig

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// ProtectionHandler handles vCenter refresh and protection group routes.
	ProtectionHandler *handlers.ProtectionHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter installs the middleware chain and all routes on engine.
// Global middleware runs in this order:
//  1. Recovery, which also seeds the request logger
//  2. Request ID and correlation ID
//  3. OpenTelemetry tracing, then request metrics
//  4. Logging (probes are skipped)
//
// Probes live under /-/ without auth or deadline. Networker operations live
// under /api/v1/ with a request deadline and, when enabled, the operator guard.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.AppConfig.Name)...)
	engine.Use(middleware.Logging())

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers business API routes:
//   - POST /api/v1/vcenters/refresh
//   - PUT  /api/v1/protection-groups/:group/vms
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.ProtectionHandler != nil {
		cfg.ProtectionHandler.RegisterProtectionRoutes(rg, cfg.AuthConfig)
	}
}

// NewDefaultRouterConfig creates a RouterConfig using DefaultRequestTimeout.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	authCfg *config.AuthConfig,
	healthHandler *handlers.HealthHandler,
	protectionHandler *handlers.ProtectionHandler,
) RouterConfig {
	return RouterConfig{
		Logger:            logger,
		AuthConfig:        authCfg,
		AppConfig:         appCfg,
		HealthHandler:     healthHandler,
		ProtectionHandler: protectionHandler,
		Timeout:           DefaultRequestTimeout,
	}
}
