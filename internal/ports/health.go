package ports

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen/networker-service/internal/domain"
)

// DefaultCheckTimeout bounds a single health check when none is configured.
const DefaultCheckTimeout = 5 * time.Second

// ErrDuplicateChecker rejects a second checker under an existing name.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker reports whether a dependency is reachable.
// Adapters register themselves with the HealthRegistry at startup.
type HealthChecker interface {
	// Name keys the check in HealthResult.Checks.
	Name() string

	// Check returns nil when the dependency is healthy.
	Check(ctx context.Context) error
}

// HealthRegistry runs the registered checks for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker) error
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is "healthy" or "unhealthy".
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult is unhealthy when any check failed.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Status HealthStatus `json:"status"`

	// Message is the failure message, e.g. Networker's own error text.
	Message string `json:"message,omitempty"`

	// StatusCode is the Networker status behind a failed check, e.g. 401
	// for rejected credentials. Zero when the failure was not classified.
	StatusCode int `json:"statusCode,omitempty"`

	Duration time.Duration `json:"duration"`
}

// DefaultHealthRegistry is safe for concurrent use. Checks run one after
// another in registration order, each bounded by the check timeout.
type DefaultHealthRegistry struct {
	mu           sync.RWMutex
	checkers     []HealthChecker
	checkTimeout time.Duration
}

// NewHealthRegistry returns an empty registry. A non-positive checkTimeout uses DefaultCheckTimeout.
func NewHealthRegistry(checkTimeout time.Duration) *DefaultHealthRegistry {
	if checkTimeout <= 0 {
		checkTimeout = DefaultCheckTimeout
	}

	return &DefaultHealthRegistry{
		checkTimeout: checkTimeout,
	}
}

// Register adds checker, failing with ErrDuplicateChecker on a name clash.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, c := range r.checkers {
		if c.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.checkers = append(r.checkers, checker)

	return nil
}

// CheckAll runs all registered health checks in registration order.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: time.Now(),
	}

	for _, checker := range checkers {
		checkResult := r.check(ctx, checker)

		result.Checks[checker.Name()] = checkResult
		if checkResult.Status == HealthStatusUnhealthy {
			result.Status = HealthStatusUnhealthy
		}
	}

	return result
}

func (r *DefaultHealthRegistry) check(ctx context.Context, checker HealthChecker) *CheckResult {
	ctx, cancel := context.WithTimeout(ctx, r.checkTimeout)
	defer cancel()

	start := time.Now()
	err := checker.Check(ctx)

	checkResult := &CheckResult{
		Status:   HealthStatusHealthy,
		Duration: time.Since(start),
	}

	if err != nil {
		checkResult.Status = HealthStatusUnhealthy
		checkResult.Message = domain.MessageOf(err)
		checkResult.StatusCode = domain.StatusCodeOf(err)
	}

	return checkResult
}
