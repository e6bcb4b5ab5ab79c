package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/networker-service/internal/domain"
)

// stubChecker implements HealthChecker for testing.
type stubChecker struct {
	name  string
	err   error
	calls *[]string
}

func (s *stubChecker) Name() string {
	return s.name
}

func (s *stubChecker) Check(context.Context) error {
	if s.calls != nil {
		*s.calls = append(*s.calls, s.name)
	}

	return s.err
}

// blockingChecker waits until its context ends.
type blockingChecker struct{}

func (blockingChecker) Name() string { return "networker" }

func (blockingChecker) Check(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestNewHealthRegistry(t *testing.T) {
	t.Run("uses the given timeout", func(t *testing.T) {
		registry := NewHealthRegistry(time.Second)

		require.NotNil(t, registry)
		assert.Empty(t, registry.checkers)
		assert.Equal(t, time.Second, registry.checkTimeout)
	})

	t.Run("defaults non-positive timeouts", func(t *testing.T) {
		assert.Equal(t, DefaultCheckTimeout, NewHealthRegistry(0).checkTimeout)
		assert.Equal(t, DefaultCheckTimeout, NewHealthRegistry(-time.Second).checkTimeout)
	})
}

func TestRegister(t *testing.T) {
	registry := NewHealthRegistry(0)

	require.NoError(t, registry.Register(&stubChecker{name: "networker"}))

	err := registry.Register(&stubChecker{name: "networker"})
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "networker")
	assert.Len(t, registry.checkers, 1)
}

func TestCheckAll_NoCheckers(t *testing.T) {
	result := NewHealthRegistry(0).CheckAll(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.NotNil(t, result.Checks)
	assert.Empty(t, result.Checks)
	assert.False(t, result.Timestamp.IsZero())
}

func TestCheckAll_RunsInRegistrationOrder(t *testing.T) {
	var calls []string

	registry := NewHealthRegistry(0)
	require.NoError(t, registry.Register(&stubChecker{name: "networker", calls: &calls}))
	require.NoError(t, registry.Register(&stubChecker{name: "secondary", calls: &calls}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Equal(t, []string{"networker", "secondary"}, calls)
	assert.Empty(t, result.Checks["networker"].Message)
	assert.Zero(t, result.Checks["networker"].StatusCode)
}

func TestCheckAll_ReportsNetworkerFailure(t *testing.T) {
	registry := NewHealthRegistry(0)
	require.NoError(t, registry.Register(&stubChecker{
		name: "networker",
		err:  domain.NewAPIError(domain.KindAccessDenied, 401, "Invalid credentials"),
	}))
	require.NoError(t, registry.Register(&stubChecker{name: "secondary"}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, result.Status)

	check := result.Checks["networker"]
	assert.Equal(t, HealthStatusUnhealthy, check.Status)
	assert.Equal(t, "Invalid credentials", check.Message)
	assert.Equal(t, 401, check.StatusCode)

	assert.Equal(t, HealthStatusHealthy, result.Checks["secondary"].Status)
}

func TestCheckAll_UnclassifiedFailure(t *testing.T) {
	registry := NewHealthRegistry(0)
	require.NoError(t, registry.Register(&stubChecker{name: "networker", err: errors.New("connection refused")}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Equal(t, "connection refused", result.Checks["networker"].Message)
	assert.Zero(t, result.Checks["networker"].StatusCode)
}

func TestCheckAll_CheckTimeout(t *testing.T) {
	registry := NewHealthRegistry(20 * time.Millisecond)
	require.NoError(t, registry.Register(blockingChecker{}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["networker"].Message, "deadline exceeded")
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry(time.Minute)
	require.NoError(t, registry.Register(blockingChecker{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["networker"].Message, "context canceled")
}
