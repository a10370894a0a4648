package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingChecker struct {
	calls atomic.Int32
	err   error
}

func (c *countingChecker) CheckStorageThreshold(context.Context) (bool, error) {
	c.calls.Add(1)
	return false, c.err
}

func TestNewStorageMonitorDisabled(t *testing.T) {
	m, err := NewStorageMonitor("  ", &countingChecker{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, m)

	// nil monitors are safe to drive
	m.Start(context.Background())
	m.Stop()
}

func TestNewStorageMonitorInvalidSchedule(t *testing.T) {
	_, err := NewStorageMonitor("every tuesday", &countingChecker{}, nil)
	assert.Error(t, err)
}

func TestStorageMonitorRun(t *testing.T) {
	checker := &countingChecker{}
	m, err := NewStorageMonitor("@every 1h", checker, nil)
	require.NoError(t, err)
	require.NotNil(t, m)

	m.run()
	checker.err = errors.New("stats unavailable")
	m.run()
	assert.Equal(t, int32(2), checker.calls.Load())

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)
	cancel()
	m.Stop()
}
