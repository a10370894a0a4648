package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const storageCheckTimeout = 30 * time.Second

// StorageChecker is satisfied by service.MetricsService.
type StorageChecker interface {
	CheckStorageThreshold(ctx context.Context) (bool, error)
}

// StorageMonitor periodically compares storage usage with the alert threshold.
type StorageMonitor struct {
	cron    *cron.Cron
	checker StorageChecker
	logger  *zap.Logger
}

// NewStorageMonitor schedules the check. An empty schedule returns nil.
func NewStorageMonitor(schedule string, checker StorageChecker, logger *zap.Logger) (*StorageMonitor, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" || checker == nil {
		return nil, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("storage_monitor")

	m := &StorageMonitor{
		cron: cron.New(
			cron.WithLogger(cron.PrintfLogger(zap.NewStdLog(logger))),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		checker: checker,
		logger:  logger,
	}
	if _, err := m.cron.AddFunc(schedule, m.run); err != nil {
		return nil, fmt.Errorf("invalid storage monitor schedule %q: %w", schedule, err)
	}
	return m, nil
}

// Start launches the scheduler and stops it when ctx is cancelled.
func (m *StorageMonitor) Start(ctx context.Context) {
	if m == nil {
		return
	}
	m.cron.Start()
	m.logger.Info("storage monitor started")
	go func() {
		<-ctx.Done()
		m.Stop()
	}()
}

// Stop halts scheduling and waits for a running check to finish.
func (m *StorageMonitor) Stop() {
	if m == nil {
		return
	}
	<-m.cron.Stop().Done()
}

func (m *StorageMonitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), storageCheckTimeout)
	defer cancel()

	exceeded, err := m.checker.CheckStorageThreshold(ctx)
	if err != nil {
		m.logger.Error("storage check failed", zap.Error(err))
		return
	}
	m.logger.Debug("storage check complete", zap.Bool("threshold_exceeded", exceeded))
}
