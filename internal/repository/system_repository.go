package repository

import (
	"context"

	"github.com/studiosadmin/admin-console/internal/domain"
)

// SystemStateRepository stores keyed boolean switches.
type SystemStateRepository interface {
	Get(ctx context.Context, key string) (*domain.SystemState, error)
	// Upsert creates the key if missing, otherwise overwrites its value.
	Upsert(ctx context.Context, key string, value bool) (*domain.SystemState, error)
}

// UsageRepository accumulates per-user usage time.
type UsageRepository interface {
	// Increment adds seconds to the user's total, creating the record if needed.
	Increment(ctx context.Context, userID string, seconds float64) (*domain.Usage, error)
	GetByUser(ctx context.Context, userID string) (*domain.Usage, error)
	List(ctx context.Context) ([]domain.Usage, error)
}

// CounterRepository hands out sequence values.
type CounterRepository interface {
	// Next increments the named counter and returns the new value, starting at 1.
	Next(ctx context.Context, name string) (int64, error)
}

// StatsRepository reports the store footprint.
type StatsRepository interface {
	DataSize(ctx context.Context) (int64, error)
}

// Repositories bundles one backend's implementations.
type Repositories struct {
	Members      MemberRepository
	BugReports   BugReportRepository
	SystemStates SystemStateRepository
	Usage        UsageRepository
	Counters     CounterRepository
	Stats        StatsRepository
}
