package domain

import "time"

// Usage accumulates the time a user spent in the product apps.
type Usage struct {
	ID        string
	UserID    string
	Seconds   float64
	UpdatedAt time.Time
}

// Counter is a named monotonically increasing sequence.
type Counter struct {
	Name          string
	SequenceValue int64
}

// CounterBugReport numbers bug reports.
const CounterBugReport = "bugReport"

// StorageUsage is the store footprint against the configured quota.
type StorageUsage struct {
	UsedBytes      int64
	UsedKB         float64
	UsedMB         float64
	TotalMB        float64
	UsedPercentage float64
}
