package domain

import "time"

// SystemKeyGlobalCrash is the key of the maintenance banner flag.
const SystemKeyGlobalCrash = "global_crash"

// SystemState is a keyed boolean switch. At most one record exists per key.
type SystemState struct {
	Key       string
	Value     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
