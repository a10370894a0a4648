package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/members", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/api/members", "GET", 200, 4*time.Millisecond)
	m.RecordRequest("/api/admin-login", "POST", 401, time.Millisecond)
	m.RecordError("/api/admin-login", "POST", "UNAUTHORIZED")

	snap := m.Snapshot()
	require.Len(t, snap.Requests, 2)
	assert.Equal(t, "/api/admin-login|POST|401", snap.Requests[0].Key)
	assert.Equal(t, int64(2), snap.Requests[1].Count)
	assert.InDelta(t, 3.0, snap.Requests[1].AvgLatencyMS, 1e-9)
	require.Len(t, snap.Errors, 1)
	assert.Equal(t, int64(1), snap.Errors[0].Count)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	snap := m.Snapshot()
	assert.Empty(t, snap.Requests)
	assert.Empty(t, snap.Errors)
}
