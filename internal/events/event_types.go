package events

import (
	"time"

	"github.com/studiosadmin/admin-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberCreated            EventType = "member_created"
	EventMemberUpdated            EventType = "member_updated"
	EventMemberDeleted            EventType = "member_deleted"
	EventMemberAccessChanged      EventType = "member_access_changed"
	EventBugReportCreated         EventType = "bug_report_created"
	EventBugReportUpdated         EventType = "bug_report_updated"
	EventBugReportResolved        EventType = "bug_report_resolved"
	EventSystemCrashToggled       EventType = "system_crash_toggled"
	EventStorageThresholdExceeded EventType = "storage_threshold_exceeded"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Username string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MemberPayload describes member lifecycle events.
type MemberPayload struct {
	Username string `json:"username"`
}

// MemberAccessChangedPayload payload.
type MemberAccessChangedPayload struct {
	Username string             `json:"username"`
	Field    domain.AccessField `json:"field"`
	Value    bool               `json:"value"`
}

// BugReportCreatedPayload payload.
type BugReportCreatedPayload struct {
	TicketNumber int64  `json:"ticket_number"`
	UserID       string `json:"user_id"`
	Title        string `json:"title"`
	Rating       int    `json:"rating"`
}

// BugReportStatusPayload is shared by update and resolve events.
type BugReportStatusPayload struct {
	TicketNumber int64                  `json:"ticket_number"`
	OldStatus    domain.BugReportStatus `json:"old_status"`
	NewStatus    domain.BugReportStatus `json:"new_status"`
	Message      string                 `json:"message,omitempty"`
}

// SystemCrashToggledPayload payload.
type SystemCrashToggledPayload struct {
	Crashed bool `json:"crashed"`
}

// StorageThresholdPayload payload.
type StorageThresholdPayload struct {
	UsedMB         float64 `json:"used_mb"`
	TotalMB        float64 `json:"total_mb"`
	UsedPercentage float64 `json:"used_percentage"`
	AlertPercent   float64 `json:"alert_percent"`
}
