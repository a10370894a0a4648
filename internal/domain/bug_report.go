package domain

import "time"

// BugReportStatus enumerates the ticket lifecycle.
type BugReportStatus string

const (
	BugReportStatusOpen       BugReportStatus = "Open"
	BugReportStatusInProgress BugReportStatus = "In Progress"
	BugReportStatusResolved   BugReportStatus = "Resolved"
	BugReportStatusClosed     BugReportStatus = "Closed"
)

// BugReportStatuses lists the statuses in lifecycle order.
func BugReportStatuses() []BugReportStatus {
	return []BugReportStatus{
		BugReportStatusOpen,
		BugReportStatusInProgress,
		BugReportStatusResolved,
		BugReportStatusClosed,
	}
}

// Valid reports enum membership.
func (s BugReportStatus) Valid() bool {
	switch s {
	case BugReportStatusOpen, BugReportStatusInProgress, BugReportStatusResolved, BugReportStatusClosed:
		return true
	}
	return false
}

const (
	MinBugReportRating = 1
	MaxBugReportRating = 5
)

// BugReport is a user-submitted issue.
type BugReport struct {
	ID                string
	TicketNumber      int64
	UserID            string
	Username          string
	Title             string
	Description       string
	Rating            int
	Status            BugReportStatus
	ResolutionMessage *string
	CreatedAt         time.Time
}
