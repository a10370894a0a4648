package repository

import (
	"context"

	"github.com/studiosadmin/admin-console/internal/domain"
)

// BugReportFilter captures listing parameters.
type BugReportFilter struct {
	Statuses []domain.BugReportStatus
}

// BugReportChanges is a merge-style update; nil fields are preserved.
type BugReportChanges struct {
	UserID            *string
	Username          *string
	Title             *string
	Description       *string
	Rating            *int
	Status            *domain.BugReportStatus
	ResolutionMessage *string
}

// IsEmpty reports whether no field is set.
func (c BugReportChanges) IsEmpty() bool {
	return c.UserID == nil && c.Username == nil && c.Title == nil && c.Description == nil &&
		c.Rating == nil && c.Status == nil && c.ResolutionMessage == nil
}

// ApplyTo copies the set fields onto report.
func (c BugReportChanges) ApplyTo(report *domain.BugReport) {
	if c.UserID != nil {
		report.UserID = *c.UserID
	}
	if c.Username != nil {
		report.Username = *c.Username
	}
	if c.Title != nil {
		report.Title = *c.Title
	}
	if c.Description != nil {
		report.Description = *c.Description
	}
	if c.Rating != nil {
		report.Rating = *c.Rating
	}
	if c.Status != nil {
		report.Status = *c.Status
	}
	if c.ResolutionMessage != nil {
		msg := *c.ResolutionMessage
		report.ResolutionMessage = &msg
	}
}

// BugReportRepository encapsulates bug report persistence.
type BugReportRepository interface {
	Create(ctx context.Context, report *domain.BugReport) error
	GetByID(ctx context.Context, id string) (*domain.BugReport, error)
	List(ctx context.Context, filter BugReportFilter) ([]domain.BugReport, error)
	// Apply merges changes into the stored report and returns the result.
	Apply(ctx context.Context, id string, changes BugReportChanges) (*domain.BugReport, error)
	CountByStatus(ctx context.Context) (map[domain.BugReportStatus]int64, error)
}
