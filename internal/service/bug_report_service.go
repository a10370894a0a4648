package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/events"
	"github.com/studiosadmin/admin-console/internal/repository"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

const bugReportResource = "Bug report"

// BugReportService manages the bug report queue.
type BugReportService struct {
	reports  repository.BugReportRepository
	counters repository.CounterRepository
	events   publisher
	logger   *zap.Logger
}

// BugReportDependencies encapsulates bug report service requirements.
type BugReportDependencies struct {
	BugReportRepo repository.BugReportRepository
	CounterRepo   repository.CounterRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewBugReportService constructs the service.
func NewBugReportService(deps BugReportDependencies) *BugReportService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BugReportService{
		reports:  deps.BugReportRepo,
		counters: deps.CounterRepo,
		events:   newPublisher(deps.Dispatcher, logger),
		logger:   logger,
	}
}

// CreateBugReportInput is a new report as submitted by a product app.
type CreateBugReportInput struct {
	UserID      string
	Username    string
	Title       string
	Description string
	Rating      int
	Status      string
}

// UpdateBugReportInput merges supplied fields into a report.
type UpdateBugReportInput struct {
	UserID            *string
	Username          *string
	Title             *string
	Description       *string
	Rating            *int
	Status            *string
	ResolutionMessage *string
}

// List returns reports in creation order, optionally narrowed by status.
func (s *BugReportService) List(ctx context.Context, statuses []string) ([]domain.BugReport, error) {
	filter := repository.BugReportFilter{}
	for _, raw := range statuses {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		status, err := parseStatus(raw)
		if err != nil {
			return nil, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	reports, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, bugReportResource)
	}
	return reports, nil
}

// Get loads one report.
func (s *BugReportService) Get(ctx context.Context, id string) (*domain.BugReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, bugReportResource)
	}
	return report, nil
}

// Create validates and stores a report, numbering it from the bugReport counter.
func (s *BugReportService) Create(ctx context.Context, input CreateBugReportInput) (*domain.BugReport, error) {
	report := &domain.BugReport{
		UserID:      strings.TrimSpace(input.UserID),
		Username:    strings.TrimSpace(input.Username),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Rating:      input.Rating,
		Status:      domain.BugReportStatusOpen,
	}

	missing := make([]string, 0, 4)
	for name, value := range map[string]string{
		"userId":      report.UserID,
		"username":    report.Username,
		"title":       report.Title,
		"description": report.Description,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, apperrors.NewValidationError("Missing required fields.", map[string]any{"fields": missing})
	}
	if err := validateRating(report.Rating); err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, err := parseStatus(raw)
		if err != nil {
			return nil, err
		}
		report.Status = status
	}

	ticket, err := s.counters.Next(ctx, domain.CounterBugReport)
	if err != nil {
		return nil, storeError(err, bugReportResource)
	}
	report.TicketNumber = ticket

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, storeError(err, bugReportResource)
	}

	s.events.publish(ctx, events.EventBugReportCreated, report.ID, events.BugReportCreatedPayload{
		TicketNumber: report.TicketNumber,
		UserID:       report.UserID,
		Title:        report.Title,
		Rating:       report.Rating,
	})
	return report, nil
}

// Update merges the supplied fields. Status changes are not restricted to a
// transition table.
func (s *BugReportService) Update(ctx context.Context, id string, input UpdateBugReportInput) (*domain.BugReport, error) {
	changes := repository.BugReportChanges{ResolutionMessage: input.ResolutionMessage}

	for _, f := range []struct {
		name string
		in   *string
		out  **string
	}{
		{"userId", input.UserID, &changes.UserID},
		{"username", input.Username, &changes.Username},
		{"title", input.Title, &changes.Title},
		{"description", input.Description, &changes.Description},
	} {
		if f.in == nil {
			continue
		}
		trimmed := strings.TrimSpace(*f.in)
		if trimmed == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s cannot be empty.", f.name), nil)
		}
		*f.out = &trimmed
	}
	if input.Rating != nil {
		if err := validateRating(*input.Rating); err != nil {
			return nil, err
		}
		changes.Rating = input.Rating
	}
	if input.Status != nil {
		status, err := parseStatus(strings.TrimSpace(*input.Status))
		if err != nil {
			return nil, err
		}
		changes.Status = &status
	}

	before, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, bugReportResource)
	}
	updated, err := s.reports.Apply(ctx, id, changes)
	if err != nil {
		return nil, storeError(err, bugReportResource)
	}

	s.events.publish(ctx, events.EventBugReportUpdated, updated.ID, events.BugReportStatusPayload{
		TicketNumber: updated.TicketNumber,
		OldStatus:    before.Status,
		NewStatus:    updated.Status,
	})
	return updated, nil
}

// Resolve marks the report Resolved and stores message verbatim; nil means "".
// Other fields are left as they are, so resolving twice is harmless.
func (s *BugReportService) Resolve(ctx context.Context, id string, message *string) (*domain.BugReport, error) {
	resolution := ""
	if message != nil {
		resolution = *message
	}
	status := domain.BugReportStatusResolved

	before, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, bugReportResource)
	}
	updated, err := s.reports.Apply(ctx, id, repository.BugReportChanges{
		Status:            &status,
		ResolutionMessage: &resolution,
	})
	if err != nil {
		return nil, storeError(err, bugReportResource)
	}

	s.events.publish(ctx, events.EventBugReportResolved, updated.ID, events.BugReportStatusPayload{
		TicketNumber: updated.TicketNumber,
		OldStatus:    before.Status,
		NewStatus:    updated.Status,
		Message:      resolution,
	})
	return updated, nil
}

// CountByStatus reports how many reports sit in each status; absent statuses read as zero.
func (s *BugReportService) CountByStatus(ctx context.Context) (map[domain.BugReportStatus]int64, error) {
	counts, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, storeError(err, bugReportResource)
	}
	out := make(map[domain.BugReportStatus]int64, len(domain.BugReportStatuses()))
	for _, status := range domain.BugReportStatuses() {
		out[status] = counts[status]
	}
	return out, nil
}

func parseStatus(raw string) (domain.BugReportStatus, error) {
	status := domain.BugReportStatus(raw)
	if !status.Valid() {
		return "", apperrors.NewValidationError("Invalid status.", map[string]any{
			"status":  raw,
			"allowed": domain.BugReportStatuses(),
		})
	}
	return status, nil
}

func validateRating(rating int) error {
	if rating < domain.MinBugReportRating || rating > domain.MaxBugReportRating {
		return apperrors.NewValidationError(
			fmt.Sprintf("Rating must be between %d and %d.", domain.MinBugReportRating, domain.MaxBugReportRating),
			map[string]any{"rating": rating},
		)
	}
	return nil
}
