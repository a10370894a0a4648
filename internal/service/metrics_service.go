package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/events"
	"github.com/studiosadmin/admin-console/internal/repository"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

const (
	usageResource   = "Usage"
	bytesPerKB      = 1024.0
	bytesPerMB      = 1024.0 * 1024.0
	msgNoUserID     = "No userId provided"
	msgInvalidUsage = "seconds must be a non-negative number"
)

// MetricsService reports storage footprint and product usage.
type MetricsService struct {
	stats        repository.StatsRepository
	usage        repository.UsageRepository
	members      repository.MemberRepository
	bugReports   repository.BugReportRepository
	totalMB      float64
	alertPercent float64
	events       publisher
	logger       *zap.Logger
}

// MetricsDependencies encapsulates metrics service requirements.
type MetricsDependencies struct {
	StatsRepo     repository.StatsRepository
	UsageRepo     repository.UsageRepository
	MemberRepo    repository.MemberRepository
	BugReportRepo repository.BugReportRepository
	TotalMB       float64
	AlertPercent  float64
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewMetricsService constructs the service.
func NewMetricsService(deps MetricsDependencies) *MetricsService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsService{
		stats:        deps.StatsRepo,
		usage:        deps.UsageRepo,
		members:      deps.MemberRepo,
		bugReports:   deps.BugReportRepo,
		totalMB:      deps.TotalMB,
		alertPercent: deps.AlertPercent,
		events:       newPublisher(deps.Dispatcher, logger),
		logger:       logger,
	}
}

// ComputeStorage converts a byte count into the reported figures.
// UsedPercentage is always within [0, 100] and is 0 for a non-positive quota.
func ComputeStorage(usedBytes int64, totalMB float64) domain.StorageUsage {
	if usedBytes < 0 {
		usedBytes = 0
	}
	usedKB := float64(usedBytes) / bytesPerKB
	usedMB := float64(usedBytes) / bytesPerMB

	percentage := 0.0
	if totalMB > 0 && !math.IsInf(totalMB, 0) {
		percentage = math.Min(math.Max(usedMB/totalMB*100, 0), 100)
	}

	return domain.StorageUsage{
		UsedBytes:      usedBytes,
		UsedKB:         round(usedKB, 2),
		UsedMB:         round(usedMB, 2),
		TotalMB:        totalMB,
		UsedPercentage: round(percentage, 2),
	}
}

// Storage reads the store data size against the configured quota.
func (s *MetricsService) Storage(ctx context.Context) (*domain.StorageUsage, error) {
	size, err := s.stats.DataSize(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	usage := ComputeStorage(size, s.totalMB)
	return &usage, nil
}

// CheckStorageThreshold publishes an alert when usage reaches the alert percentage.
func (s *MetricsService) CheckStorageThreshold(ctx context.Context) (bool, error) {
	usage, err := s.Storage(ctx)
	if err != nil {
		return false, err
	}
	if s.alertPercent <= 0 || usage.UsedPercentage < s.alertPercent {
		s.logger.Debug("storage within threshold", zap.Float64("used_percentage", usage.UsedPercentage))
		return false, nil
	}

	s.logger.Warn("storage threshold exceeded",
		zap.Float64("used_mb", usage.UsedMB),
		zap.Float64("total_mb", usage.TotalMB),
		zap.Float64("used_percentage", usage.UsedPercentage))
	s.events.publish(ctx, events.EventStorageThresholdExceeded, "", events.StorageThresholdPayload{
		UsedMB:         usage.UsedMB,
		TotalMB:        usage.TotalMB,
		UsedPercentage: usage.UsedPercentage,
		AlertPercent:   s.alertPercent,
	})
	return true, nil
}

// RecordUsage adds seconds to the user's running total.
func (s *MetricsService) RecordUsage(ctx context.Context, userID string, seconds float64) (*domain.Usage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.NewValidationError(msgNoUserID, nil)
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, apperrors.NewValidationError(msgInvalidUsage, map[string]any{"seconds": seconds})
	}
	usage, err := s.usage.Increment(ctx, userID, seconds)
	if err != nil {
		return nil, storeError(err, usageResource)
	}
	return usage, nil
}

// Usage returns the user's total, or nil when nothing was recorded yet.
func (s *MetricsService) Usage(ctx context.Context, userID string) (*domain.Usage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.NewValidationError(msgNoUserID, nil)
	}
	usage, err := s.usage.GetByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err, usageResource)
	}
	return usage, nil
}

// MemberUsage is one row of the usage leaderboard.
type MemberUsage struct {
	MemberID string
	Username string
	Minutes  float64
}

// DashboardSummary aggregates the figures shown on the dashboard landing page.
type DashboardSummary struct {
	TotalMembers       int
	AccessDistribution map[domain.AccessField]int
	TotalUsageMinutes  float64
	MemberUsage        []MemberUsage
	Storage            domain.StorageUsage
	BugReports         map[domain.BugReportStatus]int64
}

// DashboardSummary collects member, usage, storage and bug report figures.
func (s *MetricsService) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	members, err := s.members.List(ctx, repository.MemberFilter{})
	if err != nil {
		return nil, storeError(err, memberResource)
	}
	usages, err := s.usage.List(ctx)
	if err != nil {
		return nil, storeError(err, usageResource)
	}
	storage, err := s.Storage(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.bugReports.CountByStatus(ctx)
	if err != nil {
		return nil, storeError(err, bugReportResource)
	}

	summary := &DashboardSummary{
		TotalMembers:       len(members),
		AccessDistribution: make(map[domain.AccessField]int, len(domain.AccessFields())),
		MemberUsage:        make([]MemberUsage, 0, len(members)),
		Storage:            *storage,
		BugReports:         make(map[domain.BugReportStatus]int64, len(domain.BugReportStatuses())),
	}
	for _, field := range domain.AccessFields() {
		summary.AccessDistribution[field] = 0
	}
	for _, status := range domain.BugReportStatuses() {
		summary.BugReports[status] = counts[status]
	}

	secondsByUser := make(map[string]float64, len(usages))
	totalSeconds := 0.0
	for _, u := range usages {
		secondsByUser[u.UserID] += u.Seconds
		totalSeconds += u.Seconds
	}
	summary.TotalUsageMinutes = round(totalSeconds/60, 1)

	for _, m := range members {
		for _, field := range domain.AccessFields() {
			if m.Access.Get(field) {
				summary.AccessDistribution[field]++
			}
		}
		summary.MemberUsage = append(summary.MemberUsage, MemberUsage{
			MemberID: m.ID,
			Username: m.Username,
			Minutes:  round(secondsByUser[m.ID]/60, 1),
		})
	}
	sort.SliceStable(summary.MemberUsage, func(i, j int) bool {
		a, b := summary.MemberUsage[i], summary.MemberUsage[j]
		if a.Minutes != b.Minutes {
			return a.Minutes > b.Minutes
		}
		return a.Username < b.Username
	})
	return summary, nil
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
