package dto

import (
	"time"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/service"
)

// StorageData is the storage figure block.
type StorageData struct {
	UsedStorageKB  float64 `json:"usedStorageKB"`
	UsedStorageMB  float64 `json:"usedStorageMB"`
	TotalStorageMB float64 `json:"totalStorageMB"`
	UsedPercentage float64 `json:"usedPercentage"`
}

// StorageResponse wraps StorageData.
type StorageResponse struct {
	Success bool        `json:"success"`
	Data    StorageData `json:"data"`
}

// NewStorageData maps storage usage.
func NewStorageData(s domain.StorageUsage) StorageData {
	return StorageData{
		UsedStorageKB:  s.UsedKB,
		UsedStorageMB:  s.UsedMB,
		TotalStorageMB: s.TotalMB,
		UsedPercentage: s.UsedPercentage,
	}
}

// RecordUsageRequest payload.
type RecordUsageRequest struct {
	UserID  string   `json:"userId"`
	Seconds *float64 `json:"seconds"`
}

// UsageRecord mirrors the stored usage.
type UsageRecord struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Seconds   float64   `json:"seconds"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UsageResponse carries a usage record, null when none exists.
type UsageResponse struct {
	Success bool         `json:"success"`
	Usage   *UsageRecord `json:"usage"`
}

// FailureResponse is the error shape of the usage and storage endpoints.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewUsageRecord maps usage; nil stays nil.
func NewUsageRecord(u *domain.Usage) *UsageRecord {
	if u == nil {
		return nil
	}
	return &UsageRecord{ID: u.ID, UserID: u.UserID, Seconds: u.Seconds, UpdatedAt: u.UpdatedAt}
}

// MemberUsageEntry is one leaderboard row.
type MemberUsageEntry struct {
	MemberID string  `json:"memberId"`
	Username string  `json:"username"`
	Minutes  float64 `json:"minutes"`
}

// DashboardSummaryResponse aggregates landing page figures.
type DashboardSummaryResponse struct {
	TotalMembers       int                              `json:"totalMembers"`
	AccessDistribution map[domain.AccessField]int       `json:"accessDistribution"`
	TotalUsageMinutes  float64                          `json:"totalUsageMinutes"`
	MemberUsage        []MemberUsageEntry               `json:"memberUsage"`
	Storage            StorageData                      `json:"storage"`
	BugReports         map[domain.BugReportStatus]int64 `json:"bugReports"`
}

// NewDashboardSummaryResponse maps a summary.
func NewDashboardSummaryResponse(s *service.DashboardSummary) DashboardSummaryResponse {
	entries := make([]MemberUsageEntry, 0, len(s.MemberUsage))
	for _, mu := range s.MemberUsage {
		entries = append(entries, MemberUsageEntry{MemberID: mu.MemberID, Username: mu.Username, Minutes: mu.Minutes})
	}
	return DashboardSummaryResponse{
		TotalMembers:       s.TotalMembers,
		AccessDistribution: s.AccessDistribution,
		TotalUsageMinutes:  s.TotalUsageMinutes,
		MemberUsage:        entries,
		Storage:            NewStorageData(s.Storage),
		BugReports:         s.BugReports,
	}
}
