package dto

import (
	"time"

	"github.com/studiosadmin/admin-console/internal/domain"
)

// CreateBugReportRequest payload.
type CreateBugReportRequest struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
	Status      string `json:"status"`
}

// UpdateBugReportRequest is a merge-style edit.
type UpdateBugReportRequest struct {
	UserID            *string `json:"userId"`
	Username          *string `json:"username"`
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	Rating            *int    `json:"rating"`
	Status            *string `json:"status"`
	ResolutionMessage *string `json:"resolutionMessage"`
}

// ResolveBugReportRequest payload.
type ResolveBugReportRequest struct {
	ResolutionMessage *string `json:"resolutionMessage"`
}

// BugReportResponse mirrors the stored report.
type BugReportResponse struct {
	ID                string                 `json:"_id"`
	// Omitted for legacy reports that were never numbered.
	TicketNumber      int64                  `json:"ticketNumber,omitempty"`
	UserID            string                 `json:"userId"`
	Username          string                 `json:"username"`
	Title             string                 `json:"title"`
	Description       string                 `json:"description"`
	Rating            int                    `json:"rating"`
	Status            domain.BugReportStatus `json:"status"`
	ResolutionMessage *string                `json:"resolutionMessage,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
}

// NewBugReportResponse maps a report.
func NewBugReportResponse(r *domain.BugReport) BugReportResponse {
	return BugReportResponse{
		ID:                r.ID,
		TicketNumber:      r.TicketNumber,
		UserID:            r.UserID,
		Username:          r.Username,
		Title:             r.Title,
		Description:       r.Description,
		Rating:            r.Rating,
		Status:            r.Status,
		ResolutionMessage: r.ResolutionMessage,
		CreatedAt:         r.CreatedAt,
	}
}

// NewBugReportList maps reports, never returning nil.
func NewBugReportList(reports []domain.BugReport) []BugReportResponse {
	out := make([]BugReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, NewBugReportResponse(&reports[i]))
	}
	return out
}
