package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/studiosadmin/admin-console/internal/api/dto"
	"github.com/studiosadmin/admin-console/internal/service"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

// BugReportsHandler manages bug report endpoints.
type BugReportsHandler struct {
	service *service.BugReportService
}

// NewBugReportsHandler constructs handler.
func NewBugReportsHandler(bugReportService *service.BugReportService) *BugReportsHandler {
	return &BugReportsHandler{service: bugReportService}
}

// List GET /api/bug-reports.
func (h *BugReportsHandler) List(c *fiber.Ctx) error {
	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}
	reports, err := h.service.List(c.UserContext(), statuses)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBugReportList(reports))
}

// Get GET /api/bug-reports/:id.
func (h *BugReportsHandler) Get(c *fiber.Ctx) error {
	report, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBugReportResponse(report))
}

// Create POST /api/bug-reports.
func (h *BugReportsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBugReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	report, err := h.service.Create(c.UserContext(), service.CreateBugReportInput{
		UserID:      req.UserID,
		Username:    req.Username,
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBugReportResponse(report))
}

// Update PUT /api/bug-reports/:id.
func (h *BugReportsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateBugReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	report, err := h.service.Update(c.UserContext(), c.Params("id"), service.UpdateBugReportInput{
		UserID:            req.UserID,
		Username:          req.Username,
		Title:             req.Title,
		Description:       req.Description,
		Rating:            req.Rating,
		Status:            req.Status,
		ResolutionMessage: req.ResolutionMessage,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBugReportResponse(report))
}

// Resolve PUT /api/bug-reports/resolve/:id.
func (h *BugReportsHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveBugReportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	report, err := h.service.Resolve(c.UserContext(), c.Params("id"), req.ResolutionMessage)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBugReportResponse(report))
}
