package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/studiosadmin/admin-console/internal/api/dto"
	"github.com/studiosadmin/admin-console/internal/service"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

// MetricsHandler serves storage, usage and dashboard figures.
type MetricsHandler struct {
	service *service.MetricsService
	logger  *zap.Logger
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metricsService *service.MetricsService, logger *zap.Logger) *MetricsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsHandler{service: metricsService, logger: logger}
}

// Storage GET /api/storage.
func (h *MetricsHandler) Storage(c *fiber.Ctx) error {
	usage, err := h.service.Storage(c.UserContext())
	if err != nil {
		h.logger.Error("read storage size", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.FailureResponse{Message: "Internal Server Error"})
	}
	return c.JSON(dto.StorageResponse{Success: true, Data: dto.NewStorageData(*usage)})
}

// RecordUsage POST /api/usage.
func (h *MetricsHandler) RecordUsage(c *fiber.Ctx) error {
	var req dto.RecordUsageRequest
	if err := c.BodyParser(&req); err != nil {
		return h.usageFailure(c, apperrors.NewValidationError("invalid payload", nil))
	}
	if req.UserID == "" {
		return h.usageFailure(c, apperrors.NewValidationError("No userId provided", nil))
	}
	if req.Seconds == nil {
		return h.usageFailure(c, apperrors.NewValidationError("seconds must be a non-negative number", nil))
	}
	usage, err := h.service.RecordUsage(c.UserContext(), req.UserID, *req.Seconds)
	if err != nil {
		return h.usageFailure(c, err)
	}
	return c.JSON(dto.UsageResponse{Success: true, Usage: dto.NewUsageRecord(usage)})
}

// Usage GET /api/usage?userId=.
func (h *MetricsHandler) Usage(c *fiber.Ctx) error {
	usage, err := h.service.Usage(c.UserContext(), c.Query("userId"))
	if err != nil {
		return h.usageFailure(c, err)
	}
	return c.JSON(dto.UsageResponse{Success: true, Usage: dto.NewUsageRecord(usage)})
}

// DashboardSummary GET /api/dashboard/summary.
func (h *MetricsHandler) DashboardSummary(c *fiber.Ctx) error {
	summary, err := h.service.DashboardSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDashboardSummaryResponse(summary))
}

// usageFailure renders errors as {"success":false,"error":...}.
func (h *MetricsHandler) usageFailure(c *fiber.Ctx, err error) error {
	domainErr := apperrors.ToDomainError(err)
	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		h.logger.Error("usage request failed", zap.Error(err))
	}
	return c.Status(domainErr.HTTPStatus).JSON(dto.FailureResponse{Error: domainErr.Message})
}
