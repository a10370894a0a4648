package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/studiosadmin/admin-console/internal/api/dto"
	"github.com/studiosadmin/admin-console/internal/service"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

const msgSystemStateUpdated = "System state updated successfully"

// SystemHandler serves the maintenance flag.
type SystemHandler struct {
	service *service.SystemService
	logger  *zap.Logger
}

// NewSystemHandler constructs handler.
func NewSystemHandler(systemService *service.SystemService, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{service: systemService, logger: logger}
}

// Crash GET /api/admin/crash. Store failures answer 500 with crashed=false.
func (h *SystemHandler) Crash(c *fiber.Ctx) error {
	crashed, err := h.service.Crashed(c.UserContext())
	if err != nil {
		h.logger.Error("read crash flag", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.CrashStateResponse{Crashed: false})
	}
	return c.JSON(dto.CrashStateResponse{Crashed: crashed})
}

// SetCrash POST /api/admin/crash.
func (h *SystemHandler) SetCrash(c *fiber.Ctx) error {
	var req dto.CrashRequest
	if err := c.BodyParser(&req); err != nil || req.Crashed == nil {
		return apperrors.NewValidationError("crashed must be a boolean.", nil)
	}
	crashed, err := h.service.SetCrashed(c.UserContext(), *req.Crashed)
	if err != nil {
		return err
	}
	return c.JSON(dto.CrashUpdateResponse{Crashed: crashed, Message: msgSystemStateUpdated})
}
