package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studiosadmin/admin-console/internal/api/dto"
	"github.com/studiosadmin/admin-console/internal/service"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

const msgAccessUpdated = "Access updated successfully."

// MembersHandler manages member endpoints.
type MembersHandler struct {
	service *service.MemberService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(memberService *service.MemberService) *MembersHandler {
	return &MembersHandler{service: memberService}
}

// List GET /api/members.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	members, err := h.service.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMemberList(members))
}

// Get GET /api/members/:id.
func (h *MembersHandler) Get(c *fiber.Ctx) error {
	member, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMemberResponse(member))
}

// Create POST /api/members.
func (h *MembersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	member, err := h.service.Create(c.UserContext(), service.CreateMemberInput{
		Username: req.Username,
		Password: req.Password,
		Access:   req.Access.Patch(),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMemberResponse(member))
}

// Update PUT /api/members/:id.
func (h *MembersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	member, err := h.service.Update(c.UserContext(), c.Params("id"), service.UpdateMemberInput{
		Username: req.Username,
		Password: req.Password,
		Access:   req.Access.Patch(),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMemberResponse(member))
}

// UpdateAccess PUT /api/members/:id/access.
func (h *MembersHandler) UpdateAccess(c *fiber.Ctx) error {
	var req dto.UpdateAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("value must be a boolean.", nil)
	}
	if req.Value == nil {
		return apperrors.NewValidationError("value must be a boolean.", nil)
	}
	member, err := h.service.SetAccess(c.UserContext(), c.Params("id"), req.Field, *req.Value)
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateAccessResponse{
		Success: true,
		User:    dto.NewMemberResponse(member),
		Message: msgAccessUpdated,
	})
}

// Delete DELETE /api/members/:id.
func (h *MembersHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Member deleted successfully."})
}
