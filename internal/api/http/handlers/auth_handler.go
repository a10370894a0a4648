package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studiosadmin/admin-console/internal/api/dto"
	"github.com/studiosadmin/admin-console/internal/auth"
	"github.com/studiosadmin/admin-console/internal/service"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

// AuthHandler serves the admin session endpoints.
type AuthHandler struct {
	service       *service.AuthService
	secureCookies bool
}

// NewAuthHandler constructs handler. secureCookies sets the Secure attribute.
func NewAuthHandler(authService *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{service: authService, secureCookies: secureCookies}
}

// Login POST /api/admin-login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(auth.SessionCookie(result.Token, h.service.TokenTTL(), h.secureCookies))
	return c.JSON(dto.LoginResponse{Success: true})
}

// Me GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, err := h.service.Authenticate(c.UserContext(), c.Cookies(auth.CookieName))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.MeResponse{Authenticated: false})
	}
	return c.JSON(dto.MeResponse{Authenticated: true, Username: session.Username})
}

// Logout POST /api/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(auth.ExpiredCookie(h.secureCookies))
	return c.JSON(fiber.Map{"success": true})
}
