package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studiosadmin/admin-console/internal/domain"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

// RequireAdmin rejects requests without an admin session.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Not authenticated")
		}
		if session.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
