package handlers

import (
	"strings"

	applog "purposefood/internal/log"
	"purposefood/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates the management surface. API callers get a JSON 401/403;
// page requests are redirected to the login form.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiCall := strings.HasPrefix(c.Path(), "/api/")
		sid := c.Cookies("sid")
		if sid == "" {
			if apiCall {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
			}
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			if apiCall {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
			}
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
