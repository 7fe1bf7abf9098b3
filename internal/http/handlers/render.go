package handlers

import "github.com/gofiber/fiber/v2"

// render wraps c.Render, attaching the logged-in user and the CSRF token so
// every template can show the session state and emit valid forms.
func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// Locals can be empty on routes the CSRF middleware skipped.
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}
