package handlers_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	applog "purposefood/internal/log"
)

// Internal errors must surface as a friendly page (or JSON on the API) with
// no internals leaked.
func TestErrorHandlerFriendlyMessage(t *testing.T) {
	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
			}
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Use(requestid.New())

	boom := func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	}
	app.Get("/err", boom)
	app.Get("/api/v1/err", boom)

	resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if strings.Contains(s, "db timeout") || strings.Contains(s, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}

	respAPI, err := app.Test(httptest.NewRequest("GET", "/api/v1/err", nil))
	if err != nil {
		t.Fatal(err)
	}
	if ct := respAPI.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("API errors must be JSON, got %s", ct)
	}
	apiBody, _ := io.ReadAll(respAPI.Body)
	if strings.Contains(string(apiBody), "secret") {
		t.Fatalf("internal details leaked on API; body=%s", apiBody)
	}
}
