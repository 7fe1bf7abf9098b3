package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"purposefood/internal/domain"
	applog "purposefood/internal/log"
	"purposefood/internal/services"
	"purposefood/internal/validate"
)

type AvailabilityHandler struct {
	Avail *services.AvailabilityService
}

// Check answers the storefront widget: one product, one quantity.
// GET /api/v1/availability?productId=...&qty=N
func (h *AvailabilityHandler) Check(c *fiber.Ctx) error {
	productID, ok := validate.ID(strings.TrimSpace(c.Query("productId")))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing or invalid productId",
		})
	}
	qty := validate.Qty(c.Query("qty"))

	summary := h.Avail.CheckAvailability([]domain.LineItem{{ProductID: productID, Quantity: qty}})
	return c.JSON(summary)
}

// CheckOrder classifies a whole requested order before intake.
// POST /api/v1/availability with {"items":[{"product_id":...,"quantity":N}]}
func (h *AvailabilityHandler) CheckOrder(c *fiber.Ctx) error {
	var body struct {
		Items []domain.LineItem `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	for _, it := range body.Items {
		if _, ok := validate.ID(it.ProductID); !ok || it.Quantity < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "each item needs a product_id and a positive quantity"})
		}
	}

	summary := h.Avail.CheckAvailability(body.Items)
	return c.JSON(summary)
}
