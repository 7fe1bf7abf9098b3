package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "purposefood/internal/log"
	"purposefood/internal/repos"
	"purposefood/internal/services"
	"purposefood/internal/validate"
)

type InvoiceHandler struct {
	Svc  *services.InvoiceService
	Repo *repos.InvoiceRepo
}

// GET /api/v1/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.Repo.List(100)
	if err != nil {
		applog.Error(c, "invoices.list.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load invoices"})
	}
	return c.JSON(invoices)
}

// GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	inv, err := h.Repo.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "invoice not found"})
	}
	return c.JSON(inv)
}

// POST /api/v1/invoices issues an invoice from an order.
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var body struct {
		OrderID string `json:"order_id"`
		DueDays int    `json:"due_days"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if _, ok := validate.ID(body.OrderID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "order_id is required"})
	}

	inv, err := h.Svc.IssueForOrder(body.OrderID, body.DueDays)
	if err != nil {
		applog.Error(c, "invoices.create.fail", err, map[string]any{"order_id": body.OrderID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not issue invoice"})
	}
	applog.Audit(c, "invoices.create", map[string]any{"invoice_id": inv.ID, "number": inv.Number})
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// POST /api/v1/invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Svc.MarkPaid(id); err != nil {
		applog.Error(c, "invoices.pay.fail", err, map[string]any{"invoice_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not mark invoice paid"})
	}
	applog.Audit(c, "invoices.pay", map[string]any{"invoice_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// POST /api/v1/invoices/:id/void
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Svc.Void(id); err != nil {
		applog.Error(c, "invoices.void.fail", err, map[string]any{"invoice_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not void invoice"})
	}
	applog.Audit(c, "invoices.void", map[string]any{"invoice_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
