package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"purposefood/internal/domain"
	applog "purposefood/internal/log"
	"purposefood/internal/repos"
	"purposefood/internal/validate"
)

type FinanceHandler struct {
	Finance *repos.FinanceRepo
}

// dateRange defaults to the current month when from/to are absent.
func dateRange(c *fiber.Ctx) (string, string) {
	now := time.Now()
	from := c.Query("from")
	to := c.Query("to")
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	if to == "" {
		to = now.Format("2006-01-02")
	}
	return from, to
}

// GET /api/v1/finance/entries
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	from, to := dateRange(c)
	kind := c.Query("kind")
	if kind != "" {
		var ok bool
		if kind, ok = validate.EntryKind(kind); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be income or expense"})
		}
	}
	entries, err := h.Finance.List(from, to, kind)
	if err != nil {
		applog.Error(c, "finance.list.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load entries"})
	}
	return c.JSON(entries)
}

// GET /api/v1/finance/summary
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	from, to := dateRange(c)
	summary, err := h.Finance.Summary(from, to)
	if err != nil {
		applog.Error(c, "finance.summary.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not compute summary"})
	}
	byCat, err := h.Finance.ByCategory(from, to)
	if err != nil {
		applog.Error(c, "finance.summary.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not compute summary"})
	}
	return c.JSON(fiber.Map{"from": from, "to": to, "totals": summary, "by_category": byCat})
}

type entryPayload struct {
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	EntryDate   string  `json:"entry_date"`
	OrderID     string  `json:"order_id"`
}

// POST /api/v1/finance/entries
func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	var body entryPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	kind, ok := validate.EntryKind(body.Kind)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "kind"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be income or expense"})
	}
	if body.Amount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be non-negative"})
	}
	if body.EntryDate == "" {
		body.EntryDate = time.Now().Format("2006-01-02")
	}

	e := domain.FinancialEntry{
		ID:          uuid.NewString(),
		Kind:        kind,
		Category:    body.Category,
		Description: body.Description,
		Amount:      body.Amount,
		EntryDate:   body.EntryDate,
		OrderID:     body.OrderID,
	}
	if err := h.Finance.Insert(e); err != nil {
		applog.Error(c, "finance.create.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not record entry"})
	}
	applog.Audit(c, "finance.create", map[string]any{"entry_id": e.ID, "kind": e.Kind, "amount": e.Amount})
	return c.Status(fiber.StatusCreated).JSON(e)
}

// DELETE /api/v1/finance/entries/:id
func (h *FinanceHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Finance.Delete(id); err != nil {
		applog.Error(c, "finance.delete.fail", err, map[string]any{"entry_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not delete entry"})
	}
	applog.Audit(c, "finance.delete", map[string]any{"entry_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
