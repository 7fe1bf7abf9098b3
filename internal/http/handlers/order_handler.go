package handlers

import (
	"github.com/gofiber/fiber/v2"

	"purposefood/internal/domain"
	applog "purposefood/internal/log"
	"purposefood/internal/repos"
	"purposefood/internal/services"
	"purposefood/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
}

type orderPayload struct {
	CustomerID      string            `json:"customer_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	DeliveryAddress string            `json:"delivery_address"`
	Notes           string            `json:"notes"`
	Items           []domain.LineItem `json:"items"`
}

// POST /api/v1/orders runs the availability pre-check then creates a pending order.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var body orderPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	name, ok := validate.Name(body.CustomerName)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "customer_name"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "customer_name is required (max 60 chars)"})
	}
	if body.CustomerPhone != "" {
		if _, ok := validate.Phone(body.CustomerPhone); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "customer_phone"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phone"})
		}
	}
	for _, it := range body.Items {
		if _, ok := validate.ID(it.ProductID); !ok || it.Quantity < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "each item needs a product_id and a positive quantity"})
		}
	}

	contact := services.Contact{
		CustomerID: body.CustomerID,
		Name:       name,
		Phone:      body.CustomerPhone,
		Address:    body.DeliveryAddress,
	}
	orderID, summary, err := h.Order.Place(contact, body.Items, body.Notes)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"error": err.Error()})
		status := fiber.StatusBadRequest
		return c.Status(status).JSON(fiber.Map{
			"error":        "could not place order",
			"availability": summary,
		})
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": orderID,
		"estimate": summary.DeliveryEstimate,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id":     orderID,
		"availability": summary,
	})
}

// GET /api/v1/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	var (
		orders []repos.OrderSummary
		err    error
	)
	if status != "" {
		orders, err = h.Repo.ListByStatus(status, 100)
	} else {
		orders, err = h.Repo.ListLatest(100)
	}
	if err != nil {
		applog.Error(c, "orders.list.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(orders)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	o, items, err := h.Repo.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

// POST /api/v1/orders/:id/status moves the workflow along. Confirmation applies
// the order against stock; delivery books the income entry.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing status"})
	}

	if err := h.Order.Transition(id, body.Status); err != nil {
		applog.Error(c, "orders.status.fail", err, map[string]any{"order_id": id, "status": body.Status})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Audit(c, "orders.status", map[string]any{"order_id": id, "status": body.Status})
	return c.JSON(fiber.Map{"ok": true})
}

// Board renders the staff order board, newest first. Any logged-in staff
// account may see it; status changes stay behind the admin API.
// GET /orders
func (h *OrderHandler) Board(c *fiber.Ctx) error {
	orders, err := h.Repo.ListLatest(50)
	if err != nil {
		applog.Error(c, "orders.board.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "orders", fiber.Map{"Orders": orders})
}

// View renders the customer-facing confirmation page.
// GET /order/:id
func (h *OrderHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, items, err := h.Repo.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "order", fiber.Map{"Order": o, "Items": items})
}
