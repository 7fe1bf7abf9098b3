package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"purposefood/internal/domain"
	applog "purposefood/internal/log"
	"purposefood/internal/repos"
	"purposefood/internal/validate"
)

type CustomerHandler struct {
	Customers *repos.CustomerRepo
	Orders    *repos.OrderRepo
}

type customerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (h *CustomerHandler) validateBody(c *fiber.Ctx, body *customerPayload) (string, bool) {
	name, ok := validate.Name(body.Name)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return "", false
	}
	if body.Email != "" {
		if _, ok := validate.Email(body.Email); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "email"})
			return "", false
		}
	}
	if body.Phone != "" {
		if _, ok := validate.Phone(body.Phone); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
			return "", false
		}
	}
	return name, true
}

// GET /api/v1/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.Customers.List()
	if err != nil {
		applog.Error(c, "customers.list.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load customers"})
	}
	return c.JSON(customers)
}

// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	cust, err := h.Customers.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "customer not found"})
	}
	return c.JSON(cust)
}

// GET /api/v1/customers/:id/orders
func (h *CustomerHandler) OrderHistory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	orders, err := h.Orders.ListByCustomer(id)
	if err != nil {
		applog.Error(c, "customers.orders.fail", err, map[string]any{"customer_id": id})
		return c.Status(500).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(orders)
}

// POST /api/v1/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var body customerPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	name, ok := h.validateBody(c, &body)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid customer payload"})
	}

	cust := domain.Customer{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   body.Email,
		Phone:   body.Phone,
		Address: body.Address,
		Notes:   body.Notes,
	}
	if err := h.Customers.Create(cust); err != nil {
		applog.Error(c, "customers.create.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not create customer"})
	}
	applog.Audit(c, "customers.create", map[string]any{"customer_id": cust.ID})
	return c.Status(fiber.StatusCreated).JSON(cust)
}

// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var body customerPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	name, ok := h.validateBody(c, &body)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid customer payload"})
	}

	cust := domain.Customer{ID: id, Name: name, Email: body.Email, Phone: body.Phone, Address: body.Address, Notes: body.Notes}
	if err := h.Customers.Update(cust); err != nil {
		applog.Error(c, "customers.update.fail", err, map[string]any{"customer_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update customer"})
	}
	applog.Audit(c, "customers.update", map[string]any{"customer_id": id})
	return c.JSON(cust)
}

// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Customers.Delete(id); err != nil {
		applog.Error(c, "customers.delete.fail", err, map[string]any{"customer_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not delete customer"})
	}
	applog.Audit(c, "customers.delete", map[string]any{"customer_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
