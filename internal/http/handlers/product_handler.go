package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"purposefood/internal/domain"
	applog "purposefood/internal/log"
	"purposefood/internal/services"
	"purposefood/internal/validate"
)

// ProductHandler owns the admin product API. Edits go through the
// mutate-then-notify path so the notification center sees catalog changes.
type ProductHandler struct {
	Catalog *services.CatalogService
	Inv     *services.InventoryService
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	activeOnly := c.Query("all") == ""
	products, err := h.Catalog.ListProducts(activeOnly)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}

type productPayload struct {
	CategoryID   string   `json:"category_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Ingredients  []string `json:"ingredients"`
	StockCurrent int      `json:"stock_current"`
	StockMinimum int      `json:"stock_minimum"`
	PrepHours    float64  `json:"prep_hours"`
	ImageURL     string   `json:"image_url"`
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var body productPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	name, ok := validate.Name(body.Name)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required (max 60 chars)"})
	}
	if body.Price < 0 || body.PrepHours < 0 || body.StockMinimum < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price, prep_hours and stock_minimum must be non-negative"})
	}

	p := domain.Product{
		ID:           uuid.NewString(),
		CategoryID:   body.CategoryID,
		Name:         name,
		Description:  body.Description,
		Price:        body.Price,
		Ingredients:  domain.IngredientsFromList(body.Ingredients),
		StockCurrent: body.StockCurrent,
		StockMinimum: body.StockMinimum,
		PrepHours:    body.PrepHours,
		ImageURL:     body.ImageURL,
		Active:       true,
	}
	if err := h.Catalog.CreateProduct(p); err != nil {
		applog.Error(c, "products.create.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not create product"})
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PATCH /api/v1/products/:id applies a partial update and emits product_updated.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	fields := map[string]any{}
	for key, v := range body {
		switch key {
		case "category_id", "name", "description", "image_url":
			fields[key] = v
		case "price", "stock_current", "stock_minimum", "prep_hours":
			fields[key] = v
		case "active":
			fields[key] = v
		case "ingredients":
			// Accept both the structured and the raw shape.
			switch iv := v.(type) {
			case string:
				fields[key] = domain.IngredientsFromText(iv)
			case []any:
				items := make([]string, 0, len(iv))
				for _, x := range iv {
					if s, ok := x.(string); ok {
						items = append(items, s)
					}
				}
				fields[key] = domain.IngredientsFromList(items)
			}
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown field: " + key})
		}
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no updatable fields in body"})
	}

	p, err := h.Inv.UpdateProductAndNotify(id, fields)
	if err != nil {
		applog.Error(c, "products.update.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update product"})
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

// DELETE /api/v1/products/:id deactivates the product (soft delete).
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Catalog.DeactivateProduct(id); err != nil {
		applog.Error(c, "products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not deactivate product"})
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
