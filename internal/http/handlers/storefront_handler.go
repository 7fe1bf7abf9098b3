package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "purposefood/internal/log"
	"purposefood/internal/services"
	"purposefood/internal/validate"
)

// StorefrontHandler renders the public pages customers order from.
type StorefrontHandler struct {
	Catalog *services.CatalogService
}

func (h *StorefrontHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the menu"})
	}
	products, err := h.Catalog.ListProducts(true)
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the menu"})
	}
	return render(c, "home", fiber.Map{"Categories": cats, "Products": products})
}

func (h *StorefrontHandler) Category(c *fiber.Ctx) error {
	catID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	products, err := h.Catalog.ListProductsByCategory(catID, 1, 24)
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "category", fiber.Map{"CategoryID": catID, "Products": products})
}

func (h *StorefrontHandler) ProductDetail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || !p.Active {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{
		"P":           p,
		"Ingredients": p.Ingredients.Items(),
		"LowStock":    p.LowOnStock(),
	})
}

func (h *StorefrontHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return render(c, "search", fiber.Map{"Q": "", "Products": []any{}, "Count": 0})
	}
	if len(q) > 50 {
		q = q[:50]
	}
	products, err := h.Catalog.Search(q, 1, 20)
	if err != nil {
		applog.Error(c, "search.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}
	return render(c, "search", fiber.Map{"Q": q, "Products": products, "Count": len(products)})
}
