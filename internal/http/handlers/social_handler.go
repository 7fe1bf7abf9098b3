package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"purposefood/internal/domain"
	applog "purposefood/internal/log"
	"purposefood/internal/repos"
	"purposefood/internal/validate"
)

type SocialHandler struct {
	Posts *repos.SocialRepo
}

type socialPayload struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Platform     string `json:"platform"`
	Status       string `json:"status"`
	ScheduledFor string `json:"scheduled_for"`
}

func socialStatus(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "draft", true
	}
	return s, s == "draft" || s == "scheduled" || s == "published"
}

// GET /api/v1/social-posts
func (h *SocialHandler) List(c *fiber.Ctx) error {
	status, ok := socialStatus(c.Query("status"))
	if c.Query("status") == "" {
		status = ""
	} else if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
	}
	posts, err := h.Posts.List(status, 100)
	if err != nil {
		applog.Error(c, "social.list.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load posts"})
	}
	return c.JSON(posts)
}

// POST /api/v1/social-posts
func (h *SocialHandler) Create(c *fiber.Ctx) error {
	var body socialPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if strings.TrimSpace(body.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	platform, ok := validate.Platform(body.Platform)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "platform"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "platform must be instagram, facebook or whatsapp"})
	}
	status, ok := socialStatus(body.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
	}

	p := domain.SocialPost{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(body.Title),
		Content:      body.Content,
		Platform:     platform,
		Status:       status,
		ScheduledFor: body.ScheduledFor,
	}
	if err := h.Posts.Create(p); err != nil {
		applog.Error(c, "social.create.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not create post"})
	}
	applog.Audit(c, "social.create", map[string]any{"post_id": p.ID, "platform": p.Platform})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/v1/social-posts/:id
func (h *SocialHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var body socialPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	platform, ok := validate.Platform(body.Platform)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "platform must be instagram, facebook or whatsapp"})
	}
	status, ok := socialStatus(body.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
	}

	p := domain.SocialPost{
		ID:           id,
		Title:        strings.TrimSpace(body.Title),
		Content:      body.Content,
		Platform:     platform,
		Status:       status,
		ScheduledFor: body.ScheduledFor,
	}
	if err := h.Posts.Update(p); err != nil {
		applog.Error(c, "social.update.fail", err, map[string]any{"post_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update post"})
	}
	applog.Audit(c, "social.update", map[string]any{"post_id": id})
	return c.JSON(p)
}

// DELETE /api/v1/social-posts/:id
func (h *SocialHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Posts.Delete(id); err != nil {
		applog.Error(c, "social.delete.fail", err, map[string]any{"post_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not delete post"})
	}
	applog.Audit(c, "social.delete", map[string]any{"post_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
