package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "purposefood/internal/log"
	"purposefood/internal/repos"
	"purposefood/internal/validate"
)

// NotificationHandler is the notification center: it lists alerts written by
// the stock core and manages their read state. It never creates alerts.
type NotificationHandler struct {
	Notifs *repos.NotificationRepo
}

// GET /api/v1/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.Query("unread") != ""
	ns, err := h.Notifs.List(50, unreadOnly)
	if err != nil {
		applog.Error(c, "notifications.list.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load notifications"})
	}
	return c.JSON(ns)
}

// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.Notifs.UnreadCount()
	if err != nil {
		applog.Error(c, "notifications.count.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not count notifications"})
	}
	return c.JSON(fiber.Map{"unread": n})
}

// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Notifs.MarkRead(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "notification not found"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.Notifs.MarkAllRead(); err != nil {
		applog.Error(c, "notifications.readall.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not mark notifications read"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
