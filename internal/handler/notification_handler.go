package handler

import (
	"go-pantry-mind/internal/middleware"
	"go-pantry-mind/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationHandler(notifRepo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifRepo: notifRepo}
}

// GET /api/v1/notifications?unread=true
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notifRepo.FindByKitchen(middleware.Caller(c).KitchenID, unreadOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(notifications)
}

// PATCH /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	if err := h.notifRepo.MarkRead(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// PATCH /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notifRepo.MarkAllRead(middleware.Caller(c).KitchenID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}
