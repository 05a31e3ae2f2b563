package handler

import (
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: s}
}

// GetNotifications lists notifications newest first
// Query params: unread=true, page, pageSize
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	result, err := h.service.List(c.QueryBool("unread"), page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	n, err := h.service.UnreadCount()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"count": n})
}

func (h *NotificationHandler) CreateNotification(c *fiber.Ctx) error {
	var req model.Notification
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	n, err := h.service.Create(&req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Notification created", "data": n})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.service.MarkRead(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllRead(); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}
