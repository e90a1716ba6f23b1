package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/service"
)

type NotificationHandler struct {
	service service.NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(s service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: s, logger: logger}
}

// GetNotifications lists the caller's notifications, newest first
// GET /api/v1/notifications?unread=true
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	list, unread, err := h.service.List(middleware.CurrentUserID(c), c.QueryBool("unread"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if list == nil {
		list = []model.Notification{}
	}
	return c.JSON(fiber.Map{"data": list, "unread_count": unread})
}

// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid notification ID")
	}

	n, err := h.service.MarkRead(middleware.CurrentUserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(n)
}

// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	updated, err := h.service.MarkAllRead(middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Notifications marked as read", "updated": updated})
}

// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid notification ID")
	}

	if err := h.service.Delete(middleware.CurrentUserID(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}
