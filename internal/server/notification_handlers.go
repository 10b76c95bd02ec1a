package server

import (
	"nexcos/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications handles GET /api/notifications
func (s *Server) ListNotifications(c *fiber.Ctx) error {
	return c.JSON(s.notifications.List())
}

// CreateNotification handles POST /api/notifications
func (s *Server) CreateNotification(c *fiber.Ctx) error {
	var in models.NotificationInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	n, err := s.notifications.Add(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	s.notifications.MarkAsRead(c.UserContext(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	s.notifications.MarkAllAsRead(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteNotification handles DELETE /api/notifications/:id
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	s.notifications.Remove(c.UserContext(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// GetNotificationSettings handles GET /api/notifications/settings
func (s *Server) GetNotificationSettings(c *fiber.Ctx) error {
	return c.JSON(s.notifications.Settings())
}

// UpdateNotificationSettings handles PATCH /api/notifications/settings
func (s *Server) UpdateNotificationSettings(c *fiber.Ctx) error {
	var patch models.NotificationSettingsPatch
	if err := parseBody(c, &patch); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.notifications.UpdateSettings(c.UserContext(), patch))
}

// GetTheme handles GET /api/theme
func (s *Server) GetTheme(c *fiber.Ctx) error {
	return c.JSON(s.theme.State())
}

// ToggleTheme handles POST /api/theme/toggle
func (s *Server) ToggleTheme(c *fiber.Ctx) error {
	return c.JSON(s.theme.Toggle(c.UserContext()))
}
