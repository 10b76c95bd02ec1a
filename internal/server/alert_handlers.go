package server

import (
	"nexcos/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListAlerts handles GET /api/alerts
func (s *Server) ListAlerts(c *fiber.Ctx) error {
	return c.JSON(s.alerts.List())
}

// LatestAlert handles GET /api/alerts/latest. No alerts is 204.
func (s *Server) LatestAlert(c *fiber.Ctx) error {
	a, ok := s.alerts.Latest()
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(a)
}

// CreateAlert handles POST /api/alerts
func (s *Server) CreateAlert(c *fiber.Ctx) error {
	var in models.AlertInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	a, err := s.alerts.Add(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// VerifyAlert handles POST /api/alerts/:id/verify
func (s *Server) VerifyAlert(c *fiber.Ctx) error {
	a, ok := s.alerts.Verify(c.UserContext(), c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(a)
}

// DeleteAlert handles DELETE /api/alerts/:id
func (s *Server) DeleteAlert(c *fiber.Ctx) error {
	s.alerts.Remove(c.UserContext(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
