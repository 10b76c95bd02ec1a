package server

import (
	"nexcos/internal/models"
	"nexcos/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ListResources handles GET /api/resources?q=&type=
func (s *Server) ListResources(c *fiber.Ctx) error {
	return c.JSON(s.resources.List(store.ResourceFilter{
		Query: c.Query("q"),
		Type:  c.Query("type"),
	}))
}

// GetResource handles GET /api/resources/:id
func (s *Server) GetResource(c *fiber.Ctx) error {
	r, err := s.resources.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(r)
}

// CreateResource handles POST /api/resources
func (s *Server) CreateResource(c *fiber.Ctx) error {
	var in models.ResourceInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	r, err := s.resources.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// UpdateResource handles PATCH /api/resources/:id. An unknown id is a
// silent no-op answered with 204.
func (s *Server) UpdateResource(c *fiber.Ctx) error {
	var patch models.ResourcePatch
	if err := parseBody(c, &patch); err != nil {
		return respondError(c, err)
	}
	r, ok, err := s.resources.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(r)
}

// DeleteResource handles DELETE /api/resources/:id
func (s *Server) DeleteResource(c *fiber.Ctx) error {
	s.resources.Delete(c.UserContext(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// RequestResource handles POST /api/resources/:id/request
func (s *Server) RequestResource(c *fiber.Ctx) error {
	r, ok, err := s.resources.Request(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(r)
}

// BookResource handles POST /api/resources/:id/book
func (s *Server) BookResource(c *fiber.Ctx) error {
	var req models.BookingRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	r, ok, err := s.resources.Book(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(r)
}
