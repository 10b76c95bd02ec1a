package server

import (
	"nexcos/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListChatGroups handles GET /api/chat/groups
func (s *Server) ListChatGroups(c *fiber.Ctx) error {
	return c.JSON(s.chat.Groups())
}

// CreateChatGroup handles POST /api/chat/groups
func (s *Server) CreateChatGroup(c *fiber.Ctx) error {
	var g models.ChatGroup
	if err := parseBody(c, &g); err != nil {
		return respondError(c, err)
	}
	created, err := s.chat.AddGroup(c.UserContext(), g)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetGroupMessages handles GET /api/chat/groups/:id/messages
func (s *Server) GetGroupMessages(c *fiber.Ctx) error {
	return c.JSON(s.chat.Messages(c.Params("id")))
}

// PostGroupMessage handles POST /api/chat/groups/:id/messages
func (s *Server) PostGroupMessage(c *fiber.Ctx) error {
	var in models.MessageInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if in.Sender == "" {
		if u, ok := s.sessions.Current(); ok {
			in.Sender = u.Name
		}
	}
	m, err := s.chat.Post(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// activeGroupBody carries a group id or null to clear it.
type activeGroupBody struct {
	GroupID *string `json:"group_id"`
}

// GetActiveGroup handles GET /api/chat/active
func (s *Server) GetActiveGroup(c *fiber.Ctx) error {
	id, ok := s.chat.Active()
	if !ok {
		return c.JSON(fiber.Map{"group_id": nil})
	}
	return c.JSON(fiber.Map{"group_id": id})
}

// SetActiveGroup handles PUT /api/chat/active
func (s *Server) SetActiveGroup(c *fiber.Ctx) error {
	var body activeGroupBody
	if err := parseBody(c, &body); err != nil {
		return respondError(c, err)
	}
	if body.GroupID == nil {
		s.chat.ClearActive()
		return c.JSON(fiber.Map{"group_id": nil})
	}
	s.chat.SetActive(*body.GroupID)
	return c.JSON(fiber.Map{"group_id": *body.GroupID})
}
