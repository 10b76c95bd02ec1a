package server

import (
	"nexcos/internal/assistant"
	"nexcos/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	functionAllowOrigin  = "*"
	functionAllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// AskAssistant handles POST /api/assistant
func (s *Server) AskAssistant(c *fiber.Ctx) error {
	message, err := assistant.ParseRequest(c.Body())
	if err != nil {
		return respondError(c, err)
	}
	reply, err := s.assistant.Reply(c.UserContext(), message)
	if err != nil {
		if models.ErrorCode(err) == models.CodeRemoteFailure {
			return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse{
				Error: assistant.FailureResponse,
				Code:  models.CodeRemoteFailure,
			})
		}
		return respondError(c, err)
	}
	return c.JSON(reply)
}

func setFunctionCORS(c *fiber.Ctx) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, functionAllowOrigin)
	c.Set(fiber.HeaderAccessControlAllowHeaders, functionAllowHeaders)
}

// NexAIPreflight handles OPTIONS /functions/v1/nexai
func (s *Server) NexAIPreflight(c *fiber.Ctx) error {
	setFunctionCORS(c)
	return c.SendString("ok")
}

// NexAIFunction handles POST /functions/v1/nexai, the keyword responder
// exposed as a standalone backend: {message} in, {response} or a 400
// {error} out.
func (s *Server) NexAIFunction(c *fiber.Ctx) error {
	setFunctionCORS(c)

	message, err := assistant.ParseRequest(c.Body())
	if err == nil {
		var reply assistant.Reply
		reply, err = s.functionResponder.Respond(message)
		if err == nil {
			return c.JSON(fiber.Map{"response": reply.Response})
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
