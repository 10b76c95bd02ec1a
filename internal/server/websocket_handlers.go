package server

import (
	"encoding/json"
	"log/slog"

	"nexcos/internal/middleware"
	"nexcos/internal/models"
	"nexcos/internal/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const anonymousSender = "Anonymous"

// WebSocketUpgrade rejects plain HTTP requests on websocket routes.
func (s *Server) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// WebSocketChatHandler streams a chat group. Frames sent by the client are
// {"content": "...", "sender": "..."} and are posted to the group; every
// message posted to the group, from any source, is pushed to the client.
func (s *Server) WebSocketChatHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		groupID := conn.Params("groupId")
		sender := conn.Query("sender")
		if sender == "" {
			sender = anonymousSender
			if u, ok := s.sessions.Current(); ok {
				sender = u.Name
			}
		}

		client := s.chatHub.Register(groupID, sender, conn)
		client.IncomingHandler = func(c *realtime.Client, frame []byte) {
			var in models.MessageInput
			if err := json.Unmarshal(frame, &in); err != nil {
				middleware.Logger.Warn("invalid chat frame",
					slog.String("group_id", c.GroupID),
					slog.String("error", err.Error()),
				)
				return
			}
			if in.Sender == "" {
				in.Sender = c.Sender
			}
			if _, err := s.chat.Post(s.shutdownCtx, c.GroupID, in); err != nil {
				if body, mErr := json.Marshal(fiber.Map{"type": "error", "payload": fiber.Map{"error": err.Error()}}); mErr == nil {
					c.TrySend(body)
				}
			}
		}

		go client.WritePump()
		client.ReadPump()
	})
}
