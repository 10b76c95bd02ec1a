package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"nexcos/internal/middleware"
	"nexcos/internal/observability"

	"github.com/gofiber/websocket/v2"
)

// ChatHub tracks websocket clients per chat group.
type ChatHub struct {
	mu     sync.RWMutex
	groups map[string]map[*Client]struct{}
}

// NewChatHub creates an empty ChatHub.
func NewChatHub() *ChatHub {
	return &ChatHub{groups: make(map[string]map[*Client]struct{})}
}

// Register adds a connection to groupID and returns its client. The caller
// starts the pumps.
func (h *ChatHub) Register(groupID, sender string, conn *websocket.Conn) *Client {
	client := &Client{
		hub:     h,
		Conn:    conn,
		Send:    make(chan []byte, sendBuffer),
		GroupID: groupID,
		Sender:  sender,
	}
	h.add(client)
	return client
}

func (h *ChatHub) add(client *Client) {
	h.mu.Lock()
	if h.groups[client.GroupID] == nil {
		h.groups[client.GroupID] = make(map[*Client]struct{})
	}
	h.groups[client.GroupID][client] = struct{}{}
	count := len(h.groups[client.GroupID])
	h.mu.Unlock()

	observability.WebSocketConnections.Inc()
	middleware.Logger.Info("chat client joined",
		slog.String("group_id", client.GroupID),
		slog.Int("clients", count),
	)
}

// Unregister removes client and closes its send queue. Repeated calls are
// no-ops.
func (h *ChatHub) Unregister(client *Client) {
	h.mu.Lock()
	clients, ok := h.groups[client.GroupID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.groups, client.GroupID)
	}
	close(client.Send)
	h.mu.Unlock()

	observability.WebSocketConnections.Dec()
	middleware.Logger.Info("chat client left", slog.String("group_id", client.GroupID))
}

// ClientCount returns the number of clients watching groupID.
func (h *ChatHub) ClientCount(groupID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[groupID])
}

// BroadcastToGroup sends ev to every client watching groupID.
func (h *ChatHub) BroadcastToGroup(groupID string, ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		middleware.Logger.Error("marshal chat event", slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.groups[groupID] {
		client.TrySend(body)
	}
}

// StartWiring feeds chat group channels from n into the hub. Without Redis
// the notifier delivers chat messages straight to the hub.
func (h *ChatHub) StartWiring(ctx context.Context, n *Notifier) error {
	if !n.Enabled() {
		n.SetLocalChat(h.BroadcastToGroup)
		return nil
	}
	return n.StartChatSubscriber(ctx, func(channel, payload string) {
		groupID, ok := GroupIDFromChannel(channel)
		if !ok {
			middleware.Logger.Warn("unexpected chat channel", slog.String("channel", channel))
			return
		}
		var ev Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			middleware.Logger.Warn("malformed chat event",
				slog.String("channel", channel),
				slog.String("error", err.Error()),
			)
			return
		}
		if ev.Type == "" {
			ev.Type = EventMessage
		}
		h.BroadcastToGroup(groupID, ev)
	})
}

// Shutdown tells every client the server is going away and drops them.
func (h *ChatHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.groups {
		for client := range clients {
			if client.Conn != nil {
				_ = client.Conn.WriteMessage(websocket.TextMessage,
					[]byte(`{"type":"server_shutdown","payload":{"message":"Server is shutting down"}}`))
				_ = client.Conn.Close()
			}
			close(client.Send)
			observability.WebSocketConnections.Dec()
		}
	}
	h.groups = make(map[string]map[*Client]struct{})
	return nil
}
