// Package realtime carries store events over Redis pub/sub and fans chat
// messages out to websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"nexcos/internal/middleware"
	"nexcos/internal/models"
	"nexcos/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Channel names.
const (
	AlertsChannel        = "nexcos:alerts"
	NotificationsChannel = "nexcos:notifications"
	ResourcesChannel     = "nexcos:resources"
	chatGroupPrefix      = "nexcos:chat:group:"
	chatGroupPattern     = chatGroupPrefix + "*"
)

// Event types.
const (
	EventCreated  = "created"
	EventUpdated  = "updated"
	EventDeleted  = "deleted"
	EventVerified = "verified"
	EventRead     = "read"
	EventMessage  = "message"
)

// Event is the envelope published on every channel.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewEvent marshals payload into an Event.
func NewEvent(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}

// GroupChannel derives the Redis channel name for a chat group.
func GroupChannel(groupID string) string {
	return chatGroupPrefix + groupID
}

// GroupIDFromChannel reverses GroupChannel.
func GroupIDFromChannel(channel string) (string, bool) {
	id, ok := strings.CutPrefix(channel, chatGroupPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Notifier publishes events into Redis. With a nil client publishing is a
// no-op, except chat messages, which go to the local handler when one is set.
type Notifier struct {
	rdb   *redis.Client
	local func(groupID string, ev Event)
}

// NewNotifier creates a Notifier using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// SetLocalChat registers the chat delivery used when Redis is absent.
func (n *Notifier) SetLocalChat(fn func(groupID string, ev Event)) {
	n.local = fn
}

// Enabled reports whether a Redis client is attached.
func (n *Notifier) Enabled() bool {
	return n != nil && n.rdb != nil
}

func (n *Notifier) publish(ctx context.Context, channel, topic, eventType string, payload any) error {
	if !n.Enabled() {
		return nil
	}
	ev, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.rdb.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	observability.EventsPublished.WithLabelValues(topic).Inc()
	return nil
}

// PublishAlert announces an alert change.
func (n *Notifier) PublishAlert(ctx context.Context, eventType string, alert any) error {
	return n.publish(ctx, AlertsChannel, "alerts", eventType, alert)
}

// PublishNotification announces a notification change.
func (n *Notifier) PublishNotification(ctx context.Context, eventType string, payload any) error {
	return n.publish(ctx, NotificationsChannel, "notifications", eventType, payload)
}

// PublishResource announces a resource change.
func (n *Notifier) PublishResource(ctx context.Context, eventType string, payload any) error {
	return n.publish(ctx, ResourcesChannel, "resources", eventType, payload)
}

// PublishChatMessage sends msg to its group's channel.
func (n *Notifier) PublishChatMessage(ctx context.Context, msg models.Message) error {
	if n == nil {
		return nil
	}
	if n.rdb == nil {
		if n.local != nil {
			ev, err := NewEvent(EventMessage, msg)
			if err != nil {
				return err
			}
			n.local(msg.GroupID, ev)
		}
		return nil
	}
	return n.publish(ctx, GroupChannel(msg.GroupID), "chat", EventMessage, msg)
}

// StartChatSubscriber subscribes to every chat group channel and calls
// onMessage for each incoming message until ctx is done.
func (n *Notifier) StartChatSubscriber(ctx context.Context, onMessage func(channel, payload string)) error {
	if !n.Enabled() {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, chatGroupPattern)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", chatGroupPattern, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in chat subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
