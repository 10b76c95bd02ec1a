package service

import (
	"context"
	"log/slog"

	"nexcos/internal/middleware"
	"nexcos/internal/models"
	"nexcos/internal/observability"
	"nexcos/internal/realtime"
	"nexcos/internal/store"
	"nexcos/internal/validation"
)

// ChatService manages chat groups and messages.
type ChatService struct {
	store    *store.ChatStore
	notifier *realtime.Notifier
}

func NewChatService(s *store.ChatStore, n *realtime.Notifier) *ChatService {
	return &ChatService{store: s, notifier: n}
}

func (s *ChatService) Groups() []models.ChatGroup {
	return s.store.Groups()
}

// AddGroup creates a group. Group ids are unique.
func (s *ChatService) AddGroup(ctx context.Context, g models.ChatGroup) (models.ChatGroup, error) {
	if err := validation.Struct(g); err != nil {
		return models.ChatGroup{}, err
	}
	if _, exists := s.store.Group(g.ID); exists {
		return models.ChatGroup{}, models.NewConflictError("Chat group " + g.ID + " already exists")
	}
	if g.Members == nil {
		g.Members = []string{}
	}
	g = s.store.AddGroup(g)
	observability.RecordMutation("chat", "add_group")
	middleware.Logger.InfoContext(ctx, "chat group created", slog.String("group_id", g.ID))
	return g, nil
}

// Messages returns the messages posted to groupID in order.
func (s *ChatService) Messages(groupID string) []models.Message {
	return s.store.GroupMessages(groupID)
}

// Post stores a message for groupID and fans it out to group subscribers.
// The group id is not checked against known groups.
func (s *ChatService) Post(ctx context.Context, groupID string, in models.MessageInput) (models.Message, error) {
	if err := validation.Struct(in); err != nil {
		return models.Message{}, err
	}
	m := s.store.AddMessage(models.Message{
		Content: in.Content,
		Sender:  in.Sender,
		GroupID: groupID,
	})
	observability.RecordMutation("chat", "add_message")
	publishOrLog(ctx, "chat", func() error {
		return s.notifier.PublishChatMessage(ctx, m)
	})
	return m, nil
}

// SetActive records the group being viewed.
func (s *ChatService) SetActive(groupID string) {
	s.store.SetActiveGroup(groupID)
	observability.RecordMutation("chat", "set_active")
}

// ClearActive forgets the group being viewed.
func (s *ChatService) ClearActive() {
	s.store.ClearActiveGroup()
	observability.RecordMutation("chat", "clear_active")
}

func (s *ChatService) Active() (string, bool) {
	return s.store.ActiveGroup()
}
