package store

import (
	"sync"

	"nexcos/internal/models"
)

// ChatStore keeps chat groups, the global message log and the group the
// session is currently viewing.
type ChatStore struct {
	mu          sync.RWMutex
	groups      []models.ChatGroup
	messages    []models.Message
	activeGroup *string
	opts        options
}

// NewChatStore returns a store seeded with a copy of groups and no messages.
func NewChatStore(groups []models.ChatGroup, opts ...Option) *ChatStore {
	s := &ChatStore{
		groups: make([]models.ChatGroup, 0, len(groups)),
		opts:   buildOptions(opts),
	}
	for _, g := range groups {
		s.groups = append(s.groups, g.Clone())
	}
	return s
}

// Groups returns every group in insertion order.
func (s *ChatStore) Groups() []models.ChatGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatGroup, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.Clone()
	}
	return out
}

// Group returns the first group with the given id.
func (s *ChatStore) Group(id string) (models.ChatGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.ID == id {
			return g.Clone(), true
		}
	}
	return models.ChatGroup{}, false
}

// AddGroup appends g. Ids are not checked for uniqueness here.
func (s *ChatStore) AddGroup(g models.ChatGroup) models.ChatGroup {
	g = g.Clone()
	s.mu.Lock()
	s.groups = append(s.groups, g)
	s.mu.Unlock()
	return g.Clone()
}

// AddMessage appends m to the message log. A blank id or zero timestamp is
// filled in; group_id is stored as given.
func (s *ChatStore) AddMessage(m models.Message) models.Message {
	id, now := s.opts.stamp()
	if m.ID == "" {
		m.ID = id
	}
	if m.Timestamp == 0 {
		m.Timestamp = now
	}

	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()

	return m
}

// GroupMessages returns the messages for groupID in the order they were
// added. It filters the whole log on every call, so cost grows with the
// total number of messages across all groups.
func (s *ChatStore) GroupMessages(groupID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Message, 0)
	for _, m := range s.messages {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out
}

// SetActiveGroup records the group being viewed. The id is not validated;
// an empty id is still a set value.
func (s *ChatStore) SetActiveGroup(groupID string) {
	s.mu.Lock()
	s.activeGroup = &groupID
	s.mu.Unlock()
}

// ClearActiveGroup forgets the group being viewed.
func (s *ChatStore) ClearActiveGroup() {
	s.mu.Lock()
	s.activeGroup = nil
	s.mu.Unlock()
}

// ActiveGroup returns the group being viewed; ok is false until one is set.
func (s *ChatStore) ActiveGroup() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeGroup == nil {
		return "", false
	}
	return *s.activeGroup, true
}
