package store

import (
	"sync"

	"nexcos/internal/models"
)

// NotificationStore keeps the session's notifications newest first along
// with the delivery settings.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications []models.Notification
	settings      models.NotificationSettings
	opts          options
}

// NewNotificationStore returns a store seeded with a copy of seed and the
// given settings.
func NewNotificationStore(seed []models.Notification, settings models.NotificationSettings, opts ...Option) *NotificationStore {
	return &NotificationStore{
		notifications: append([]models.Notification(nil), seed...),
		settings:      settings,
		opts:          buildOptions(opts),
	}
}

// List returns all notifications, newest first.
func (s *NotificationStore) List() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Notification(nil), s.notifications...)
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, item := range s.notifications {
		if !item.Read {
			n++
		}
	}
	return n
}

// Add creates an unread notification and prepends it.
func (s *NotificationStore) Add(in models.NotificationInput) models.Notification {
	id, now := s.opts.stamp()
	n := models.Notification{
		ID:        id,
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		Read:      false,
		CreatedAt: now,
	}

	s.mu.Lock()
	s.notifications = append([]models.Notification{n}, s.notifications...)
	s.mu.Unlock()

	return n
}

// MarkAsRead flags one notification as read; a missing id is a no-op.
func (s *NotificationStore) MarkAsRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllAsRead flags every notification as read.
func (s *NotificationStore) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		s.notifications[i].Read = true
	}
}

// Remove drops the notification with the given id; a missing id is a no-op.
func (s *NotificationStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i:i], s.notifications[i+1:]...)
			return true
		}
	}
	return false
}

// Settings returns the current delivery settings.
func (s *NotificationStore) Settings() models.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings merges patch over the current settings and returns the
// result.
func (s *NotificationStore) UpdateSettings(patch models.NotificationSettingsPatch) models.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = patch.Apply(s.settings)
	return s.settings
}
