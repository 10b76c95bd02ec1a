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

// NotificationService manages the notification panel.
type NotificationService struct {
	store    *store.NotificationStore
	notifier *realtime.Notifier
}

// NotificationList is the panel view: newest first plus the badge count.
type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

func NewNotificationService(s *store.NotificationStore, n *realtime.Notifier) *NotificationService {
	return &NotificationService{store: s, notifier: n}
}

func (s *NotificationService) List() NotificationList {
	return NotificationList{
		Notifications: s.store.List(),
		UnreadCount:   s.store.UnreadCount(),
	}
}

// Add validates in and stores it as an unread notification.
func (s *NotificationService) Add(ctx context.Context, in models.NotificationInput) (models.Notification, error) {
	if err := validation.Struct(in); err != nil {
		return models.Notification{}, err
	}
	n := s.store.Add(in)
	observability.RecordMutation("notifications", "add")
	publishOrLog(ctx, "notifications", func() error {
		return s.notifier.PublishNotification(ctx, realtime.EventCreated, n)
	})
	return n, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id string) bool {
	if !s.store.MarkAsRead(id) {
		return false
	}
	observability.RecordMutation("notifications", "mark_read")
	publishOrLog(ctx, "notifications", func() error {
		return s.notifier.PublishNotification(ctx, realtime.EventRead, map[string]string{"id": id})
	})
	return true
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context) {
	s.store.MarkAllAsRead()
	observability.RecordMutation("notifications", "mark_all_read")
	publishOrLog(ctx, "notifications", func() error {
		return s.notifier.PublishNotification(ctx, realtime.EventRead, map[string]bool{"all": true})
	})
}

func (s *NotificationService) Remove(ctx context.Context, id string) bool {
	if !s.store.Remove(id) {
		return false
	}
	observability.RecordMutation("notifications", "remove")
	publishOrLog(ctx, "notifications", func() error {
		return s.notifier.PublishNotification(ctx, realtime.EventDeleted, map[string]string{"id": id})
	})
	return true
}

func (s *NotificationService) Settings() models.NotificationSettings {
	return s.store.Settings()
}

func (s *NotificationService) UpdateSettings(ctx context.Context, patch models.NotificationSettingsPatch) models.NotificationSettings {
	settings := s.store.UpdateSettings(patch)
	observability.RecordMutation("notifications", "update_settings")
	middleware.Logger.InfoContext(ctx, "notification settings updated",
		slog.Bool("email", settings.Email),
		slog.Bool("push", settings.Push),
		slog.Bool("sound", settings.Sound),
		slog.Bool("desktop", settings.Desktop),
	)
	return settings
}
