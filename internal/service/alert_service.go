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

// AlertService manages community alerts.
type AlertService struct {
	store    *store.AlertStore
	notifier *realtime.Notifier
}

func NewAlertService(s *store.AlertStore, n *realtime.Notifier) *AlertService {
	return &AlertService{store: s, notifier: n}
}

// List returns alerts newest first.
func (s *AlertService) List() []models.Alert {
	return s.store.List()
}

// Latest returns the alert shown in the banner.
func (s *AlertService) Latest() (models.Alert, bool) {
	return s.store.Latest()
}

func (s *AlertService) Add(ctx context.Context, in models.AlertInput) (models.Alert, error) {
	if err := validation.Struct(in); err != nil {
		return models.Alert{}, err
	}
	a := s.store.Add(in)
	observability.RecordMutation("alerts", "add")
	middleware.Logger.InfoContext(ctx, "alert raised",
		slog.String("alert_id", a.ID),
		slog.String("type", string(a.Type)),
	)
	publishOrLog(ctx, "alerts", func() error {
		return s.notifier.PublishAlert(ctx, realtime.EventCreated, a)
	})
	return a, nil
}

func (s *AlertService) Remove(ctx context.Context, id string) bool {
	if !s.store.Remove(id) {
		return false
	}
	observability.RecordMutation("alerts", "remove")
	publishOrLog(ctx, "alerts", func() error {
		return s.notifier.PublishAlert(ctx, realtime.EventDeleted, map[string]string{"id": id})
	})
	return true
}

// Verify marks the alert verified. Verifying twice is harmless.
func (s *AlertService) Verify(ctx context.Context, id string) (models.Alert, bool) {
	a, ok := s.store.Verify(id)
	if !ok {
		return models.Alert{}, false
	}
	observability.RecordMutation("alerts", "verify")
	publishOrLog(ctx, "alerts", func() error {
		return s.notifier.PublishAlert(ctx, realtime.EventVerified, a)
	})
	return a, true
}
