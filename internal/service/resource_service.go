package service

import (
	"context"
	"fmt"
	"log/slog"

	"nexcos/internal/middleware"
	"nexcos/internal/models"
	"nexcos/internal/observability"
	"nexcos/internal/realtime"
	"nexcos/internal/store"
	"nexcos/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// ResourceService manages the shared resource catalog.
type ResourceService struct {
	store         *store.ResourceStore
	notifier      *realtime.Notifier
	notifications *NotificationService
}

// NewResourceService returns a ResourceService. notifications may be nil,
// in which case request and booking confirmations are not recorded.
func NewResourceService(s *store.ResourceStore, n *realtime.Notifier, notifications *NotificationService) *ResourceService {
	return &ResourceService{store: s, notifier: n, notifications: notifications}
}

// List returns the resources matching f in catalog order.
func (s *ResourceService) List(f store.ResourceFilter) []models.Resource {
	return s.store.Search(f)
}

// Get returns a single resource or a not-found error.
func (s *ResourceService) Get(id string) (models.Resource, error) {
	r, ok := s.store.Get(id)
	if !ok {
		return models.Resource{}, models.NewNotFoundError("Resource", id)
	}
	return r, nil
}

// Create validates in and appends it to the catalog. A blank status means
// available.
func (s *ResourceService) Create(ctx context.Context, in models.ResourceInput) (r models.Resource, err error) {
	ctx, span := observability.StartSpan(ctx, "resources", "create")
	defer func() { observability.EndSpan(span, err) }()

	if in.Status == "" {
		in.Status = models.ResourceStatusAvailable
	}
	if err := validation.Struct(in); err != nil {
		return models.Resource{}, err
	}

	r = s.store.Add(in)
	span.SetAttributes(attribute.String("resource.id", r.ID))
	observability.RecordMutation("resources", "add")
	middleware.Logger.InfoContext(ctx, "resource created",
		slog.String("resource_id", r.ID),
		slog.String("type", string(r.Type)),
	)
	publishOrLog(ctx, "resources", func() error {
		return s.notifier.PublishResource(ctx, realtime.EventCreated, r)
	})
	return r, nil
}

// Update merges patch over the resource with the given id. ok is false when
// the id is unknown; nothing changes in that case.
func (s *ResourceService) Update(ctx context.Context, id string, patch models.ResourcePatch) (r models.Resource, ok bool, err error) {
	if err := validation.Struct(patch); err != nil {
		return models.Resource{}, false, err
	}
	r, ok = s.store.Update(id, patch)
	if !ok {
		return models.Resource{}, false, nil
	}
	observability.RecordMutation("resources", "update")
	publishOrLog(ctx, "resources", func() error {
		return s.notifier.PublishResource(ctx, realtime.EventUpdated, r)
	})
	return r, true, nil
}

// Delete removes the resource; false when it was already gone.
func (s *ResourceService) Delete(ctx context.Context, id string) bool {
	if !s.store.Delete(id) {
		return false
	}
	observability.RecordMutation("resources", "delete")
	middleware.Logger.InfoContext(ctx, "resource deleted", slog.String("resource_id", id))
	publishOrLog(ctx, "resources", func() error {
		return s.notifier.PublishResource(ctx, realtime.EventDeleted, map[string]string{"id": id})
	})
	return true
}

// Request marks the resource as requested and confirms it in the
// notification panel.
func (s *ResourceService) Request(ctx context.Context, id string) (models.Resource, bool, error) {
	status := models.ResourceStatusRequested
	r, ok, err := s.Update(ctx, id, models.ResourcePatch{Status: &status})
	if err != nil || !ok {
		return r, ok, err
	}
	s.confirm(ctx, models.NotificationInput{
		Title:   "Request Sent",
		Message: fmt.Sprintf("Your request for %s has been sent to %s.", r.Title, r.Owner),
		Type:    models.NotificationTypeInfo,
	})
	return r, true, nil
}

// Book marks the resource as booked for the slot in req.
func (s *ResourceService) Book(ctx context.Context, id string, req models.BookingRequest) (r models.Resource, ok bool, err error) {
	ctx, span := observability.StartSpan(ctx, "resources", "book", attribute.String("resource.id", id))
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.Struct(req); err != nil {
		return models.Resource{}, false, err
	}
	status := models.ResourceStatusBooked
	r, ok, err = s.Update(ctx, id, models.ResourcePatch{Status: &status})
	if err != nil || !ok {
		return r, ok, err
	}

	msg := fmt.Sprintf("Your booking for %s on %s from %s to %s has been confirmed.",
		r.Title, req.Date, req.StartTime, req.EndTime)
	if req.Attendees > 0 {
		msg += fmt.Sprintf(" Attendees: %d.", req.Attendees)
	}
	if req.Purpose != "" {
		msg += " Purpose: " + req.Purpose
	}
	s.confirm(ctx, models.NotificationInput{
		Title:   "Facility Booking Confirmed",
		Message: msg,
		Type:    models.NotificationTypeSuccess,
	})
	return r, true, nil
}

func (s *ResourceService) confirm(ctx context.Context, in models.NotificationInput) {
	if s.notifications == nil {
		return
	}
	if _, err := s.notifications.Add(ctx, in); err != nil {
		middleware.Logger.WarnContext(ctx, "confirmation not recorded", slog.String("error", err.Error()))
	}
}
