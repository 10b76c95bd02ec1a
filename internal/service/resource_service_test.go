package service

import (
	"context"
	"testing"
	"time"

	"nexcos/internal/models"
	"nexcos/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fixedNow() time.Time { return time.UnixMilli(1_700_000_000_000) }

func newResourceService(t *testing.T) (*ResourceService, *NotificationService) {
	t.Helper()
	resources := store.NewResourceStore([]models.Resource{{
		ID:       "hall",
		Title:    "Community Hall",
		Type:     models.ResourceTypeSpace,
		Location: "Main Building",
		Owner:    "Building Management",
		Status:   models.ResourceStatusAvailable,
		Capacity: ptr(100),
	}}, store.WithIDGenerator(store.NewSequenceIDs("r-")), store.WithClock(fixedNow))
	notifications := NewNotificationService(
		store.NewNotificationStore(nil, models.NotificationSettings{}, store.WithIDGenerator(store.NewSequenceIDs("n-"))),
		nil,
	)
	return NewResourceService(resources, nil, notifications), notifications
}

func TestResourceService_CreateDefaultsToAvailable(t *testing.T) {
	t.Parallel()
	svc, _ := newResourceService(t)

	r, err := svc.Create(context.Background(), models.ResourceInput{
		Title:    "Ladder",
		Type:     models.ResourceTypeTools,
		Location: "Storage",
		Owner:    "Sam",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", r.ID)
	assert.Equal(t, models.ResourceStatusAvailable, r.Status)
	assert.Equal(t, int64(1_700_000_000_000), r.CreatedAt)
	assert.Len(t, svc.List(store.ResourceFilter{}), 2)
}

func TestResourceService_CreateValidation(t *testing.T) {
	t.Parallel()
	svc, _ := newResourceService(t)

	tests := []struct {
		name string
		in   models.ResourceInput
		want string
	}{
		{"missing title", models.ResourceInput{Type: models.ResourceTypeTools, Location: "x", Owner: "y"}, "title is required"},
		{"unknown type", models.ResourceInput{Title: "Boat", Type: "Boats", Location: "x", Owner: "y"}, "type"},
		{"bad status", models.ResourceInput{Title: "t", Type: models.ResourceTypeTools, Location: "x", Owner: "y", Status: "lost"}, "status"},
		{"negative capacity", models.ResourceInput{Title: "t", Type: models.ResourceTypeSpace, Location: "x", Owner: "y", Capacity: ptr(-1)}, "capacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, models.CodeInvalidInput, models.ErrorCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Len(t, svc.List(store.ResourceFilter{}), 1)
}

func TestResourceService_GetMissingIsNotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newResourceService(t)

	_, err := svc.Get("nope")
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	r, err := svc.Get("hall")
	require.NoError(t, err)
	assert.Equal(t, "Community Hall", r.Title)
}

func TestResourceService_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	svc, _ := newResourceService(t)
	ctx := context.Background()

	r, ok, err := svc.Update(ctx, "hall", models.ResourcePatch{Location: ptr("Annex")})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Annex", r.Location)
	assert.Equal(t, "Community Hall", r.Title)

	_, ok, err = svc.Update(ctx, "missing", models.ResourcePatch{Location: ptr("x")})
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.Update(ctx, "hall", models.ResourcePatch{Status: ptr(models.ResourceStatus("lost"))})
	assert.Equal(t, models.CodeInvalidInput, models.ErrorCode(err))

	assert.True(t, svc.Delete(ctx, "hall"))
	assert.False(t, svc.Delete(ctx, "hall"))
}

func TestResourceService_RequestRecordsNotification(t *testing.T) {
	t.Parallel()
	svc, notifications := newResourceService(t)

	r, ok, err := svc.Request(context.Background(), "hall")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.ResourceStatusRequested, r.Status)
	assert.Equal(t, 100, *r.Capacity)

	list := notifications.List()
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "Request Sent", list.Notifications[0].Title)
	assert.Contains(t, list.Notifications[0].Message, "Building Management")
	assert.Equal(t, 1, list.UnreadCount)
}

func TestResourceService_Book(t *testing.T) {
	t.Parallel()
	svc, notifications := newResourceService(t)
	ctx := context.Background()

	_, _, err := svc.Book(ctx, "hall", models.BookingRequest{Date: "2024-05-01"})
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidInput, models.ErrorCode(err))

	r, ok, err := svc.Book(ctx, "hall", models.BookingRequest{
		Date: "2024-05-01", StartTime: "18:00", EndTime: "20:00", Attendees: 30, Purpose: "Book club",
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.ResourceStatusBooked, r.Status)

	n := notifications.List().Notifications[0]
	assert.Equal(t, models.NotificationTypeSuccess, n.Type)
	assert.Contains(t, n.Message, "2024-05-01")
	assert.Contains(t, n.Message, "Attendees: 30")

	_, ok, err = svc.Book(ctx, "missing", models.BookingRequest{Date: "d", StartTime: "s", EndTime: "e"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, notifications.List().Notifications, 1)
}
