package service

import (
	"context"
	"testing"

	"nexcos/internal/models"
	"nexcos/internal/realtime"
	"nexcos/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertService(t *testing.T) {
	t.Parallel()
	svc := NewAlertService(store.NewAlertStore(nil, store.WithIDGenerator(store.NewSequenceIDs("a-"))), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, models.AlertInput{Type: "panic", Title: "x", Sender: "y"})
	assert.Equal(t, models.CodeInvalidInput, models.ErrorCode(err))

	first, err := svc.Add(ctx, models.AlertInput{Type: models.AlertTypePrep, Title: "Storm", Sender: "Ops"})
	require.NoError(t, err)
	second, err := svc.Add(ctx, models.AlertInput{Type: models.AlertTypeHelp, Title: "Sandbags", Sender: "Ana"})
	require.NoError(t, err)

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, second.ID, latest.ID)

	v, ok := svc.Verify(ctx, first.ID)
	require.True(t, ok)
	assert.True(t, v.Verified)
	_, ok = svc.Verify(ctx, "missing")
	assert.False(t, ok)

	assert.True(t, svc.Remove(ctx, first.ID))
	assert.False(t, svc.Remove(ctx, first.ID))
	assert.Len(t, svc.List(), 1)
}

func TestChatService_Groups(t *testing.T) {
	t.Parallel()
	svc := NewChatService(store.NewChatStore([]models.ChatGroup{{ID: "g1", Name: "Lobby"}}), nil)
	ctx := context.Background()

	_, err := svc.AddGroup(ctx, models.ChatGroup{ID: "g1", Name: "Again"})
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))

	_, err = svc.AddGroup(ctx, models.ChatGroup{ID: "g2"})
	assert.Equal(t, models.CodeInvalidInput, models.ErrorCode(err))

	g, err := svc.AddGroup(ctx, models.ChatGroup{ID: "g2", Name: "Garden"})
	require.NoError(t, err)
	assert.NotNil(t, g.Members)
	assert.Len(t, svc.Groups(), 2)
}

func TestChatService_PostDeliversToHub(t *testing.T) {
	t.Parallel()
	notifier := realtime.NewNotifier(nil)
	hub := realtime.NewChatHub()
	require.NoError(t, hub.StartWiring(context.Background(), notifier))

	svc := NewChatService(store.NewChatStore(nil, store.WithIDGenerator(store.NewSequenceIDs("m-"))), notifier)
	ctx := context.Background()

	_, err := svc.Post(ctx, "g1", models.MessageInput{Sender: "Ana"})
	assert.Equal(t, models.CodeInvalidInput, models.ErrorCode(err))

	m1, err := svc.Post(ctx, "g1", models.MessageInput{Content: "hi", Sender: "Ana"})
	require.NoError(t, err)
	_, err = svc.Post(ctx, "g2", models.MessageInput{Content: "elsewhere", Sender: "Bo"})
	require.NoError(t, err)
	m3, err := svc.Post(ctx, "g1", models.MessageInput{Content: "again", Sender: "Bo"})
	require.NoError(t, err)

	msgs := svc.Messages("g1")
	require.Len(t, msgs, 2)
	assert.Equal(t, m1.ID, msgs[0].ID)
	assert.Equal(t, m3.ID, msgs[1].ID)
	assert.Empty(t, svc.Messages("unknown"))

	_, ok := svc.Active()
	assert.False(t, ok)
	svc.SetActive("g1")
	active, ok := svc.Active()
	assert.True(t, ok)
	assert.Equal(t, "g1", active)
}

func TestNotificationService(t *testing.T) {
	t.Parallel()
	svc := NewNotificationService(store.NewNotificationStore(nil, models.NotificationSettings{Email: true}), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, models.NotificationInput{Title: "t", Message: "m", Type: "loud"})
	assert.Equal(t, models.CodeInvalidInput, models.ErrorCode(err))

	a, err := svc.Add(ctx, models.NotificationInput{Title: "t1", Message: "m", Type: models.NotificationTypeInfo})
	require.NoError(t, err)
	_, err = svc.Add(ctx, models.NotificationInput{Title: "t2", Message: "m", Type: models.NotificationTypeWarning})
	require.NoError(t, err)
	assert.Equal(t, 2, svc.List().UnreadCount)

	assert.True(t, svc.MarkAsRead(ctx, a.ID))
	assert.Equal(t, 1, svc.List().UnreadCount)
	assert.False(t, svc.MarkAsRead(ctx, "missing"))

	svc.MarkAllAsRead(ctx)
	svc.MarkAllAsRead(ctx)
	assert.Equal(t, 0, svc.List().UnreadCount)

	assert.True(t, svc.Remove(ctx, a.ID))
	assert.Len(t, svc.List().Notifications, 1)

	settings := svc.UpdateSettings(ctx, models.NotificationSettingsPatch{Push: ptr(true)})
	assert.True(t, settings.Email)
	assert.True(t, settings.Push)
	assert.False(t, settings.Sound)
}

func TestThemeService_Toggle(t *testing.T) {
	t.Parallel()
	svc := NewThemeService(store.NewThemeStore(models.ThemeState{}))
	assert.True(t, svc.Toggle(context.Background()).IsDarkMode)
	assert.False(t, svc.Toggle(context.Background()).IsDarkMode)
	assert.False(t, svc.State().IsDarkMode)
}
