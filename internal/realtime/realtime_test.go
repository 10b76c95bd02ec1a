package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"nexcos/internal/models"
	"nexcos/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *ChatHub, groupID string) *Client {
	c := &Client{hub: h, Send: make(chan []byte, 4), GroupID: groupID}
	h.add(c)
	return c
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.Send:
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return Event{}
	}
}

func TestGroupChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "nexcos:chat:group:g1", GroupChannel("g1"))

	id, ok := GroupIDFromChannel("nexcos:chat:group:g2")
	assert.True(t, ok)
	assert.Equal(t, "g2", id)

	_, ok = GroupIDFromChannel("nexcos:alerts")
	assert.False(t, ok)
	_, ok = GroupIDFromChannel("nexcos:chat:group:")
	assert.False(t, ok)
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	t.Parallel()
	n := NewNotifier(nil)
	ctx := context.Background()

	assert.False(t, n.Enabled())
	assert.NoError(t, n.PublishAlert(ctx, EventCreated, models.Alert{ID: "1"}))
	assert.NoError(t, n.PublishNotification(ctx, EventRead, map[string]string{"id": "1"}))
	assert.NoError(t, n.PublishResource(ctx, EventDeleted, map[string]string{"id": "1"}))
	assert.NoError(t, n.PublishChatMessage(ctx, models.Message{GroupID: "g1"}))
	assert.NoError(t, n.StartChatSubscriber(ctx, func(string, string) {}))

	var nilNotifier *Notifier
	assert.NoError(t, nilNotifier.PublishChatMessage(ctx, models.Message{GroupID: "g1"}))
}

func TestChatHub_BroadcastOnlyToGroup(t *testing.T) {
	t.Parallel()
	h := NewChatHub()
	inGroup := newTestClient(h, "g1")
	other := newTestClient(h, "g2")

	ev, err := NewEvent(EventMessage, models.Message{ID: "m1", GroupID: "g1", Content: "hi"})
	require.NoError(t, err)
	h.BroadcastToGroup("g1", ev)

	got := receive(t, inGroup)
	assert.Equal(t, EventMessage, got.Type)
	select {
	case <-other.Send:
		t.Fatal("message leaked to another group")
	default:
	}
}

func TestChatHub_UnregisterIsIdempotent(t *testing.T) {
	t.Parallel()
	h := NewChatHub()
	c := newTestClient(h, "g1")
	assert.Equal(t, 1, h.ClientCount("g1"))

	h.Unregister(c)
	h.Unregister(c)
	assert.Equal(t, 0, h.ClientCount("g1"))

	_, open := <-c.Send
	assert.False(t, open)
	// Sending to a closed client must not panic.
	c.TrySend([]byte("late"))
}

// Runs serially so the process-wide gauge is not shared with other tests.
func TestChatHub_ConnectionGaugeReturnsToZero(t *testing.T) {
	h := NewChatHub()
	before := testutil.ToFloat64(observability.WebSocketConnections)

	clients := make([]*Client, 0, 200)
	for i := 0; i < 200; i++ {
		clients = append(clients, newTestClient(h, fmt.Sprintf("made-up-%d", i)))
	}
	assert.Equal(t, before+200, testutil.ToFloat64(observability.WebSocketConnections))

	for _, c := range clients {
		h.Unregister(c)
	}
	assert.Equal(t, before, testutil.ToFloat64(observability.WebSocketConnections))
	assert.Equal(t, 1, testutil.CollectAndCount(observability.WebSocketConnections))

	newTestClient(h, "building-a")
	require.NoError(t, h.Shutdown(context.Background()))
	assert.Equal(t, before, testutil.ToFloat64(observability.WebSocketConnections))
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	t.Parallel()
	h := NewChatHub()
	c := &Client{hub: h, Send: make(chan []byte, 1), GroupID: "g1"}

	c.TrySend([]byte("first"))
	c.TrySend([]byte("second"))

	assert.Equal(t, "first", string(<-c.Send))
	select {
	case extra := <-c.Send:
		t.Fatalf("unexpected frame %q", extra)
	default:
	}
}

func TestChatHub_LocalWiringWithoutRedis(t *testing.T) {
	t.Parallel()
	h := NewChatHub()
	n := NewNotifier(nil)
	require.NoError(t, h.StartWiring(context.Background(), n))

	c := newTestClient(h, "g1")
	require.NoError(t, n.PublishChatMessage(context.Background(), models.Message{ID: "m1", GroupID: "g1", Content: "hello"}))

	got := receive(t, c)
	var msg models.Message
	require.NoError(t, json.Unmarshal(got.Payload, &msg))
	assert.Equal(t, "hello", msg.Content)
}

func TestChatHub_RedisWiring(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	h := NewChatHub()
	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.StartWiring(ctx, n))

	c := newTestClient(h, "g7")
	require.NoError(t, n.PublishChatMessage(ctx, models.Message{ID: "m9", GroupID: "g7", Content: "over redis"}))

	got := receive(t, c)
	assert.Equal(t, EventMessage, got.Type)
	var msg models.Message
	require.NoError(t, json.Unmarshal(got.Payload, &msg))
	assert.Equal(t, "m9", msg.ID)
}

func TestNotifier_PublishesEnvelope(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, AlertsChannel)
	defer func() { _ = sub.Close() }()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	n := NewNotifier(rdb)
	require.NoError(t, n.PublishAlert(ctx, EventVerified, models.Alert{ID: "a1", Verified: true}))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	assert.Equal(t, EventVerified, ev.Type)
	assert.Contains(t, string(ev.Payload), `"a1"`)
}
