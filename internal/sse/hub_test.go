package sse

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		require.True(t, ok, "client channel closed")
		var ev struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg, &ev))
		return Event{Type: ev.Type, Data: ev.Data}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub, _ := startHub(t)
	client := NewClient(uuid.New())

	hub.Register(client)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-client.Send
	assert.False(t, ok)
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub, _ := startHub(t)
	a, b := NewClient(uuid.New()), NewClient(uuid.New())
	hub.Register(a)
	hub.Register(b)

	admin := uuid.New()
	sweet := &models.Sweet{ID: uuid.New(), Name: "Gummy Bear", Category: "gummy", Price: 3.5, Quantity: 0, Version: 2}
	hub.SweetUpdated(sweet, admin)

	for _, c := range []*Client{a, b} {
		ev := receive(t, c)
		assert.Equal(t, EventSweetUpdated, ev.Type)

		var data SweetChangedData
		require.NoError(t, json.Unmarshal(ev.Data.(json.RawMessage), &data))
		assert.Equal(t, sweet.ID, data.SweetID)
		assert.Equal(t, 0, data.Quantity)
		assert.Equal(t, admin, data.By)
	}
}

func TestHub_DeletedEvent(t *testing.T) {
	hub, _ := startHub(t)
	c := NewClient(uuid.New())
	hub.Register(c)

	id := uuid.New()
	hub.SweetDeleted(id, uuid.New())

	ev := receive(t, c)
	assert.Equal(t, EventSweetDeleted, ev.Type)
	assert.Contains(t, string(ev.Data.(json.RawMessage)), id.String())
}

func TestHub_FullClientDoesNotBlockOthers(t *testing.T) {
	hub, _ := startHub(t)
	slow := &Client{ID: "slow", Send: make(chan []byte)}
	fast := NewClient(uuid.New())
	hub.Register(slow)
	hub.Register(fast)

	hub.SweetCreated(&models.Sweet{ID: uuid.New(), Name: "Toffee"}, uuid.New())

	assert.Equal(t, EventSweetCreated, receive(t, fast).Type)
}

func TestHub_StopClosesClientsAndIgnoresLateCalls(t *testing.T) {
	hub, cancel := startHub(t)
	c := NewClient(uuid.New())
	hub.Register(c)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client not closed on shutdown")
	}

	late := NewClient(uuid.New())
	hub.Register(late)
	hub.Unregister(c)
	hub.SweetDeleted(uuid.New(), uuid.New())

	_, ok := <-late.Send
	assert.False(t, ok)
}
