package watch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannerdj/wokelens/internal/domain"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	mr := miniredis.RunT(t)
	hub, err := NewHub(&HubConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = hub.Close() })
	return hub
}

func TestNewHub_RequiresAddr(t *testing.T) {
	_, err := NewHub(&HubConfig{})
	assert.Error(t, err)
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := newTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, stop := hub.Subscribe(ctx, "photo-1")
	defer stop()

	want := Event{
		PhotoID:     "photo-1",
		Status:      domain.PhotoStatusDone,
		Description: "a quilt on a fence",
	}

	// Redis pub/sub subscriptions register asynchronously; retry until the
	// subscriber is attached.
	deadline := time.After(2 * time.Second)
	for {
		require.NoError(t, hub.Publish(ctx, want))
		select {
		case got := <-events:
			assert.Equal(t, want, got)
			return
		case <-deadline:
			t.Fatal("subscriber never received the published event")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestHub_SubscriberScopedToPhoto(t *testing.T) {
	hub := newTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, stop := hub.Subscribe(ctx, "photo-a")
	defer stop()

	// Give the subscription time to attach, then publish to a different
	// photo's channel.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, hub.Publish(ctx, Event{
		PhotoID: "photo-b",
		Status:  domain.PhotoStatusError,
		Error:   "Failed to download image",
	}))

	select {
	case event := <-events:
		t.Fatalf("received event for another photo: %+v", event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_SubscribeClosesOnCancel(t *testing.T) {
	hub := newTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, stop := hub.Subscribe(ctx, "photo-1")
	defer stop()

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should be closed, not deliver events")
	case <-time.After(2 * time.Second):
		t.Fatal("event channel was not closed after cancellation")
	}
}
