package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesEverySubscriberOfMember(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("m1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("m1")
	defer cleanup2()
	other, cleanupOther := hub.Subscribe("m2")
	defer cleanupOther()

	hub.Publish("m1", Event{RecipientID: "m1", Event: "notification"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, "notification", event.Event)
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}
	select {
	case <-other:
		t.Fatal("event leaked to another member's stream")
	default:
	}
}

func TestHub_CleanupRemovesSubscription(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	_, cleanup1 := hub.Subscribe("m1")
	ch2, cleanup2 := hub.Subscribe("m1")
	require.Equal(t, 2, hub.SubscriberCount("m1"))

	cleanup1()
	assert.Equal(t, 1, hub.SubscriberCount("m1"))

	// Remaining subscriber still receives events
	hub.Publish("m1", Event{RecipientID: "m1", Event: "notification"})
	select {
	case <-ch2:
	default:
		t.Fatal("surviving subscriber did not receive the event")
	}

	cleanup2()
	assert.Equal(t, 0, hub.SubscriberCount("m1"))
}

func TestHub_PublishNeverBlocksOnFullBuffer(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	_, cleanup := hub.Subscribe("m1")
	defer cleanup()

	// The channel buffers 10 events; the extras are dropped, not deadlocked.
	for i := 0; i < 25; i++ {
		hub.Publish("m1", Event{RecipientID: "m1", Event: "notification"})
	}
	assert.Equal(t, 1, hub.SubscriberCount("m1"))
}

func TestHub_PublishToUnknownMemberIsNoOp(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	hub.Publish("nobody", Event{RecipientID: "nobody", Event: "notification"})
	assert.Equal(t, 0, hub.SubscriberCount("nobody"))
}
