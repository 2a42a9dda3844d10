package sse

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishIsScopedToKey(t *testing.T) {
	hub := NewHub()
	alice, cleanupAlice := hub.Subscribe("emp-alice")
	defer cleanupAlice()
	anon, cleanupAnon := hub.Subscribe("")
	defer cleanupAnon()

	hub.Publish("emp-alice", Event{Event: EventTaskAssigned, Data: "t1"})

	require.Len(t, alice, 1)
	got := <-alice
	assert.Equal(t, EventTaskAssigned, got.Event)
	assert.Equal(t, "emp-alice", got.Target)
	assert.Len(t, anon, 0)
}

func TestHub_BroadcastReachesEveryone(t *testing.T) {
	hub := NewHub()
	a, cleanupA := hub.Subscribe("emp-a")
	defer cleanupA()
	b, cleanupB := hub.Subscribe("")
	defer cleanupB()

	hub.Broadcast(Event{Target: "ignored", Event: EventDayChanged, Data: "2024-07-16"})

	assert.Equal(t, EventDayChanged, (<-a).Event)
	got := <-b
	assert.Equal(t, "", got.Target)
	assert.Equal(t, "2024-07-16", got.Data)
}

func TestHub_FullChannelDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("emp-a")
	defer cleanup()

	for i := 0; i < 25; i++ {
		hub.Publish("emp-a", Event{Event: EventPing})
	}
	assert.Len(t, ch, 10)
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("emp-a")
	_, cleanup2 := hub.Subscribe("emp-a")
	assert.Equal(t, 2, hub.SubscriberCount("emp-a"))
	assert.Equal(t, 2, hub.TotalSubscribers())

	cleanup()
	cleanup()
	assert.Equal(t, 1, hub.SubscriberCount("emp-a"))

	cleanup2()
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHub_ConcurrentPublishAndSubscribe(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, cleanup := hub.Subscribe("emp-a")
			cleanup()
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast(Event{Event: EventPing})
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, hub.TotalSubscribers())
}
