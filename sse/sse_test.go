package sse

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trywilco/secure-info-concierge/models"
)

func record(username string) models.QueryRecord {
	return models.QueryRecord{
		ID:       uuid.New(),
		Username: username,
		Query:    "what's my balance",
		Intent:   models.IntentAccountBalance,
	}
}

func TestSubscriberReceivesBroadcast(t *testing.T) {
	hub := NewHub()
	stream := hub.Subscribe("s1")

	hub.Broadcast(record("johndoe"))

	select {
	case rec := <-stream.Events:
		assert.Equal(t, "johndoe", rec.Username)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe("s1")
	second := hub.Subscribe("s2")

	hub.Broadcast(record("janedoe"))

	require.Len(t, first.Events, 1)
	require.Len(t, second.Events, 1)
}

func TestUnsubscribeClosesDoneAndStopsDelivery(t *testing.T) {
	hub := NewHub()
	stream := hub.Subscribe("s1")

	hub.Unsubscribe("s1")

	select {
	case <-stream.Done:
	case <-time.After(time.Second):
		t.Fatal("Done not closed on unsubscribe")
	}

	hub.Broadcast(record("johndoe"))
	assert.Empty(t, stream.Events)
}

func TestUnsubscribeUnknownIDIsHarmless(t *testing.T) {
	hub := NewHub()
	hub.Unsubscribe("never-subscribed")
}

func TestLaggingSubscriberSkipsEventsWithoutBlocking(t *testing.T) {
	hub := NewHub()
	stream := hub.Subscribe("slow")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < streamBuffer+5; i++ {
			hub.Broadcast(record("johndoe"))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a lagging subscriber")
	}
	assert.Len(t, stream.Events, streamBuffer)
}
