package livefeed

import (
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	recipient := snowflake.ID(42)

	sub, backlog, err := hub.Subscribe(recipient)
	assert.NoError(t, err)
	assert.Empty(t, backlog)
	defer sub.Close()

	hub.Publish(recipient, Event{ID: "1", Type: "new_bid", Title: "hello"})

	select {
	case event := <-sub.Events():
		assert.Equal(t, "1", event.ID)
		assert.Equal(t, "new_bid", event.Type)
	case <-time.After(time.Second):
		t.Fatal("expected event")
	}
}

func TestPublishIsScopedToRecipient(t *testing.T) {
	hub := NewHub()

	sub, _, err := hub.Subscribe(snowflake.ID(1))
	assert.NoError(t, err)
	defer sub.Close()

	hub.Publish(snowflake.ID(2), Event{ID: "other"})

	select {
	case event := <-sub.Events():
		t.Fatalf("unexpected event %q for another recipient", event.ID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBacklogReplayIsBounded(t *testing.T) {
	hub := NewHub()
	recipient := snowflake.ID(7)

	// The hub only buffers for recipients with at least one live feed.
	first, _, err := hub.Subscribe(recipient)
	assert.NoError(t, err)
	defer first.Close()

	for i := 0; i < DefaultBufferSize+10; i++ {
		hub.Publish(recipient, Event{ID: strconv.Itoa(i)})
	}

	sub, backlog, err := hub.Subscribe(recipient)
	assert.NoError(t, err)
	defer sub.Close()

	assert.Len(t, backlog, DefaultBufferSize)
	// Oldest entries are evicted first.
	assert.Equal(t, "10", backlog[0].ID)
	assert.Equal(t, strconv.Itoa(DefaultBufferSize+9), backlog[len(backlog)-1].ID)
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	recipient := snowflake.ID(9)

	sub, _, err := hub.Subscribe(recipient)
	assert.NoError(t, err)
	defer sub.Close()

	// Nobody drains the channel; publishes beyond the subscriber buffer are
	// dropped rather than blocking.
	done := make(chan struct{})
	go func() {
		for i := 0; i < DefaultSubscriberBuffer*3; i++ {
			hub.Publish(recipient, Event{ID: strconv.Itoa(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestSubscribeRejectsZeroRecipient(t *testing.T) {
	hub := NewHub()
	_, _, err := hub.Subscribe(0)
	assert.Error(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub, _, err := hub.Subscribe(snowflake.ID(3))
	assert.NoError(t, err)

	sub.Close()
	sub.Close()

	// Publishing after close must not panic on the removed channel.
	hub.Publish(snowflake.ID(3), Event{ID: "after-close"})
}
