package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgboard/internal/store"
)

func TestMemoryPublishReachesSubscribers(t *testing.T) {
	b := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := b.Subscribe(ctx)
	require.NoError(t, err)
	second, err := b.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, &store.Message{ID: "m1", Text: "hello"}))

	for _, ch := range []<-chan *store.Message{first, second} {
		select {
		case m := <-ch:
			assert.Equal(t, "m1", m.ID)
		case <-time.After(time.Second):
			t.Fatal("no event delivered")
		}
	}
}

func TestMemorySubscribeClosesOnCancel(t *testing.T) {
	b := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := b.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Publishing after the subscriber left must not fail or block.
	require.NoError(t, b.Publish(context.Background(), &store.Message{ID: "m2"}))
}

func TestMemoryPublishNeverBlocks(t *testing.T) {
	b := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := b.Subscribe(ctx)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Overflow the subscriber buffer without anyone draining it.
		for i := 0; i < subscriberBuffer*2; i++ {
			_ = b.Publish(ctx, &store.Message{ID: "m"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}
}
