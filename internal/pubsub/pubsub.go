// Package pubsub fans message-created events out to subscription streams.
package pubsub

import (
	"context"
	"sync"

	"msgboard/internal/store"
)

// Broker publishes new messages and hands subscribers a stream of them.
// Implementations must never block a publisher on a slow subscriber.
type Broker interface {
	Publish(ctx context.Context, m *store.Message) error
	// Subscribe returns a channel that closes when ctx is cancelled.
	Subscribe(ctx context.Context) (<-chan *store.Message, error)
}

const subscriberBuffer = 16

// Memory is the in-process broker used when no redis address is configured.
type Memory struct {
	mu   sync.Mutex
	subs map[chan *store.Message]struct{}
}

func NewMemory() *Memory {
	return &Memory{subs: make(map[chan *store.Message]struct{})}
}

func (b *Memory) Publish(_ context.Context, m *store.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- m:
		default:
			// Drop for this subscriber rather than stall the mutation.
		}
	}
	return nil
}

func (b *Memory) Subscribe(ctx context.Context) (<-chan *store.Message, error) {
	ch := make(chan *store.Message, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}
