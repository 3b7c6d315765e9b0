package pubsub

import (
	"context"
	"encoding/json"

	goredis "github.com/redis/go-redis/v9"

	"msgboard/internal/logger"
	"msgboard/internal/store"
)

const channel = "messages:created"

// Redis is the broker used when REDIS_ADDR is configured, so subscription
// streams survive running more than one server instance.
type Redis struct {
	client *goredis.Client
}

func NewRedis(client *goredis.Client) *Redis {
	return &Redis{client: client}
}

func (b *Redis) Publish(ctx context.Context, m *store.Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channel, payload).Err()
}

func (b *Redis) Subscribe(ctx context.Context) (<-chan *store.Message, error) {
	sub := b.client.Subscribe(ctx, channel)

	// Force the subscription handshake so a dead redis fails here, not
	// silently on the stream.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan *store.Message, subscriberBuffer)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var m store.Message
				if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
					logger.Warn("dropping undecodable event", map[string]any{
						"channel": channel,
						"error":   err.Error(),
					})
					continue
				}
				select {
				case out <- &m:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
