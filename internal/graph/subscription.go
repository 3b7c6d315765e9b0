package graph

import (
	"context"
)

// MessageCreated streams every new message for as long as the connection
// lives. The transport's context carries no identity and no loaders; the
// stream is anonymous-only.
func (r *Resolver) MessageCreated(ctx context.Context) (<-chan *MessageCreatedResolver, error) {
	events, err := r.broker.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan *MessageCreatedResolver)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-events:
				if !ok {
					return
				}
				select {
				case out <- &MessageCreatedResolver{root: r, m: m}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
