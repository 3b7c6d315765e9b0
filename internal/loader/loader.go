// Package loader provides per-request memoized batch loading. A Loader lives
// exactly as long as the request context that created it; it is never shared
// across requests and never persisted.
package loader

import (
	"context"
	"sync"
)

// BatchFunc fetches values for a set of keys in one round trip. Keys absent
// from the returned map resolve to the zero value.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) (map[K]V, error)

// thunk is one key's pending or settled result. The call that registers a
// thunk owns its fetch; every other call waits on done.
type thunk[V any] struct {
	done chan struct{}
	v    V
	err  error
}

// Loader memoizes key lookups within one request. Two loads of the same key
// return the same value and cause at most one fetch, even when resolvers run
// on concurrent goroutines.
type Loader[K comparable, V any] struct {
	fetch BatchFunc[K, V]

	mu    sync.Mutex
	cache map[K]*thunk[V]
}

func New[K comparable, V any](fetch BatchFunc[K, V]) *Loader[K, V] {
	return &Loader[K, V]{
		fetch: fetch,
		cache: make(map[K]*thunk[V]),
	}
}

// claim returns the thunks for keys, registering new ones for keys not seen
// before. The caller must fetch and settle exactly the missing keys.
func (l *Loader[K, V]) claim(keys []K) (map[K]*thunk[V], []K) {
	l.mu.Lock()
	defer l.mu.Unlock()

	thunks := make(map[K]*thunk[V], len(keys))
	var missing []K
	for _, key := range keys {
		th, ok := l.cache[key]
		if !ok {
			th = &thunk[V]{done: make(chan struct{})}
			l.cache[key] = th
			missing = append(missing, key)
		}
		thunks[key] = th
	}
	return thunks, missing
}

// settle resolves the claimed thunks from one fetch and wakes every waiter.
func settle[K comparable, V any](thunks map[K]*thunk[V], keys []K, values map[K]V, err error) {
	for _, key := range keys {
		th := thunks[key]
		if err != nil {
			th.err = err
		} else {
			th.v = values[key]
		}
		close(th.done)
	}
}

// Load returns the value for key, fetching it on first use only.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	thunks, missing := l.claim([]K{key})
	if len(missing) > 0 {
		values, err := l.fetch(ctx, missing)
		settle(thunks, missing, values, err)
	}

	th := thunks[key]
	<-th.done
	return th.v, th.err
}

// LoadMany resolves several keys: the ones this call registered are fetched
// in a single batch, the rest are waited for wherever they are in flight.
func (l *Loader[K, V]) LoadMany(ctx context.Context, keys []K) (map[K]V, error) {
	thunks, missing := l.claim(keys)
	if len(missing) > 0 {
		values, err := l.fetch(ctx, missing)
		settle(thunks, missing, values, err)
	}

	out := make(map[K]V, len(keys))
	for _, key := range keys {
		th := thunks[key]
		<-th.done
		if th.err != nil {
			return nil, th.err
		}
		out[key] = th.v
	}
	return out, nil
}
