package gqlctx

import (
	"msgboard/internal/loader"
	"msgboard/internal/store"
)

// Loaders bundles the batching caches attached to one request context.
type Loaders struct {
	// Users deduplicates user-by-id lookups within one operation's resolver
	// tree (every Message.user field goes through it).
	Users *loader.Loader[string, *store.User]
}

// NewLoaders builds a fresh set of caches. Called once per request context;
// the loaders are lazy and touch the store only when a resolver loads a key.
func NewLoaders(st *store.Store) *Loaders {
	return &Loaders{
		Users: loader.New(st.UsersByIDs),
	}
}
