// Package gqlctx builds the per-operation context every GraphQL request
// passes through: token verification, viewer resolution and the per-request
// batching caches.
package gqlctx

import (
	"context"
	"net/http"

	"msgboard/internal/session"
	"msgboard/internal/store"
)

// TokenHeader carries the session token on request-response operations.
const TokenHeader = "x-token"

// RequestContext is the explicit, structured record resolvers receive. It
// lives for exactly one GraphQL operation and is owned by that operation;
// nothing here is shared across requests.
type RequestContext struct {
	Store  *store.Store
	Secret string

	// Viewer is the resolved caller identity, nil for anonymous operations.
	// Resolvers decide whether anonymous access is acceptable.
	Viewer *session.Claims

	// Loaders are the operation's batching caches, constructed fresh per
	// context. Nil on subscription contexts.
	Loaders *Loaders
}

// unexported, collision-proof context key
type requestContextKeyType struct{}

var requestContextKey = requestContextKeyType{}

// From extracts the request context, or nil when the operation was built
// without one (which only subscription transports do for loaders/viewer).
func From(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey).(*RequestContext)
	return rc
}

// WithRequestContext returns ctx carrying rc. Exposed for tests and for the
// SSR layer's in-process execution path.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// Builder constructs operation contexts. One builder serves the whole
// process; the contexts it produces do not outlive their operation. The
// codec is the only holder of the signing secret.
type Builder struct {
	store *store.Store
	codec *session.Codec
}

func NewBuilder(st *store.Store, codec *session.Codec) *Builder {
	return &Builder{store: st, codec: codec}
}

// Build assembles the context for one request-response operation.
//
// No token header: anonymous context, no error. A present token is verified
// before anything else; any failure aborts the operation here, so a resolver
// never runs with a tampered or expired identity. The store is attached as a
// handle only, never queried eagerly.
func (b *Builder) Build(r *http.Request) (*RequestContext, error) {
	rc := &RequestContext{
		Store:   b.store,
		Secret:  b.codec.Secret(),
		Loaders: NewLoaders(b.store),
	}

	token := r.Header.Get(TokenHeader)
	if token == "" {
		return rc, nil
	}

	claims, err := b.codec.Verify(token)
	if err != nil {
		return nil, err
	}

	rc.Viewer = claims
	return rc, nil
}

// BuildSubscription assembles the context for a persistent-connection
// operation: store handle only. The websocket transport does not carry the
// per-request token header, so no identity is resolved and no batching
// caches are attached; subscription resolvers are anonymous-only.
func (b *Builder) BuildSubscription(ctx context.Context, _ *http.Request) (context.Context, error) {
	return WithRequestContext(ctx, &RequestContext{
		Store:  b.store,
		Secret: b.codec.Secret(),
	}), nil
}
