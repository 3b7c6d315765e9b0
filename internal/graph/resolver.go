package graph

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"msgboard/internal/gqlctx"
	"msgboard/internal/pubsub"
	"msgboard/internal/session"
	"msgboard/internal/store"
)

var (
	ErrUnauthenticated = errors.New("not authenticated as user")
	ErrForbidden       = errors.New("not authorized as admin")
)

// Resolver is the root resolver and the dependency container for the whole
// graph. Per-operation state (viewer, loaders) never lives here; it comes
// from the request context.
type Resolver struct {
	store  *store.Store
	codec  *session.Codec
	broker pubsub.Broker
}

func NewResolver(st *store.Store, codec *session.Codec, broker pubsub.Broker) *Resolver {
	return &Resolver{store: st, codec: codec, broker: broker}
}

// viewer returns the operation's resolved identity, nil when anonymous.
func viewer(ctx context.Context) *session.Claims {
	if rc := gqlctx.From(ctx); rc != nil {
		return rc.Viewer
	}
	return nil
}

func (r *Resolver) Me(ctx context.Context) (*UserResolver, error) {
	v := viewer(ctx)
	if v == nil {
		return nil, nil
	}

	user, err := r.loadUser(ctx, v.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &UserResolver{root: r, u: user}, nil
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*UserResolver, error) {
	user, err := r.loadUser(ctx, string(args.ID))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &UserResolver{root: r, u: user}, nil
}

func (r *Resolver) Users(ctx context.Context) ([]*UserResolver, error) {
	users, err := r.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*UserResolver, 0, len(users))
	for _, u := range users {
		resolvers = append(resolvers, &UserResolver{root: r, u: u})
	}
	return resolvers, nil
}

func (r *Resolver) Message(ctx context.Context, args struct{ ID graphql.ID }) (*MessageResolver, error) {
	m, err := r.store.MessageByID(ctx, string(args.ID))
	if err != nil {
		if errors.Is(err, store.ErrMessageNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &MessageResolver{root: r, m: m}, nil
}

func (r *Resolver) Messages(ctx context.Context, args struct {
	Cursor *string
	Limit  *int32
}) (*MessageConnectionResolver, error) {
	limit := 100
	if args.Limit != nil {
		limit = int(*args.Limit)
	}

	var before *time.Time
	if args.Cursor != nil {
		t, err := decodeCursor(*args.Cursor)
		if err != nil {
			return nil, err
		}
		before = &t
	}

	messages, hasNext, err := r.store.Messages(ctx, before, limit)
	if err != nil {
		return nil, err
	}

	// Warm the author cache in one batch so each edge's user field resolves
	// without its own round trip.
	if rc := gqlctx.From(ctx); rc != nil && rc.Loaders != nil && len(messages) > 0 {
		ids := make([]string, 0, len(messages))
		for _, m := range messages {
			ids = append(ids, m.UserID)
		}
		if _, err := rc.Loaders.Users.LoadMany(ctx, ids); err != nil {
			return nil, err
		}
	}

	return &MessageConnectionResolver{root: r, messages: messages, hasNext: hasNext}, nil
}

// loadUser goes through the request's user loader when one is attached
// (request-response operations) and falls back to a direct lookup otherwise
// (subscription contexts carry no loaders).
func (r *Resolver) loadUser(ctx context.Context, id string) (*store.User, error) {
	if rc := gqlctx.From(ctx); rc != nil && rc.Loaders != nil {
		return rc.Loaders.Users.Load(ctx, id)
	}
	return r.store.UserByID(ctx, id)
}

func encodeCursor(t time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(t.Format(time.RFC3339Nano)))
}

func decodeCursor(cursor string) (time.Time, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, errors.New("invalid cursor")
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, errors.New("invalid cursor")
	}
	return t, nil
}
