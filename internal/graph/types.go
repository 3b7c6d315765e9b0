package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"msgboard/internal/store"
)

type TokenResolver struct {
	token string
}

func (t *TokenResolver) Token() string { return t.token }

type UserResolver struct {
	root *Resolver
	u    *store.User
}

func (r *UserResolver) ID() graphql.ID   { return graphql.ID(r.u.ID) }
func (r *UserResolver) Username() string { return r.u.Username }
func (r *UserResolver) Email() string    { return r.u.Email }

func (r *UserResolver) Role() *string {
	if r.u.Role == "" {
		return nil
	}
	role := r.u.Role
	return &role
}

func (r *UserResolver) Messages(ctx context.Context) ([]*MessageResolver, error) {
	messages, err := r.root.store.MessagesByUser(ctx, r.u.ID)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*MessageResolver, 0, len(messages))
	for _, m := range messages {
		resolvers = append(resolvers, &MessageResolver{root: r.root, m: m})
	}
	return resolvers, nil
}

type MessageResolver struct {
	root *Resolver
	m    *store.Message
}

func (r *MessageResolver) ID() graphql.ID { return graphql.ID(r.m.ID) }
func (r *MessageResolver) Text() string   { return r.m.Text }

func (r *MessageResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.m.CreatedAt}
}

func (r *MessageResolver) User(ctx context.Context) (*UserResolver, error) {
	user, err := r.root.loadUser(ctx, r.m.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, store.ErrUserNotFound
	}
	return &UserResolver{root: r.root, u: user}, nil
}

type MessageConnectionResolver struct {
	root     *Resolver
	messages []*store.Message
	hasNext  bool
}

func (r *MessageConnectionResolver) Edges() []*MessageResolver {
	edges := make([]*MessageResolver, 0, len(r.messages))
	for _, m := range r.messages {
		edges = append(edges, &MessageResolver{root: r.root, m: m})
	}
	return edges
}

func (r *MessageConnectionResolver) PageInfo() *PageInfoResolver {
	var end *string
	if len(r.messages) > 0 {
		cursor := encodeCursor(r.messages[len(r.messages)-1].CreatedAt)
		end = &cursor
	}
	return &PageInfoResolver{hasNext: r.hasNext, endCursor: end}
}

type PageInfoResolver struct {
	hasNext   bool
	endCursor *string
}

func (r *PageInfoResolver) HasNextPage() bool  { return r.hasNext }
func (r *PageInfoResolver) EndCursor() *string { return r.endCursor }

type MessageCreatedResolver struct {
	root *Resolver
	m    *store.Message
}

func (r *MessageCreatedResolver) Message() *MessageResolver {
	return &MessageResolver{root: r.root, m: r.m}
}
