package graph

import (
	"context"
	"errors"

	graphql "github.com/graph-gophers/graphql-go"

	"msgboard/internal/logger"
	"msgboard/internal/store"
)

func (r *Resolver) SignUp(ctx context.Context, args struct {
	Username string
	Email    string
	Password string
}) (*TokenResolver, error) {
	user, err := r.store.CreateUser(ctx, args.Username, args.Email, args.Password, "")
	if err != nil {
		return nil, err
	}

	token, err := r.codec.Sign(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &TokenResolver{token: token}, nil
}

func (r *Resolver) SignIn(ctx context.Context, args struct {
	Login    string
	Password string
}) (*TokenResolver, error) {
	user, err := r.store.UserByLogin(ctx, args.Login)
	if err != nil {
		// Same answer for unknown login and bad password.
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, store.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := store.VerifyPassword(user.PasswordHash, args.Password); err != nil {
		return nil, err
	}

	token, err := r.codec.Sign(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &TokenResolver{token: token}, nil
}

func (r *Resolver) CreateMessage(ctx context.Context, args struct{ Text string }) (*MessageResolver, error) {
	v := viewer(ctx)
	if v == nil {
		return nil, ErrUnauthenticated
	}

	m, err := r.store.CreateMessage(ctx, v.UserID, args.Text)
	if err != nil {
		return nil, err
	}

	if err := r.broker.Publish(ctx, m); err != nil {
		// The mutation already committed; subscribers just miss this one.
		logger.Warn("publish message event failed", map[string]any{
			"message_id": m.ID,
			"error":      err.Error(),
		})
	}

	return &MessageResolver{root: r, m: m}, nil
}

func (r *Resolver) DeleteMessage(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	v := viewer(ctx)
	if v == nil {
		return false, ErrUnauthenticated
	}
	if v.Role != "admin" {
		return false, ErrForbidden
	}

	return r.store.DeleteMessage(ctx, string(args.ID))
}
