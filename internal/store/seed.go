package store

import (
	"context"
	"fmt"
)

type seedUser struct {
	username string
	email    string
	password string
	role     string
	messages []string
}

// Fixed fixtures for disposable databases: one admin, one regular user.
var seedUsers = []seedUser{
	{
		username: "amelia",
		email:    "amelia@example.com",
		password: "ameliapw",
		role:     "admin",
		messages: []string{
			"Published the road to learning GraphQL",
		},
	},
	{
		username: "noah",
		email:    "noah@example.com",
		password: "noahpw",
		role:     "user",
		messages: []string{
			"Happy to release a complete setup",
			"Published a complete app with authentication",
		},
	},
}

// Seed inserts the fixture users with their messages. It is intentionally
// not idempotent: running it twice against the same database duplicates the
// messages and fails or duplicates the users, so it must only run right
// after a forced schema sync.
func (s *Store) Seed(ctx context.Context) error {
	for _, su := range seedUsers {
		user, err := s.CreateUser(ctx, su.username, su.email, su.password, su.role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.username, err)
		}
		for _, text := range su.messages {
			if _, err := s.CreateMessage(ctx, user.ID, text); err != nil {
				return fmt.Errorf("seed message for %s: %w", su.username, err)
			}
		}
	}
	return nil
}
