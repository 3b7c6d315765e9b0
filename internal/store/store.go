// Package store owns user and message persistence. Queries are inline SQL
// against postgres; constraint violations surface as ValidationError with
// driver internals stripped.
package store

import (
	"time"

	"msgboard/internal/db"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Admin reports whether the user carries the admin role.
func (u *User) Admin() bool {
	return u.Role == "admin"
}

type Message struct {
	ID        string
	Text      string
	UserID    string
	CreatedAt time.Time
}

type Store struct {
	db *db.DB
}

func New(database *db.DB) *Store {
	return &Store{db: database}
}
