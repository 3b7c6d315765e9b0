package db

import (
	"context"
	"database/sql"
)

// DB is the shared store handle. It embeds *sql.DB so store code can use the
// database/sql API directly.
type DB struct {
	*sql.DB
}

const dropSchema = `
DROP TABLE IF EXISTS messages;
DROP TABLE IF EXISTS users;
`

const schema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    username text NOT NULL,
    email text NOT NULL,
    password_hash text NOT NULL,
    role text NOT NULL DEFAULT 'user',
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_unique
ON users (LOWER(username));

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));

CREATE TABLE IF NOT EXISTS messages (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    text text NOT NULL CHECK (text <> ''),
    user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS messages_user_id_idx
ON messages (user_id);

CREATE INDEX IF NOT EXISTS messages_created_at_idx
ON messages (created_at DESC);
`

// Sync creates the schema. With force set it drops the tables first, which
// is what keeps the non-idempotent seed routine from duplicating rows across
// boots of a disposable database.
func Sync(ctx context.Context, db *DB, force bool) error {
	if force {
		if _, err := db.ExecContext(ctx, dropSchema); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}
