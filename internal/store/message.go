package store

import (
	"context"
	"database/sql"
	"time"
)

func (s *Store) MessageByID(ctx context.Context, id string) (*Message, error) {
	var m Message
	err := s.db.QueryRowContext(ctx, `
		SELECT id, text, user_id, created_at
		FROM messages
		WHERE id = $1
	`, id).Scan(&m.ID, &m.Text, &m.UserID, &m.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, formatError(err)
	}
	return &m, nil
}

// Messages returns up to limit messages older than the cursor, newest first,
// and whether more remain past the returned page.
func (s *Store) Messages(ctx context.Context, before *time.Time, limit int) ([]*Message, bool, error) {
	if limit <= 0 {
		limit = 100
	}

	// Fetch one extra row to learn whether a next page exists.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, user_id, created_at
		FROM messages
		WHERE $1::timestamptz IS NULL OR created_at < $1
		ORDER BY created_at DESC
		LIMIT $2
	`, before, limit+1)
	if err != nil {
		return nil, false, formatError(err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Text, &m.UserID, &m.CreatedAt); err != nil {
			return nil, false, err
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	hasNext := len(messages) > limit
	if hasNext {
		messages = messages[:limit]
	}
	return messages, hasNext, nil
}

func (s *Store) MessagesByUser(ctx context.Context, userID string) ([]*Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, user_id, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, formatError(err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Text, &m.UserID, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

func (s *Store) CreateMessage(ctx context.Context, userID, text string) (*Message, error) {
	var m Message
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (text, user_id)
		VALUES ($1, $2)
		RETURNING id, text, user_id, created_at
	`, text, userID).Scan(&m.ID, &m.Text, &m.UserID, &m.CreatedAt)

	if err != nil {
		return nil, formatError(err)
	}
	return &m, nil
}

// DeleteMessage removes a message and reports whether a row was deleted.
func (s *Store) DeleteMessage(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM messages
		WHERE id = $1
	`, id)
	if err != nil {
		return false, formatError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
