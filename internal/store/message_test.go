package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesPagination(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now()

	// limit 2 fetches 3 rows: the extra row only signals a next page.
	rows := sqlmock.NewRows(messageColumns())
	messageRow(rows, "m1", "third", "u1", now)
	messageRow(rows, "m2", "second", "u1", now.Add(-time.Minute))
	messageRow(rows, "m3", "first", "u2", now.Add(-2*time.Minute))
	mock.ExpectQuery("SELECT id, text, user_id, created_at").WillReturnRows(rows)

	messages, hasNext, err := st.Messages(context.Background(), nil, 2)
	require.NoError(t, err)

	assert.True(t, hasNext)
	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "m2", messages[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessagesLastPage(t *testing.T) {
	st, mock := newMockStore(t)

	rows := sqlmock.NewRows(messageColumns())
	messageRow(rows, "m1", "only", "u1", time.Now())
	mock.ExpectQuery("SELECT id, text, user_id, created_at").WillReturnRows(rows)

	messages, hasNext, err := st.Messages(context.Background(), nil, 5)
	require.NoError(t, err)

	assert.False(t, hasNext)
	assert.Len(t, messages, 1)
}

func TestDeleteMessage(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM messages").
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := st.DeleteMessage(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteMessageMissing(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM messages").
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := st.DeleteMessage(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCreateMessage(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows(messageColumns())
	messageRow(rows, "m1", "hello", "u1", now)
	mock.ExpectQuery("INSERT INTO messages").
		WithArgs("hello", "u1").
		WillReturnRows(rows)

	m, err := st.CreateMessage(context.Background(), "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "u1", m.UserID)
}
