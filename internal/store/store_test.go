package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"msgboard/internal/db"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	return New(&db.DB{DB: sqlDB}), mock
}

func userColumns() []string {
	return []string{"id", "username", "email", "password_hash", "role", "created_at"}
}

func messageColumns() []string {
	return []string{"id", "text", "user_id", "created_at"}
}

func messageRow(rows *sqlmock.Rows, id, text, userID string, at time.Time) *sqlmock.Rows {
	return rows.AddRow(id, text, userID, at)
}
