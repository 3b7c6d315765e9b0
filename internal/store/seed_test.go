package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectSeedRound(mock sqlmock.Sqlmock) {
	now := time.Now()
	for i, su := range seedUsers {
		userID := fmt.Sprintf("seed-user-%d", i)

		userRows := sqlmock.NewRows(userColumns()).
			AddRow(userID, su.username, su.email, "hash", su.role, now)
		mock.ExpectQuery("INSERT INTO users").WillReturnRows(userRows)

		for j := range su.messages {
			msgRows := sqlmock.NewRows(messageColumns())
			messageRow(msgRows, fmt.Sprintf("seed-msg-%d-%d", i, j), su.messages[j], userID, now)
			mock.ExpectQuery("INSERT INTO messages").WillReturnRows(msgRows)
		}
	}
}

func TestSeedInsertsFixtures(t *testing.T) {
	st, mock := newMockStore(t)
	expectSeedRound(mock)

	require.NoError(t, st.Seed(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Seeding is deliberately not idempotent: a second run issues the same
// inserts again. Duplicate-free boots rely on the forced schema reset, not
// on the seed routine guarding itself.
func TestSeedTwiceInsertsTwice(t *testing.T) {
	st, mock := newMockStore(t)
	expectSeedRound(mock)
	expectSeedRound(mock)

	require.NoError(t, st.Seed(context.Background()))
	require.NoError(t, st.Seed(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
