package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "sns_id", "stake", "created_at", "updated_at"})
}

func TestUserRepoGetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("alice@example.com").
			WillReturnRows(userRows().AddRow(1, "alice@example.com", "alice.sol", 0.5, "2025-01-01 00:00:00", "2025-01-01 00:00:00"))

		u, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice.sol", u.SNSID)
		assert.Equal(t, 0.5, u.Stake)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to sentinel", func(t *testing.T) {
		repo, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("ghost@example.com").
			WillReturnRows(userRows())

		_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepoCreate(t *testing.T) {
	repo, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO sns_users").
		WithArgs("bob@example.com", "bob.sol", 0.0).
		WillReturnResult(sqlmock.NewResult(7, 1))
	// Create re-reads the row so callers see store defaults.
	mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
		WithArgs("bob@example.com").
		WillReturnRows(userRows().AddRow(7, "bob@example.com", "bob.sol", 0.0, "2025-01-01 00:00:00", "2025-01-01 00:00:00"))

	u, err := repo.Create(context.Background(), "bob@example.com", "bob.sol", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateFields(t *testing.T) {
	t.Run("touches only provided fields and drops the email key", func(t *testing.T) {
		repo, mock := newMockDB(t)
		existing := userRows().AddRow(3, "carol@example.com", "old.sol", 1.0, "2025-01-01 00:00:00", "2025-01-01 00:00:00")
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("carol@example.com").
			WillReturnRows(existing)
		// Sorted keys, email skipped, updated_at always appended.
		mock.ExpectExec(`UPDATE sns_users SET sns_id = \?, updated_at = CURRENT_TIMESTAMP WHERE email = \?`).
			WithArgs("new.sol", "carol@example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("carol@example.com").
			WillReturnRows(userRows().AddRow(3, "carol@example.com", "new.sol", 1.0, "2025-01-01 00:00:00", "2025-01-02 00:00:00"))

		u, err := repo.UpdateFields(context.Background(), "carol@example.com", map[string]any{
			"sns_id": "new.sol",
			"email":  "evil@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "new.sol", u.SNSID)
		assert.Equal(t, "carol@example.com", u.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		repo, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("ghost@example.com").
			WillReturnRows(userRows())

		_, err := repo.UpdateFields(context.Background(), "ghost@example.com", map[string]any{"stake": 2.0})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
