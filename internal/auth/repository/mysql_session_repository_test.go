package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLSessionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSessionRepository(db)
	session := newTestSession()

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(
			mustBinary(t, session.ID),
			mustBinary(t, session.UserID),
			session.TokenHash,
			session.ExpiresAt,
			nil,
			session.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSessionRepository_GetByTokenHash(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSessionRepository(db)
		session := newTestSession()
		revoked := session.CreatedAt.Add(time.Hour)

		rows := sqlmock.NewRows(sessionColumns).AddRow(
			mustBinary(t, session.ID),
			mustBinary(t, session.UserID),
			session.TokenHash,
			session.ExpiresAt,
			revoked,
			session.CreatedAt,
		)
		mock.ExpectQuery("SELECT (.+) FROM sessions WHERE token_hash").
			WithArgs(session.TokenHash).
			WillReturnRows(rows)

		got, err := repo.GetByTokenHash(ctx, session.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
		assert.Equal(t, session.UserID, got.UserID)
		require.NotNil(t, got.RevokedAt)
		assert.Equal(t, revoked, *got.RevokedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSessionRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM sessions").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByTokenHash(ctx, "missing")
		assert.ErrorIs(t, err, authDomain.ErrSessionNotFound)
	})
}

func TestMySQLSessionRepository_RevokeAllByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSessionRepository(db)
	userID := uuid.Must(uuid.NewV7())
	keep := uuid.Must(uuid.NewV7())
	revokedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE sessions SET revoked_at").
		WithArgs(revokedAt, mustBinary(t, userID), mustBinary(t, keep)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	assert.NoError(t, repo.RevokeAllByUserID(context.Background(), userID, keep, revokedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSessionRepository_Revoke(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSessionRepository(db)
	sessionID := uuid.Must(uuid.NewV7())
	revokedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE sessions SET revoked_at").
		WithArgs(revokedAt, mustBinary(t, sessionID)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Revoke(context.Background(), sessionID, revokedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
