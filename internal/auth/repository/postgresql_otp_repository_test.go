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

var otpColumns = []string{
	"id", "user_id", "purpose", "code_hash", "target", "attempts", "expires_at", "consumed_at", "created_at",
}

func newTestOTP() *authDomain.OTPCode {
	now := time.Now().UTC().Truncate(time.Second)
	return &authDomain.OTPCode{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    uuid.Must(uuid.NewV7()),
		Purpose:   authDomain.OTPPurposeEmailVerification,
		CodeHash:  "code-hash",
		Target:    "asha@example.com",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}
}

func TestPostgreSQLOTPRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOTPRepository(db)
	otp := newTestOTP()

	mock.ExpectExec("INSERT INTO otp_codes").
		WithArgs(otp.ID, otp.UserID, "email_verification", otp.CodeHash, otp.Target, 0, otp.ExpiresAt, nil, otp.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), otp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLOTPRepository_GetLatest(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOTPRepository(db)
		otp := newTestOTP()

		rows := sqlmock.NewRows(otpColumns).AddRow(
			otp.ID.String(), otp.UserID.String(), "email_verification", otp.CodeHash, otp.Target, 2, otp.ExpiresAt, nil, otp.CreatedAt,
		)
		mock.ExpectQuery("SELECT (.+) FROM otp_codes (.+) ORDER BY created_at DESC").
			WithArgs(otp.UserID, "email_verification").
			WillReturnRows(rows)

		got, err := repo.GetLatest(ctx, otp.UserID, authDomain.OTPPurposeEmailVerification)
		require.NoError(t, err)
		assert.Equal(t, otp.ID, got.ID)
		assert.Equal(t, authDomain.OTPPurposeEmailVerification, got.Purpose)
		assert.Equal(t, 2, got.Attempts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOTPRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM otp_codes").WillReturnError(sql.ErrNoRows)

		got, err := repo.GetLatest(ctx, uuid.New(), authDomain.OTPPurposeEmailChange)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, authDomain.ErrOTPNotFound)
	})
}

func TestPostgreSQLOTPRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOTPRepository(db)
	otp := newTestOTP()
	consumed := time.Now().UTC()
	otp.Attempts = 1
	otp.ConsumedAt = &consumed

	mock.ExpectExec("UPDATE otp_codes SET attempts").
		WithArgs(1, consumed, otp.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(context.Background(), otp))
	assert.NoError(t, mock.ExpectationsWereMet())
}
