package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	"github.com/dheeverse/dheeverse/internal/database"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
)

// MySQLOTPRepository implements OTPCode persistence for MySQL.
type MySQLOTPRepository struct {
	db *sql.DB
}

// Create inserts a new OTPCode.
func (m *MySQLOTPRepository) Create(ctx context.Context, otp *authDomain.OTPCode) error {
	querier := database.GetTx(ctx, m.db)

	id, err := otp.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal otp id")
	}
	userID, err := otp.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO otp_codes (id, user_id, purpose, code_hash, target, attempts, expires_at, consumed_at, created_at) 
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, userID, otp.Purpose, otp.CodeHash, otp.Target,
		otp.Attempts, otp.ExpiresAt, otp.ConsumedAt, otp.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create otp code")
	}
	return nil
}

// GetLatest returns the newest code for the user and purpose.
func (m *MySQLOTPRepository) GetLatest(
	ctx context.Context,
	userID uuid.UUID,
	purpose authDomain.OTPPurpose,
) (*authDomain.OTPCode, error) {
	querier := database.GetTx(ctx, m.db)

	uid, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, user_id, purpose, code_hash, target, attempts, expires_at, consumed_at, created_at 
			  FROM otp_codes 
			  WHERE user_id = ? AND purpose = ? 
			  ORDER BY created_at DESC, id DESC 
			  LIMIT 1 
			  FOR UPDATE`

	var otp authDomain.OTPCode
	var id, ownerID []byte
	err = querier.QueryRowContext(ctx, query, uid, purpose).Scan(
		&id, &ownerID, &otp.Purpose, &otp.CodeHash, &otp.Target,
		&otp.Attempts, &otp.ExpiresAt, &otp.ConsumedAt, &otp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrOTPNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get otp code")
	}

	if err := otp.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal otp id")
	}
	if err := otp.UserID.UnmarshalBinary(ownerID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	return &otp, nil
}

// Update persists attempts and consumption.
func (m *MySQLOTPRepository) Update(ctx context.Context, otp *authDomain.OTPCode) error {
	querier := database.GetTx(ctx, m.db)

	id, err := otp.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal otp id")
	}

	query := `UPDATE otp_codes SET attempts = ?, consumed_at = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, otp.Attempts, otp.ConsumedAt, id); err != nil {
		return apperrors.Wrap(err, "failed to update otp code")
	}
	return nil
}

// NewMySQLOTPRepository creates a new MySQL OTPCode repository.
func NewMySQLOTPRepository(db *sql.DB) *MySQLOTPRepository {
	return &MySQLOTPRepository{db: db}
}
