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

// PostgreSQLOTPRepository implements OTPCode persistence for PostgreSQL.
type PostgreSQLOTPRepository struct {
	db *sql.DB
}

// Create inserts a new OTPCode.
func (p *PostgreSQLOTPRepository) Create(ctx context.Context, otp *authDomain.OTPCode) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO otp_codes (id, user_id, purpose, code_hash, target, attempts, expires_at, consumed_at, created_at) 
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(ctx, query, otp.ID, otp.UserID, otp.Purpose, otp.CodeHash, otp.Target,
		otp.Attempts, otp.ExpiresAt, otp.ConsumedAt, otp.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create otp code")
	}
	return nil
}

// GetLatest returns the newest code for the user and purpose, locking the row
// when called inside a transaction.
func (p *PostgreSQLOTPRepository) GetLatest(
	ctx context.Context,
	userID uuid.UUID,
	purpose authDomain.OTPPurpose,
) (*authDomain.OTPCode, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, purpose, code_hash, target, attempts, expires_at, consumed_at, created_at 
			  FROM otp_codes 
			  WHERE user_id = $1 AND purpose = $2 
			  ORDER BY created_at DESC, id DESC 
			  LIMIT 1 
			  FOR UPDATE`

	var otp authDomain.OTPCode
	err := querier.QueryRowContext(ctx, query, userID, purpose).Scan(
		&otp.ID, &otp.UserID, &otp.Purpose, &otp.CodeHash, &otp.Target,
		&otp.Attempts, &otp.ExpiresAt, &otp.ConsumedAt, &otp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrOTPNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get otp code")
	}
	return &otp, nil
}

// Update persists attempts and consumption.
func (p *PostgreSQLOTPRepository) Update(ctx context.Context, otp *authDomain.OTPCode) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE otp_codes SET attempts = $1, consumed_at = $2 WHERE id = $3`

	if _, err := querier.ExecContext(ctx, query, otp.Attempts, otp.ConsumedAt, otp.ID); err != nil {
		return apperrors.Wrap(err, "failed to update otp code")
	}
	return nil
}

// NewPostgreSQLOTPRepository creates a new PostgreSQL OTPCode repository.
func NewPostgreSQLOTPRepository(db *sql.DB) *PostgreSQLOTPRepository {
	return &PostgreSQLOTPRepository{db: db}
}
