package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
	"github.com/dheeverse/dheeverse/internal/database"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
)

// MySQLCompletionRepository handles completion persistence for MySQL.
type MySQLCompletionRepository struct {
	db *sql.DB
}

// NewMySQLCompletionRepository creates a new MySQLCompletionRepository.
func NewMySQLCompletionRepository(db *sql.DB) *MySQLCompletionRepository {
	return &MySQLCompletionRepository{db: db}
}

// Create inserts a new completion.
func (r *MySQLCompletionRepository) Create(ctx context.Context, completion *domain.Completion) error {
	querier := database.GetTx(ctx, r.db)

	id, err := completion.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userID, err := completion.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `INSERT INTO activity_completions (id, user_id, type, duration_seconds, note, completed_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, userID, completion.Type,
		completion.DurationSeconds, completion.Note, completion.CompletedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create activity completion")
	}
	return nil
}

// List returns completions newest first.
func (r *MySQLCompletionRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Completion, error) {
	querier := database.GetTx(ctx, r.db)

	uid, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT id, user_id, type, duration_seconds, note, completed_at FROM activity_completions
			  WHERE user_id = ? ORDER BY completed_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, uid, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list activity completions")
	}
	return collectMySQLCompletions(rows)
}

// ListAll returns every completion oldest first.
func (r *MySQLCompletionRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Completion, error) {
	querier := database.GetTx(ctx, r.db)

	uid, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT id, user_id, type, duration_seconds, note, completed_at FROM activity_completions
			  WHERE user_id = ? ORDER BY completed_at, id`

	rows, err := querier.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list activity completions")
	}
	return collectMySQLCompletions(rows)
}

// TotalsByType returns count and summed duration per activity type.
func (r *MySQLCompletionRepository) TotalsByType(ctx context.Context, userID uuid.UUID) ([]domain.TypeTotal, error) {
	querier := database.GetTx(ctx, r.db)

	uid, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT type, COUNT(*), COALESCE(SUM(duration_seconds), 0) FROM activity_completions
			  WHERE user_id = ? GROUP BY type ORDER BY type`

	rows, err := querier.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to total activity completions")
	}
	return collectTotals(rows)
}

// ListCompletionTimes returns completion times at or after since.
func (r *MySQLCompletionRepository) ListCompletionTimes(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]time.Time, error) {
	querier := database.GetTx(ctx, r.db)

	uid, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT completed_at FROM activity_completions
			  WHERE user_id = ? AND completed_at >= ? ORDER BY completed_at`

	rows, err := querier.QueryContext(ctx, query, uid, since)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list completion times")
	}
	return collectTimes(rows)
}

func collectMySQLCompletions(rows *sql.Rows) ([]*domain.Completion, error) {
	defer func() { _ = rows.Close() }()

	completions := make([]*domain.Completion, 0)
	for rows.Next() {
		var c domain.Completion
		var id, userID []byte
		if err := rows.Scan(&id, &userID, &c.Type, &c.DurationSeconds, &c.Note, &c.CompletedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan activity completion")
		}
		if err := c.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := c.UserID.UnmarshalBinary(userID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		completions = append(completions, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list activity completions")
	}
	return completions, nil
}
