// Package repository provides activity completion persistence for PostgreSQL and MySQL.
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

// PostgreSQLCompletionRepository handles completion persistence for PostgreSQL.
type PostgreSQLCompletionRepository struct {
	db *sql.DB
}

// NewPostgreSQLCompletionRepository creates a new PostgreSQLCompletionRepository.
func NewPostgreSQLCompletionRepository(db *sql.DB) *PostgreSQLCompletionRepository {
	return &PostgreSQLCompletionRepository{db: db}
}

// Create inserts a new completion.
func (r *PostgreSQLCompletionRepository) Create(ctx context.Context, completion *domain.Completion) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO activity_completions (id, user_id, type, duration_seconds, note, completed_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(ctx, query, completion.ID, completion.UserID, completion.Type,
		completion.DurationSeconds, completion.Note, completion.CompletedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create activity completion")
	}
	return nil
}

// List returns completions newest first.
func (r *PostgreSQLCompletionRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Completion, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, duration_seconds, note, completed_at FROM activity_completions
			  WHERE user_id = $1 ORDER BY completed_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list activity completions")
	}
	return collectPostgreSQLCompletions(rows)
}

// ListAll returns every completion oldest first.
func (r *PostgreSQLCompletionRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Completion, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, duration_seconds, note, completed_at FROM activity_completions
			  WHERE user_id = $1 ORDER BY completed_at, id`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list activity completions")
	}
	return collectPostgreSQLCompletions(rows)
}

// TotalsByType returns count and summed duration per activity type.
func (r *PostgreSQLCompletionRepository) TotalsByType(ctx context.Context, userID uuid.UUID) ([]domain.TypeTotal, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT type, COUNT(*), COALESCE(SUM(duration_seconds), 0) FROM activity_completions
			  WHERE user_id = $1 GROUP BY type ORDER BY type`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to total activity completions")
	}
	return collectTotals(rows)
}

// ListCompletionTimes returns completion times at or after since.
func (r *PostgreSQLCompletionRepository) ListCompletionTimes(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]time.Time, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT completed_at FROM activity_completions
			  WHERE user_id = $1 AND completed_at >= $2 ORDER BY completed_at`

	rows, err := querier.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list completion times")
	}
	return collectTimes(rows)
}

func collectPostgreSQLCompletions(rows *sql.Rows) ([]*domain.Completion, error) {
	defer func() { _ = rows.Close() }()

	completions := make([]*domain.Completion, 0)
	for rows.Next() {
		var c domain.Completion
		if err := rows.Scan(&c.ID, &c.UserID, &c.Type, &c.DurationSeconds, &c.Note, &c.CompletedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan activity completion")
		}
		completions = append(completions, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list activity completions")
	}
	return completions, nil
}

func collectTotals(rows *sql.Rows) ([]domain.TypeTotal, error) {
	defer func() { _ = rows.Close() }()

	totals := make([]domain.TypeTotal, 0)
	for rows.Next() {
		var t domain.TypeTotal
		if err := rows.Scan(&t.Type, &t.Count, &t.Seconds); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan activity totals")
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to total activity completions")
	}
	return totals, nil
}

func collectTimes(rows *sql.Rows) ([]time.Time, error) {
	defer func() { _ = rows.Close() }()

	times := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan completion time")
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list completion times")
	}
	return times, nil
}
