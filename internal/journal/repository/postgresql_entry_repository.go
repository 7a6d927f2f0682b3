// Package repository provides journal entry persistence for PostgreSQL and MySQL.
//
// Repositories store entries exactly as handed to them; the content, insight,
// recommendation and question columns are expected to hold encrypted tokens.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dheeverse/dheeverse/internal/database"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	"github.com/dheeverse/dheeverse/internal/journal/domain"
)

const entryColumns = `id, user_id, type, title, content, ai_insight, recommendation, question,
	mood, mood_score, tags, archived, created_at, updated_at`

// PostgreSQLEntryRepository handles journal entry persistence for PostgreSQL.
type PostgreSQLEntryRepository struct {
	db *sql.DB
}

// NewPostgreSQLEntryRepository creates a new PostgreSQLEntryRepository.
func NewPostgreSQLEntryRepository(db *sql.DB) *PostgreSQLEntryRepository {
	return &PostgreSQLEntryRepository{db: db}
}

// Create inserts a new entry.
func (r *PostgreSQLEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO journal_entries (` + entryColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := querier.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Type, entry.Title,
		entry.Content, entry.AIInsight, entry.Recommendation, entry.Question,
		entry.Mood, entry.MoodScore, pq.Array(entry.Tags), entry.Archived,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create journal entry")
	}
	return nil
}

// Update persists every mutable column of an entry.
func (r *PostgreSQLEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE journal_entries
			  SET title = $1, content = $2, ai_insight = $3, recommendation = $4, question = $5,
			      mood = $6, mood_score = $7, tags = $8, archived = $9, updated_at = $10
			  WHERE id = $11 AND user_id = $12`

	result, err := querier.ExecContext(ctx, query,
		entry.Title, entry.Content, entry.AIInsight, entry.Recommendation, entry.Question,
		entry.Mood, entry.MoodScore, pq.Array(entry.Tags), entry.Archived, entry.UpdatedAt,
		entry.ID, entry.UserID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update journal entry")
	}
	return requireAffected(result, "failed to update journal entry")
}

// Delete removes an entry owned by userID.
func (r *PostgreSQLEntryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete journal entry")
	}
	return requireAffected(result, "failed to delete journal entry")
}

// Get retrieves an entry owned by userID, archived or not.
func (r *PostgreSQLEntryRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id = $1 AND user_id = $2`

	entry, err := scanPostgreSQLEntry(querier.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get journal entry")
	}
	return entry, nil
}

// List returns entries with the given archived flag, newest first.
func (r *PostgreSQLEntryRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	archived bool,
	offset, limit int,
) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries
			  WHERE user_id = $1 AND archived = $2
			  ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
	return r.query(ctx, "failed to list journal entries", query, userID, archived, limit, offset)
}

// ListAll returns every entry of a user, oldest first.
func (r *PostgreSQLEntryRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE user_id = $1 ORDER BY created_at, id`
	return r.query(ctx, "failed to list journal entries", query, userID)
}

// ListAfter returns up to limit entries of any user with an id greater than afterID.
func (r *PostgreSQLEntryRepository) ListAfter(
	ctx context.Context,
	afterID uuid.UUID,
	limit int,
) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id > $1 ORDER BY id LIMIT $2`
	return r.query(ctx, "failed to list journal entries", query, afterID, limit)
}

func (r *PostgreSQLEntryRepository) query(
	ctx context.Context,
	failure string,
	query string,
	args ...any,
) ([]*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, failure)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanPostgreSQLEntry(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, failure)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, failure)
	}
	return entries, nil
}

// ListMoodPoints returns the mood columns of entries created in [from, to).
func (r *PostgreSQLEntryRepository) ListMoodPoints(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]domain.MoodPoint, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT mood, mood_score, created_at FROM journal_entries
			  WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list mood points")
	}
	defer func() { _ = rows.Close() }()

	points := make([]domain.MoodPoint, 0)
	for rows.Next() {
		var p domain.MoodPoint
		if err := rows.Scan(&p.Mood, &p.MoodScore, &p.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan mood point")
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list mood points")
	}
	return points, nil
}

// ListEntryTimes returns the creation times of entries created at or after since.
func (r *PostgreSQLEntryRepository) ListEntryTimes(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]time.Time, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT created_at FROM journal_entries WHERE user_id = $1 AND created_at >= $2 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list entry times")
	}
	return scanTimes(rows, "failed to list entry times")
}

// ListReminderRecipients returns verified users without an entry since the given time.
func (r *PostgreSQLEntryRepository) ListReminderRecipients(
	ctx context.Context,
	since time.Time,
) ([]domain.ReminderRecipient, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT u.id, u.name, u.email FROM users u
			  WHERE u.email_verified_at IS NOT NULL
			    AND NOT EXISTS (
			      SELECT 1 FROM journal_entries e WHERE e.user_id = u.id AND e.created_at >= $1
			    )
			  ORDER BY u.id`

	rows, err := querier.QueryContext(ctx, query, since)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list reminder recipients")
	}
	defer func() { _ = rows.Close() }()

	recipients := make([]domain.ReminderRecipient, 0)
	for rows.Next() {
		var rcpt domain.ReminderRecipient
		if err := rows.Scan(&rcpt.UserID, &rcpt.Name, &rcpt.Email); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan reminder recipient")
		}
		recipients = append(recipients, rcpt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list reminder recipients")
	}
	return recipients, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLEntry(row scanner) (*domain.Entry, error) {
	var entry domain.Entry
	var tags pq.StringArray
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.Type, &entry.Title,
		&entry.Content, &entry.AIInsight, &entry.Recommendation, &entry.Question,
		&entry.Mood, &entry.MoodScore, &tags, &entry.Archived,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Tags = []string(tags)
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	return &entry, nil
}

func scanTimes(rows *sql.Rows, failure string) ([]time.Time, error) {
	defer func() { _ = rows.Close() }()

	times := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, apperrors.Wrap(err, failure)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, failure)
	}
	return times, nil
}

func requireAffected(result sql.Result, failure string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, failure)
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}
