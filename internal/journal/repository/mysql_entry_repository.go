package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dheeverse/dheeverse/internal/database"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	"github.com/dheeverse/dheeverse/internal/journal/domain"
)

// MySQLEntryRepository handles journal entry persistence for MySQL.
// IDs are stored as BINARY(16) and tags as a JSON array.
type MySQLEntryRepository struct {
	db *sql.DB
}

// NewMySQLEntryRepository creates a new MySQLEntryRepository.
func NewMySQLEntryRepository(db *sql.DB) *MySQLEntryRepository {
	return &MySQLEntryRepository{db: db}
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to marshal tags")
	}
	return string(data), nil
}

func binaryIDs(ids ...uuid.UUID) ([][]byte, error) {
	out := make([][]byte, 0, len(ids))
	for _, id := range ids {
		b, err := id.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal UUID")
		}
		out = append(out, b)
	}
	return out, nil
}

// Create inserts a new entry.
func (r *MySQLEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	querier := database.GetTx(ctx, r.db)

	ids, err := binaryIDs(entry.ID, entry.UserID)
	if err != nil {
		return err
	}
	tags, err := marshalTags(entry.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO journal_entries (` + entryColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query,
		ids[0], ids[1], entry.Type, entry.Title,
		entry.Content, entry.AIInsight, entry.Recommendation, entry.Question,
		entry.Mood, entry.MoodScore, tags, entry.Archived,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create journal entry")
	}
	return nil
}

// Update persists every mutable column of an entry.
func (r *MySQLEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	querier := database.GetTx(ctx, r.db)

	ids, err := binaryIDs(entry.ID, entry.UserID)
	if err != nil {
		return err
	}
	tags, err := marshalTags(entry.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE journal_entries
			  SET title = ?, content = ?, ai_insight = ?, recommendation = ?, question = ?,
			      mood = ?, mood_score = ?, tags = ?, archived = ?, updated_at = ?
			  WHERE id = ? AND user_id = ?`

	_, err = querier.ExecContext(ctx, query,
		entry.Title, entry.Content, entry.AIInsight, entry.Recommendation, entry.Question,
		entry.Mood, entry.MoodScore, tags, entry.Archived, entry.UpdatedAt,
		ids[0], ids[1],
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update journal entry")
	}
	return nil
}

// Delete removes an entry owned by userID.
func (r *MySQLEntryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	ids, err := binaryIDs(id, userID)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ? AND user_id = ?`, ids[0], ids[1])
	if err != nil {
		return apperrors.Wrap(err, "failed to delete journal entry")
	}
	return requireAffected(result, "failed to delete journal entry")
}

// Get retrieves an entry owned by userID, archived or not.
func (r *MySQLEntryRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	ids, err := binaryIDs(id, userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id = ? AND user_id = ?`

	entry, err := scanMySQLEntry(querier.QueryRowContext(ctx, query, ids[0], ids[1]))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get journal entry")
	}
	return entry, nil
}

// List returns entries with the given archived flag, newest first.
func (r *MySQLEntryRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	archived bool,
	offset, limit int,
) ([]*domain.Entry, error) {
	ids, err := binaryIDs(userID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + entryColumns + ` FROM journal_entries
			  WHERE user_id = ? AND archived = ?
			  ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	return r.query(ctx, "failed to list journal entries", query, ids[0], archived, limit, offset)
}

// ListAll returns every entry of a user, oldest first.
func (r *MySQLEntryRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	ids, err := binaryIDs(userID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE user_id = ? ORDER BY created_at, id`
	return r.query(ctx, "failed to list journal entries", query, ids[0])
}

// ListAfter returns up to limit entries of any user with an id greater than afterID.
func (r *MySQLEntryRepository) ListAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Entry, error) {
	ids, err := binaryIDs(afterID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id > ? ORDER BY id LIMIT ?`
	return r.query(ctx, "failed to list journal entries", query, ids[0], limit)
}

func (r *MySQLEntryRepository) query(
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
		entry, err := scanMySQLEntry(rows)
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
func (r *MySQLEntryRepository) ListMoodPoints(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]domain.MoodPoint, error) {
	querier := database.GetTx(ctx, r.db)

	ids, err := binaryIDs(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT mood, mood_score, created_at FROM journal_entries
			  WHERE user_id = ? AND created_at >= ? AND created_at < ?
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, ids[0], from, to)
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
func (r *MySQLEntryRepository) ListEntryTimes(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]time.Time, error) {
	querier := database.GetTx(ctx, r.db)

	ids, err := binaryIDs(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT created_at FROM journal_entries WHERE user_id = ? AND created_at >= ? ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, ids[0], since)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list entry times")
	}
	return scanTimes(rows, "failed to list entry times")
}

// ListReminderRecipients returns verified users without an entry since the given time.
func (r *MySQLEntryRepository) ListReminderRecipients(
	ctx context.Context,
	since time.Time,
) ([]domain.ReminderRecipient, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT u.id, u.name, u.email FROM users u
			  WHERE u.email_verified_at IS NOT NULL
			    AND NOT EXISTS (
			      SELECT 1 FROM journal_entries e WHERE e.user_id = u.id AND e.created_at >= ?
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
		var id []byte
		if err := rows.Scan(&id, &rcpt.Name, &rcpt.Email); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan reminder recipient")
		}
		if err := rcpt.UserID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		recipients = append(recipients, rcpt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list reminder recipients")
	}
	return recipients, nil
}

func scanMySQLEntry(row scanner) (*domain.Entry, error) {
	var entry domain.Entry
	var id, userID []byte
	var tags string
	err := row.Scan(
		&id, &userID, &entry.Type, &entry.Title,
		&entry.Content, &entry.AIInsight, &entry.Recommendation, &entry.Question,
		&entry.Mood, &entry.MoodScore, &tags, &entry.Archived,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := entry.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := entry.UserID.UnmarshalBinary(userID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	entry.Tags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &entry.Tags); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal tags")
		}
	}
	return &entry, nil
}
