package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/dheeverse/dheeverse/internal/crypto/domain"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	"github.com/dheeverse/dheeverse/internal/journal/domain"
)

var columns = []string{
	"id", "user_id", "type", "title", "content", "ai_insight", "recommendation", "question",
	"mood", "mood_score", "tags", "archived", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func strPtr(s string) *string { return &s }

func newTestEntry() *domain.Entry {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Entry{
		ID:     uuid.Must(uuid.NewV7()),
		UserID: uuid.Must(uuid.NewV7()),
		Type:   domain.EntryTypeText,
		Title:  "Morning pages",
		SensitiveFields: cryptoDomain.SensitiveFields{
			Content:        strPtr("enc:content"),
			AIInsight:      strPtr("enc:insight"),
			Recommendation: strPtr("enc:recommendation"),
			Question:       strPtr("enc:question"),
		},
		Mood:      domain.MoodCalm,
		MoodScore: 4,
		Tags:      []string{"morning", "walk"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgreSQLEntryRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)
		entry := newTestEntry()

		mock.ExpectExec("INSERT INTO journal_entries").
			WithArgs(
				entry.ID, entry.UserID, "text", entry.Title,
				*entry.Content, *entry.AIInsight, *entry.Recommendation, *entry.Question,
				"calm", 4, `{"morning","walk"}`, false,
				entry.CreatedAt, entry.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, entry))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec("INSERT INTO journal_entries").WillReturnError(errors.New("boom"))

		err := repo.Create(ctx, newTestEntry())
		assert.ErrorContains(t, err, "failed to create journal entry")
	})
}

func TestPostgreSQLEntryRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)
		entry := newTestEntry()
		entry.Archived = true

		mock.ExpectExec("UPDATE journal_entries").
			WithArgs(
				entry.Title, *entry.Content, *entry.AIInsight, *entry.Recommendation, *entry.Question,
				"calm", 4, sqlmock.AnyArg(), true, entry.UpdatedAt,
				entry.ID, entry.UserID,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, entry))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec("UPDATE journal_entries").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, newTestEntry()), domain.ErrEntryNotFound)
	})
}

func TestPostgreSQLEntryRepository_Delete(t *testing.T) {
	ctx := context.Background()
	userID, id := uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec("DELETE FROM journal_entries").
			WithArgs(id, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, userID, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec("DELETE FROM journal_entries").
			WithArgs(id, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, userID, id)
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLEntryRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)
		entry := newTestEntry()

		rows := sqlmock.NewRows(columns).AddRow(
			entry.ID.String(), entry.UserID.String(), "text", entry.Title,
			*entry.Content, *entry.AIInsight, nil, nil,
			"calm", 4, "{morning,walk}", false,
			entry.CreatedAt, entry.UpdatedAt,
		)
		mock.ExpectQuery("SELECT (.+) FROM journal_entries WHERE id").
			WithArgs(entry.ID, entry.UserID).
			WillReturnRows(rows)

		got, err := repo.Get(ctx, entry.UserID, entry.ID)

		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
		assert.Equal(t, domain.EntryTypeText, got.Type)
		assert.Equal(t, "enc:content", *got.Content)
		assert.Nil(t, got.Recommendation)
		assert.Equal(t, domain.MoodCalm, got.Mood)
		assert.Equal(t, []string{"morning", "walk"}, got.Tags)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM journal_entries").WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})
}

func TestPostgreSQLEntryRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLEntryRepository(db)
	first, second := newTestEntry(), newTestEntry()

	rows := sqlmock.NewRows(columns)
	for _, e := range []*domain.Entry{first, second} {
		rows.AddRow(
			e.ID.String(), e.UserID.String(), "text", e.Title,
			*e.Content, *e.AIInsight, *e.Recommendation, *e.Question,
			"calm", 4, "{}", true,
			e.CreatedAt, e.UpdatedAt,
		)
	}
	mock.ExpectQuery("SELECT (.+) FROM journal_entries WHERE user_id = \\$1 AND archived = \\$2").
		WithArgs(first.UserID, true, 20, 40).
		WillReturnRows(rows)

	entries, err := repo.List(context.Background(), first.UserID, true, 40, 20)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Archived)
	assert.Empty(t, entries[0].Tags)
	assert.Equal(t, second.ID, entries[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLEntryRepository_ListAfter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLEntryRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM journal_entries WHERE id > \\$1 ORDER BY id LIMIT \\$2").
		WithArgs(uuid.Nil, 100).
		WillReturnRows(sqlmock.NewRows(columns))

	entries, err := repo.ListAfter(context.Background(), uuid.Nil, 100)

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLEntryRepository_ListMoodPoints(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLEntryRepository(db)
	userID := uuid.Must(uuid.NewV7())
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	mock.ExpectQuery("SELECT mood, mood_score, created_at FROM journal_entries").
		WithArgs(userID, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"mood", "mood_score", "created_at"}).
			AddRow("happy", 5, from.Add(time.Hour)).
			AddRow("sad", 2, from.Add(26*time.Hour)))

	points, err := repo.ListMoodPoints(context.Background(), userID, from, to)

	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, domain.MoodHappy, points[0].Mood)
	assert.Equal(t, 2, points[1].MoodScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLEntryRepository_ListEntryTimes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLEntryRepository(db)
	userID := uuid.Must(uuid.NewV7())
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	at := since.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT created_at FROM journal_entries").
		WithArgs(userID, since).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(at))

	times, err := repo.ListEntryTimes(context.Background(), userID, since)

	require.NoError(t, err)
	assert.Equal(t, []time.Time{at}, times)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLEntryRepository_ListReminderRecipients(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLEntryRepository(db)
	since := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	userID := uuid.Must(uuid.NewV7())

	mock.ExpectQuery("SELECT u.id, u.name, u.email FROM users u").
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(userID.String(), "Asha", "asha@example.com"))

	recipients, err := repo.ListReminderRecipients(context.Background(), since)

	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, domain.ReminderRecipient{UserID: userID, Name: "Asha", Email: "asha@example.com"}, recipients[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
