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

	"github.com/dheeverse/dheeverse/internal/outbox/domain"
)

var outboxColumns = []string{
	"id", "event_type", "payload", "status", "retries", "last_error", "processed_at", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestEvent(t *testing.T) *domain.OutboxEvent {
	t.Helper()
	event, err := domain.NewOutboxEvent(domain.EventTypeJournalReminder, domain.JournalReminderPayload{
		Email: "asha@example.com",
		Name:  "Asha",
	})
	require.NoError(t, err)
	return event
}

func TestPostgreSQLOutboxEventRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)
	event := newTestEvent(t)

	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(event.ID, domain.EventTypeJournalReminder, event.Payload, "pending", 0, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLOutboxEventRepository_Create_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)

	mock.ExpectExec("INSERT INTO outbox_events").WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), newTestEvent(t))
	assert.ErrorContains(t, err, "failed to create outbox event")
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)
	retryBefore := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	createdAt := retryBefore.Add(-time.Hour)
	id1 := uuid.Must(uuid.NewV7())
	id2 := uuid.Must(uuid.NewV7())
	lastError := "smtp timeout"

	rows := sqlmock.NewRows(outboxColumns).
		AddRow(id1.String(), domain.EventTypeJournalReminder, `{}`, "pending", 0, nil, nil, createdAt, createdAt).
		AddRow(id2.String(), domain.EventTypeOTPRequested, `{}`, "pending", 2, lastError, nil, createdAt, createdAt)

	mock.ExpectQuery(`FROM outbox_events\s+WHERE status = \$1 AND \(retries = 0 OR updated_at <= \$2\)`).
		WithArgs("pending", retryBefore, 10).
		WillReturnRows(rows)

	events, err := repo.GetPendingEvents(context.Background(), 10, retryBefore)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, id1, events[0].ID)
	assert.Equal(t, domain.OutboxEventStatusPending, events[0].Status)
	assert.Nil(t, events[0].LastError)
	assert.Equal(t, id2, events[1].ID)
	assert.Equal(t, 2, events[1].Retries)
	require.NotNil(t, events[1].LastError)
	assert.Equal(t, lastError, *events[1].LastError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)

	mock.ExpectQuery("FROM outbox_events").WillReturnError(errors.New("lock timeout"))

	_, err := repo.GetPendingEvents(context.Background(), 10, time.Now())
	assert.ErrorContains(t, err, "failed to get pending outbox events")
}

func TestPostgreSQLOutboxEventRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)
	event := newTestEvent(t)
	processedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event.Status = domain.OutboxEventStatusProcessed
	event.ProcessedAt = &processedAt

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("processed", 0, nil, processedAt, event.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLOutboxEventRepository_Update_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)

	mock.ExpectExec("UPDATE outbox_events").WillReturnError(errors.New("deadlock"))

	err := repo.Update(context.Background(), newTestEvent(t))
	assert.ErrorContains(t, err, "failed to update outbox event")
}
