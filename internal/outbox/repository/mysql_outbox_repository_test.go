package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheeverse/dheeverse/internal/outbox/domain"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLOutboxEventRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)
	event := newTestEvent(t)

	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(mustBinary(t, event.ID), domain.EventTypeJournalReminder, event.Payload, "pending", 0, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)
	retryBefore := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.Must(uuid.NewV7())

	rows := sqlmock.NewRows(outboxColumns).
		AddRow(mustBinary(t, id), domain.EventTypeEmailChanged, `{}`, "pending", 1, "boom", nil, retryBefore, retryBefore)

	mock.ExpectQuery(`WHERE status = \? AND \(retries = 0 OR updated_at <= \?\)`).
		WithArgs("pending", retryBefore, 5).
		WillReturnRows(rows)

	events, err := repo.GetPendingEvents(context.Background(), 5, retryBefore)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, domain.EventTypeEmailChanged, events[0].EventType)
	assert.Equal(t, 1, events[0].Retries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository_GetPendingEvents_InvalidID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(outboxColumns).
		AddRow([]byte{1, 2, 3}, domain.EventTypeEmailChanged, `{}`, "pending", 0, nil, nil, now, now)
	mock.ExpectQuery("FROM outbox_events").WillReturnRows(rows)

	_, err := repo.GetPendingEvents(context.Background(), 5, now)
	assert.ErrorContains(t, err, "failed to parse outbox event id")
}

func TestMySQLOutboxEventRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)
	event := newTestEvent(t)
	lastError := "smtp down"
	event.Retries = 3
	event.Status = domain.OutboxEventStatusFailed
	event.LastError = &lastError

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("failed", 3, lastError, nil, mustBinary(t, event.ID)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository_Update_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)

	mock.ExpectExec("UPDATE outbox_events").WillReturnError(errors.New("deadlock"))

	err := repo.Update(context.Background(), newTestEvent(t))
	assert.ErrorContains(t, err, "failed to update outbox event")
}
