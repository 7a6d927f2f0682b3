// Package domain defines the core outbox domain entities and types.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus represents the status of an outbox event
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// Event types written by the application.
const (
	EventTypeOTPRequested    = "auth.otp_requested"
	EventTypeEmailChanged    = "user.email_changed"
	EventTypeJournalReminder = "journal.reminder"
)

// OutboxEvent represents an event in the transactional outbox pattern
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOutboxEvent builds a pending event with payload marshaled as JSON.
func NewOutboxEvent(eventType string, payload any) (*OutboxEvent, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(payloadJSON),
		Status:    OutboxEventStatusPending,
	}, nil
}

// OTPRequestedPayload carries a one-time code to be mailed.
type OTPRequestedPayload struct {
	Email            string `json:"email"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	Purpose          string `json:"purpose"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

// EmailChangedPayload notifies the previous address after an email change.
type EmailChangedPayload struct {
	OldEmail string `json:"old_email"`
	NewEmail string `json:"new_email"`
	Name     string `json:"name"`
}

// JournalReminderPayload nudges a user who has not written today.
type JournalReminderPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
