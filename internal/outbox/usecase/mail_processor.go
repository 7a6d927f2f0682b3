package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	"github.com/dheeverse/dheeverse/internal/mail"
	"github.com/dheeverse/dheeverse/internal/outbox/domain"
)

// ErrUnknownEventType is returned for events no mail template exists for.
var ErrUnknownEventType = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown outbox event type")

// MailEventProcessor turns outbox events into mail and hands it to a mail.Sender.
type MailEventProcessor struct {
	sender mail.Sender
	logger *slog.Logger
}

// NewMailEventProcessor creates a MailEventProcessor.
func NewMailEventProcessor(sender mail.Sender, logger *slog.Logger) *MailEventProcessor {
	return &MailEventProcessor{sender: sender, logger: logger}
}

// Process renders and sends the mail for event.
func (p *MailEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	msg, err := renderMail(event)
	if err != nil {
		return err
	}

	if err := p.sender.Send(ctx, msg); err != nil {
		return err
	}

	p.logger.Info("mail sent",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
	)
	return nil
}

func renderMail(event *domain.OutboxEvent) (mail.Message, error) {
	switch event.EventType {
	case domain.EventTypeOTPRequested:
		var payload domain.OTPRequestedPayload
		if err := decodePayload(event, &payload); err != nil {
			return mail.Message{}, err
		}
		return otpMail(payload), nil

	case domain.EventTypeEmailChanged:
		var payload domain.EmailChangedPayload
		if err := decodePayload(event, &payload); err != nil {
			return mail.Message{}, err
		}
		return mail.Message{
			To:      payload.OldEmail,
			Subject: "Your DheeVerse email address was changed",
			Body: fmt.Sprintf(
				"Hi %s,\n\nThe email address on your DheeVerse account was changed to %s.\n"+
					"If you did not make this change, contact support right away.\n",
				payload.Name, payload.NewEmail,
			),
		}, nil

	case domain.EventTypeJournalReminder:
		var payload domain.JournalReminderPayload
		if err := decodePayload(event, &payload); err != nil {
			return mail.Message{}, err
		}
		return mail.Message{
			To:      payload.Email,
			Subject: "A moment for your journal",
			Body: fmt.Sprintf(
				"Hi %s,\n\nYou have not written in your journal today. "+
					"Take a few minutes to note how you feel.\n",
				payload.Name,
			),
		}, nil
	}

	return mail.Message{}, apperrors.Wrapf(ErrUnknownEventType, "event type %q", event.EventType)
}

func otpMail(payload domain.OTPRequestedPayload) mail.Message {
	subject := "Verify your DheeVerse email"
	intro := "Welcome to DheeVerse! Use this code to verify your email address:"
	if payload.Purpose == string(authDomain.OTPPurposeEmailChange) {
		subject = "Confirm your new DheeVerse email"
		intro = "Use this code to confirm your new email address:"
	}

	return mail.Message{
		To:      payload.Email,
		Subject: subject,
		Body: fmt.Sprintf(
			"Hi %s,\n\n%s\n\n    %s\n\nThe code expires in %d minutes.\n",
			payload.Name, intro, payload.Code, payload.ExpiresInMinutes,
		),
	}
}

func decodePayload(event *domain.OutboxEvent, v any) error {
	if err := json.Unmarshal([]byte(event.Payload), v); err != nil {
		return apperrors.Wrapf(err, "failed to decode %s payload", event.EventType)
	}
	return nil
}
