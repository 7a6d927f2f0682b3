package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	journalUseCase "github.com/dheeverse/dheeverse/internal/journal/usecase"
)

// RunReencryptEntries encrypts every stored journal value that is still plaintext.
// It is safe to run repeatedly; already encrypted values are left alone.
func RunReencryptEntries(
	ctx context.Context,
	journal journalUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	batchSize int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if batchSize <= 0 {
		return fmt.Errorf("invalid batch size: %d", batchSize)
	}

	logger.Info("re-encrypting legacy journal entries", slog.Int("batch_size", batchSize))

	count, err := journal.ReencryptLegacy(ctx, batchSize)
	if err != nil {
		return fmt.Errorf("failed to re-encrypt journal entries: %w", err)
	}

	logger.Info("re-encryption completed", slog.Int("updated_count", count))

	if format == "json" {
		return writeJSON(writer, map[string]any{"updated_count": count})
	}
	_, _ = fmt.Fprintf(writer, "Re-encrypted %d journal entries\n", count)
	return nil
}

// RunSendReminders queues a reminder mail for each user who has not journaled today.
func RunSendReminders(
	ctx context.Context,
	journal journalUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	now time.Time,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	count, err := journal.EnqueueReminders(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminders: %w", err)
	}

	logger.Info("reminders enqueued", slog.Int("queued_count", count))

	if format == "json" {
		return writeJSON(writer, map[string]any{"queued_count": count})
	}
	_, _ = fmt.Fprintf(writer, "Queued %d journal reminders\n", count)
	return nil
}
