package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/dheeverse/dheeverse/internal/crypto/domain"
	cryptoService "github.com/dheeverse/dheeverse/internal/crypto/service"
	"github.com/dheeverse/dheeverse/internal/database"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	"github.com/dheeverse/dheeverse/internal/journal/domain"
	"github.com/dheeverse/dheeverse/internal/journal/service"
	outboxDomain "github.com/dheeverse/dheeverse/internal/outbox/domain"
	"github.com/dheeverse/dheeverse/internal/streak"
	appValidation "github.com/dheeverse/dheeverse/internal/validation"
)

// streakLookback bounds how far back entry dates are loaded for the streak.
const streakLookback = 366 * 24 * time.Hour

type journalUseCase struct {
	txManager   database.TxManager
	entryRepo   EntryRepository
	outboxRepo  OutboxEventRepository
	encryptor   cryptoService.FieldEncryptor
	analyzer    service.MoodAnalyzer
	pinVerifier ArchivePINVerifier
	users       UserReader
	activities  ActivityExporter
	logger      *slog.Logger
}

func entryTypeValues() []string {
	values := make([]string, 0, len(domain.EntryTypes))
	for _, t := range domain.EntryTypes {
		values = append(values, string(t))
	}
	return values
}

func moodValues() []string {
	values := make([]string, 0, len(domain.Moods))
	for _, m := range domain.Moods {
		values = append(values, string(m))
	}
	return values
}

var tagRules = []validation.Rule{
	validation.Length(0, domain.MaxTags),
	validation.Each(validation.Required, validation.Length(1, 50)),
}

func validateMood(mood *domain.Mood) error {
	if mood == nil {
		return nil
	}
	return validation.Validate(string(*mood), appValidation.OneOf(moodValues()...))
}

func validateCreateInput(input *domain.CreateEntryInput) error {
	contentRules := []validation.Rule{validation.Length(0, domain.MaxContentLength)}
	if input.Type != domain.EntryTypeDoodle {
		contentRules = append(contentRules, validation.Required, appValidation.NotBlank)
	}

	err := validation.ValidateStruct(input,
		validation.Field(&input.Type,
			validation.Required,
			validation.By(func(value any) error {
				return validation.Validate(string(input.Type), appValidation.OneOf(entryTypeValues()...))
			}),
		),
		validation.Field(&input.Title, validation.Length(0, domain.MaxTitleLength)),
		validation.Field(&input.Content, contentRules...),
		validation.Field(&input.Mood, validation.By(func(value any) error { return validateMood(input.Mood) })),
		validation.Field(&input.Tags, tagRules...),
	)
	return appValidation.WrapValidationError(err)
}

func validateUpdateInput(input *domain.UpdateEntryInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Title, validation.NilOrNotEmpty, validation.Length(0, domain.MaxTitleLength)),
		validation.Field(&input.Content, validation.Length(0, domain.MaxContentLength)),
		validation.Field(&input.Mood, validation.By(func(value any) error { return validateMood(input.Mood) })),
		validation.Field(&input.Tags, tagRules...),
	)
	return appValidation.WrapValidationError(err)
}

// validateUpdateContent applies the create-time content rule for the stored entry type.
func validateUpdateContent(entryType domain.EntryType, content *string) error {
	if content == nil || entryType == domain.EntryTypeDoodle {
		return nil
	}
	err := validation.Validate(*content, validation.Required, appValidation.NotBlank)
	if err != nil {
		err = validation.Errors{"content": err}
	}
	return appValidation.WrapValidationError(err)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func applyAnalysis(entry *domain.Entry, analysis service.Analysis) {
	entry.Mood = analysis.Mood
	entry.MoodScore = analysis.MoodScore
	entry.AIInsight = &analysis.AIInsight
	entry.Recommendation = &analysis.Recommendation
	entry.Question = &analysis.Question
}

func (j *journalUseCase) analyze(mood *domain.Mood, content string) service.Analysis {
	if mood != nil {
		return j.analyzer.Reflect(*mood, content)
	}
	return j.analyzer.Analyze(content)
}

// seal returns a copy of entry with its sensitive fields encrypted.
func (j *journalUseCase) seal(entry *domain.Entry) (*domain.Entry, error) {
	fields, err := j.encryptor.EncryptSensitiveFields(entry.SensitiveFields)
	if err != nil {
		return nil, err
	}
	sealed := *entry
	sealed.SensitiveFields = fields
	return &sealed, nil
}

// open decrypts the sensitive fields of a stored entry in place.
func (j *journalUseCase) open(entry *domain.Entry) (*domain.Entry, error) {
	fields, err := j.encryptor.DecryptSensitiveFields(entry.SensitiveFields)
	if err != nil {
		return nil, err
	}
	entry.SensitiveFields = fields
	return entry, nil
}

func (j *journalUseCase) openAll(entries []*domain.Entry) ([]*domain.Entry, error) {
	for _, entry := range entries {
		if _, err := j.open(entry); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// Create analyzes, encrypts and stores a new entry.
func (j *journalUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	input *domain.CreateEntryInput,
) (*domain.Entry, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	content := input.Content
	entry := &domain.Entry{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		Type:      input.Type,
		Title:     strings.TrimSpace(input.Title),
		Tags:      normalizeTags(input.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	entry.Content = &content
	applyAnalysis(entry, j.analyze(input.Mood, content))

	sealed, err := j.seal(entry)
	if err != nil {
		return nil, err
	}
	if err := j.entryRepo.Create(ctx, sealed); err != nil {
		return nil, err
	}

	j.logger.Debug("journal entry created",
		slog.String("entry_id", entry.ID.String()),
		slog.String("mood", string(entry.Mood)))

	return entry, nil
}

// Get returns a non-archived entry.
func (j *journalUseCase) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Entry, error) {
	entry, err := j.entryRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if entry.Archived {
		return nil, domain.ErrEntryArchived
	}
	return j.open(entry)
}

// List returns non-archived entries newest first.
func (j *journalUseCase) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Entry, error) {
	entries, err := j.entryRepo.List(ctx, userID, false, offset, limit)
	if err != nil {
		return nil, err
	}
	return j.openAll(entries)
}

// Update applies the changes and re-runs the analyzer when content or mood changed.
func (j *journalUseCase) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	input *domain.UpdateEntryInput,
) (*domain.Entry, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	entry, err := j.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validateUpdateContent(entry.Type, input.Content); err != nil {
		return nil, err
	}

	if input.Title != nil {
		entry.Title = strings.TrimSpace(*input.Title)
	}
	if input.Tags != nil {
		entry.Tags = normalizeTags(input.Tags)
	}

	contentChanged := input.Content != nil && (entry.Content == nil || *entry.Content != *input.Content)
	if contentChanged {
		content := *input.Content
		entry.Content = &content
	}
	if contentChanged || input.Mood != nil {
		content := ""
		if entry.Content != nil {
			content = *entry.Content
		}
		applyAnalysis(entry, j.analyze(input.Mood, content))
	}
	entry.UpdatedAt = time.Now().UTC()

	sealed, err := j.seal(entry)
	if err != nil {
		return nil, err
	}
	if err := j.entryRepo.Update(ctx, sealed); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an entry, archived or not.
func (j *journalUseCase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return j.entryRepo.Delete(ctx, userID, id)
}

// Archive flags the entry as archived. Archiving twice is a no-op.
func (j *journalUseCase) Archive(ctx context.Context, userID, id uuid.UUID) error {
	entry, err := j.entryRepo.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if entry.Archived {
		return nil
	}
	entry.Archived = true
	entry.UpdatedAt = time.Now().UTC()
	return j.entryRepo.Update(ctx, entry)
}

// Unarchive checks the PIN and restores the entry to the journal.
func (j *journalUseCase) Unarchive(ctx context.Context, userID, id uuid.UUID, pin string) (*domain.Entry, error) {
	if err := j.pinVerifier.VerifyArchivePIN(ctx, userID, pin); err != nil {
		return nil, err
	}

	entry, err := j.entryRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !entry.Archived {
		return nil, domain.ErrEntryNotArchived
	}

	entry.Archived = false
	entry.UpdatedAt = time.Now().UTC()
	if err := j.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return j.open(entry)
}

// ListArchived checks the PIN and lists archived entries newest first.
func (j *journalUseCase) ListArchived(
	ctx context.Context,
	userID uuid.UUID,
	pin string,
	offset, limit int,
) ([]*domain.Entry, error) {
	if err := j.pinVerifier.VerifyArchivePIN(ctx, userID, pin); err != nil {
		return nil, err
	}

	entries, err := j.entryRepo.List(ctx, userID, true, offset, limit)
	if err != nil {
		return nil, err
	}
	return j.openAll(entries)
}

// MoodAnalytics aggregates mood columns only; no field is decrypted.
func (j *journalUseCase) MoodAnalytics(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) (*domain.MoodAnalytics, error) {
	from, to = streak.Day(from), streak.Day(to)
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}

	points, err := j.entryRepo.ListMoodPoints(ctx, userID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	times, err := j.entryRepo.ListEntryTimes(ctx, userID, now.Add(-streakLookback))
	if err != nil {
		return nil, err
	}

	return domain.BuildMoodAnalytics(points, from, to, streak.Current(times, now)), nil
}

// Export collects the user's profile, entries and activities in plaintext.
func (j *journalUseCase) Export(ctx context.Context, userID uuid.UUID) (*domain.Export, error) {
	user, err := j.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := j.entryRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := j.openAll(entries); err != nil {
		return nil, err
	}

	activities, err := j.activities.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	j.logger.Info("journal exported",
		slog.String("user_id", userID.String()),
		slog.Int("entries", len(entries)),
		slog.Int("activities", len(activities)))

	return &domain.Export{
		ExportedAt: time.Now().UTC(),
		Profile: domain.ExportProfile{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
		Entries:    entries,
		Activities: activities,
	}, nil
}

// sealLegacy encrypts every present value that is not already a token.
func (j *journalUseCase) sealLegacy(fields cryptoDomain.SensitiveFields) (cryptoDomain.SensitiveFields, bool, error) {
	changed := false
	out, err := fields.Map(func(value string) (string, error) {
		if cryptoDomain.IsToken(value) {
			return value, nil
		}
		changed = true
		return j.encryptor.Encrypt(value)
	})
	return out, changed, err
}

// ReencryptLegacy walks every entry in id order and encrypts legacy plaintext.
func (j *journalUseCase) ReencryptLegacy(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "batch size must be positive")
	}

	rewritten := 0
	afterID := uuid.Nil
	for {
		entries, err := j.entryRepo.ListAfter(ctx, afterID, batchSize)
		if err != nil {
			return rewritten, err
		}

		for _, entry := range entries {
			fields, changed, err := j.sealLegacy(entry.SensitiveFields)
			if err != nil {
				return rewritten, err
			}
			if !changed {
				continue
			}
			entry.SensitiveFields = fields
			if err := j.entryRepo.Update(ctx, entry); err != nil {
				return rewritten, err
			}
			rewritten++
		}

		if len(entries) < batchSize {
			break
		}
		afterID = entries[len(entries)-1].ID
	}

	j.logger.Info("legacy journal entries re-encrypted", slog.Int("rewritten", rewritten))
	return rewritten, nil
}

// EnqueueReminders writes one reminder event per recipient in a single transaction.
func (j *journalUseCase) EnqueueReminders(ctx context.Context, now time.Time) (int, error) {
	recipients, err := j.entryRepo.ListReminderRecipients(ctx, streak.Day(now))
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		return 0, nil
	}

	err = j.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, r := range recipients {
			event, err := outboxDomain.NewOutboxEvent(
				outboxDomain.EventTypeJournalReminder,
				outboxDomain.JournalReminderPayload{Email: r.Email, Name: r.Name},
			)
			if err != nil {
				return apperrors.Wrap(err, "failed to marshal event payload")
			}
			if err := j.outboxRepo.Create(ctx, event); err != nil {
				return apperrors.Wrap(err, "failed to create outbox event")
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	j.logger.Info("journal reminders queued", slog.Int("count", len(recipients)))
	return len(recipients), nil
}

// NewJournalUseCase creates the journal use case.
func NewJournalUseCase(
	txManager database.TxManager,
	entryRepo EntryRepository,
	outboxRepo OutboxEventRepository,
	encryptor cryptoService.FieldEncryptor,
	analyzer service.MoodAnalyzer,
	pinVerifier ArchivePINVerifier,
	users UserReader,
	activities ActivityExporter,
	logger *slog.Logger,
) UseCase {
	return &journalUseCase{
		txManager:   txManager,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		encryptor:   encryptor,
		analyzer:    analyzer,
		pinVerifier: pinVerifier,
		users:       users,
		activities:  activities,
		logger:      logger,
	}
}
