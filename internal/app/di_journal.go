package app

import (
	"database/sql"
	"fmt"

	activityRepository "github.com/dheeverse/dheeverse/internal/activity/repository"
	activityUseCase "github.com/dheeverse/dheeverse/internal/activity/usecase"
	journalRepository "github.com/dheeverse/dheeverse/internal/journal/repository"
	journalService "github.com/dheeverse/dheeverse/internal/journal/service"
	journalUseCase "github.com/dheeverse/dheeverse/internal/journal/usecase"
)

// EntryRepository returns the journal entry repository based on database driver.
func (c *Container) EntryRepository() (journalUseCase.EntryRepository, error) {
	return resolve(c, &c.entryRepoInit, "entryRepo", &c.entryRepo, func() (journalUseCase.EntryRepository, error) {
		return repositoryFor(c, "entry repository",
			func(db *sql.DB) journalUseCase.EntryRepository {
				return journalRepository.NewPostgreSQLEntryRepository(db)
			},
			func(db *sql.DB) journalUseCase.EntryRepository {
				return journalRepository.NewMySQLEntryRepository(db)
			},
		)
	})
}

// CompletionRepository returns the activity completion repository based on database driver.
func (c *Container) CompletionRepository() (activityUseCase.CompletionRepository, error) {
	return resolve(c, &c.completionRepoInit, "completionRepo", &c.completionRepo,
		func() (activityUseCase.CompletionRepository, error) {
			return repositoryFor(c, "completion repository",
				func(db *sql.DB) activityUseCase.CompletionRepository {
					return activityRepository.NewPostgreSQLCompletionRepository(db)
				},
				func(db *sql.DB) activityUseCase.CompletionRepository {
					return activityRepository.NewMySQLCompletionRepository(db)
				},
			)
		})
}

// ActivityUseCase returns the activity use case wrapped with business metrics.
func (c *Container) ActivityUseCase() (activityUseCase.UseCase, error) {
	return resolve(c, &c.activityUseCaseInit, "activityUseCase", &c.activityUseCase, c.initActivityUseCase)
}

// JournalUseCase returns the journal use case wrapped with business metrics.
func (c *Container) JournalUseCase() (journalUseCase.UseCase, error) {
	return resolve(c, &c.journalUseCaseInit, "journalUseCase", &c.journalUseCase, c.initJournalUseCase)
}

func (c *Container) initActivityUseCase() (activityUseCase.UseCase, error) {
	repo, err := c.CompletionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get completion repository for activity use case: %w", err)
	}
	encryptor, err := c.FieldEncryptor()
	if err != nil {
		return nil, fmt.Errorf("failed to get field encryptor for activity use case: %w", err)
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for activity use case: %w", err)
	}

	useCase := activityUseCase.NewActivityUseCase(repo, encryptor, c.Logger())
	return activityUseCase.NewActivityUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initJournalUseCase() (journalUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for journal use case: %w", err)
	}
	entryRepo, err := c.EntryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry repository for journal use case: %w", err)
	}
	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for journal use case: %w", err)
	}
	encryptor, err := c.FieldEncryptor()
	if err != nil {
		return nil, fmt.Errorf("failed to get field encryptor for journal use case: %w", err)
	}
	userUC, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for journal use case: %w", err)
	}
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for journal use case: %w", err)
	}
	activityUC, err := c.ActivityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity use case for journal use case: %w", err)
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for journal use case: %w", err)
	}

	useCase := journalUseCase.NewJournalUseCase(
		txManager,
		entryRepo,
		outboxRepo,
		encryptor,
		journalService.NewMoodAnalyzer(),
		userUC,
		userRepo,
		activityUC,
		c.Logger(),
	)
	return journalUseCase.NewJournalUseCaseWithMetrics(useCase, businessMetrics), nil
}
