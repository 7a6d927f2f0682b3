package app

import (
	"fmt"

	"github.com/dheeverse/dheeverse/internal/mail"
	outboxUseCase "github.com/dheeverse/dheeverse/internal/outbox/usecase"
)

// MailSender returns an SMTP sender when SMTP_HOST is set and a logging sender otherwise.
func (c *Container) MailSender() mail.Sender {
	c.mailSenderInit.Do(func() {
		if c.config.SMTPHost == "" {
			c.mailSender = mail.NewLogSender(c.Logger())
			return
		}
		c.mailSender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     c.config.SMTPHost,
			Port:     c.config.SMTPPort,
			Username: c.config.SMTPUsername,
			Password: c.config.SMTPPassword,
			From:     c.config.MailFrom,
		})
	})
	return c.mailSender
}

// OutboxUseCase returns the outbox worker that delivers queued mail.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	return resolve(c, &c.outboxUseCaseInit, "outboxUseCase", &c.outboxUseCase, c.initOutboxUseCase)
}

func (c *Container) initOutboxUseCase() (outboxUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}
	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	logger := c.Logger()
	useCaseConfig := outboxUseCase.Config{
		Interval:      c.config.WorkerInterval,
		BatchSize:     c.config.WorkerBatchSize,
		MaxRetries:    c.config.WorkerMaxRetries,
		RetryInterval: c.config.WorkerRetryInterval,
	}
	processor := outboxUseCase.NewMailEventProcessor(c.MailSender(), logger)

	return outboxUseCase.NewOutboxUseCase(useCaseConfig, txManager, outboxRepo, processor, logger), nil
}
