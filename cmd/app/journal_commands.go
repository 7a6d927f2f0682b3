package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dheeverse/dheeverse/cmd/app/commands"
	"github.com/dheeverse/dheeverse/internal/app"
	"github.com/dheeverse/dheeverse/internal/config"
)

func getJournalCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "reencrypt-entries",
			Usage: "Encrypt journal fields that were stored before encryption was enabled",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "batch-size",
					Aliases: []string{"b"},
					Value:   100,
					Usage:   "Number of entries to process per batch",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				journalUseCase, err := container.JournalUseCase()
				if err != nil {
					return err
				}

				return commands.RunReencryptEntries(
					ctx,
					journalUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("batch-size")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "send-reminders",
			Usage: "Queue reminder mails for users who have not journaled today",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				journalUseCase, err := container.JournalUseCase()
				if err != nil {
					return err
				}

				return commands.RunSendReminders(
					ctx,
					journalUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					time.Now().UTC(),
					cmd.String("format"),
				)
			},
		},
	}
}
