package domain

import (
	"github.com/dheeverse/dheeverse/internal/errors"
)

var (
	// ErrEntryNotFound indicates the entry does not exist or belongs to another user.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "journal entry not found")

	// ErrEntryArchived indicates the entry is archived and needs the archive PIN to be read.
	ErrEntryArchived = errors.Wrap(errors.ErrForbidden, "journal entry is archived")

	// ErrEntryNotArchived indicates an unarchive of an entry that is not archived.
	ErrEntryNotArchived = errors.Wrap(errors.ErrConflict, "journal entry is not archived")

	// ErrInvalidDateRange indicates an analytics range whose end precedes its start.
	ErrInvalidDateRange = errors.Wrap(errors.ErrInvalidInput, "invalid date range")
)
