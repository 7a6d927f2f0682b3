// Package domain defines wellness activity completions.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/dheeverse/dheeverse/internal/errors"
)

// Type is a kind of wellness activity.
type Type string

const (
	TypeBreathing   Type = "breathing"
	TypeMudra       Type = "mudra"
	TypeYoga        Type = "yoga"
	TypeGratitude   Type = "gratitude"
	TypeMindfulness Type = "mindfulness"
)

// Types lists every supported activity type.
var Types = []Type{TypeBreathing, TypeMudra, TypeYoga, TypeGratitude, TypeMindfulness}

// MaxDurationSeconds caps a single recorded session at four hours.
const MaxDurationSeconds = 4 * 60 * 60

// Completion records one finished activity. Note is a ciphertext token at rest.
type Completion struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Type            Type
	DurationSeconds int
	Note            *string
	CompletedAt     time.Time
}

// CompleteInput describes an activity the user just finished.
type CompleteInput struct {
	Type            Type
	DurationSeconds int
	Note            *string
}

// Stats summarizes a user's activity history.
type Stats struct {
	TotalCompletions int
	CountsByType     map[Type]int
	TotalMinutes     int
	CurrentStreak    int
}

// ErrCompletionNotFound indicates the requested completion does not exist.
var ErrCompletionNotFound = errors.Wrap(errors.ErrNotFound, "activity completion not found")

// TypeTotal aggregates completions of one type.
type TypeTotal struct {
	Type    Type
	Count   int
	Seconds int
}

// BuildStats folds per-type totals and a streak into Stats. Every known type is
// present in CountsByType, with zero when never completed.
func BuildStats(totals []TypeTotal, streak int) *Stats {
	stats := &Stats{
		CountsByType:  make(map[Type]int, len(Types)),
		CurrentStreak: streak,
	}
	for _, t := range Types {
		stats.CountsByType[t] = 0
	}
	seconds := 0
	for _, total := range totals {
		stats.CountsByType[total.Type] += total.Count
		stats.TotalCompletions += total.Count
		seconds += total.Seconds
	}
	stats.TotalMinutes = seconds / 60
	return stats
}
