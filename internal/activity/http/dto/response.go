package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
)

// CompletionResponse is the external representation of a completion.
type CompletionResponse struct {
	ID              uuid.UUID `json:"id" yaml:"id"`
	Type            string    `json:"type" yaml:"type"`
	DurationSeconds int       `json:"duration_seconds" yaml:"duration_seconds"`
	Note            *string   `json:"note,omitempty" yaml:"note,omitempty"`
	CompletedAt     time.Time `json:"completed_at" yaml:"completed_at"`
}

// ListCompletionsResponse wraps a page of completions.
type ListCompletionsResponse struct {
	Data []CompletionResponse `json:"data"`
}

// StatsResponse is the external representation of activity stats.
type StatsResponse struct {
	TotalCompletions int            `json:"total_completions"`
	CountsByType     map[string]int `json:"counts_by_type"`
	TotalMinutes     int            `json:"total_minutes"`
	CurrentStreak    int            `json:"current_streak"`
}

// ToCompletionResponse converts a domain completion.
func ToCompletionResponse(c *domain.Completion) CompletionResponse {
	return CompletionResponse{
		ID:              c.ID,
		Type:            string(c.Type),
		DurationSeconds: c.DurationSeconds,
		Note:            c.Note,
		CompletedAt:     c.CompletedAt,
	}
}

// ToCompletionResponses converts a slice of domain completions.
func ToCompletionResponses(completions []*domain.Completion) []CompletionResponse {
	out := make([]CompletionResponse, 0, len(completions))
	for _, c := range completions {
		out = append(out, ToCompletionResponse(c))
	}
	return out
}

// ToStatsResponse converts domain stats.
func ToStatsResponse(stats *domain.Stats) StatsResponse {
	counts := make(map[string]int, len(stats.CountsByType))
	for t, n := range stats.CountsByType {
		counts[string(t)] = n
	}
	return StatsResponse{
		TotalCompletions: stats.TotalCompletions,
		CountsByType:     counts,
		TotalMinutes:     stats.TotalMinutes,
		CurrentStreak:    stats.CurrentStreak,
	}
}
