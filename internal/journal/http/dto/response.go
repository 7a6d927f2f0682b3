package dto

import (
	"time"

	"github.com/google/uuid"

	activityDTO "github.com/dheeverse/dheeverse/internal/activity/http/dto"
	"github.com/dheeverse/dheeverse/internal/journal/domain"
)

// EntryResponse is the external representation of a decrypted entry.
type EntryResponse struct {
	ID             uuid.UUID `json:"id" yaml:"id"`
	Type           string    `json:"type" yaml:"type"`
	Title          string    `json:"title" yaml:"title"`
	Content        *string   `json:"content" yaml:"content"`
	AIInsight      *string   `json:"ai_insight" yaml:"ai_insight"`
	Recommendation *string   `json:"recommendation" yaml:"recommendation"`
	Question       *string   `json:"question" yaml:"question"`
	Mood           string    `json:"mood" yaml:"mood"`
	MoodScore      int       `json:"mood_score" yaml:"mood_score"`
	Tags           []string  `json:"tags" yaml:"tags"`
	Archived       bool      `json:"archived" yaml:"archived"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" yaml:"updated_at"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Data []EntryResponse `json:"data"`
}

// ToEntryResponse converts a domain entry.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryResponse{
		ID:             e.ID,
		Type:           string(e.Type),
		Title:          e.Title,
		Content:        e.Content,
		AIInsight:      e.AIInsight,
		Recommendation: e.Recommendation,
		Question:       e.Question,
		Mood:           string(e.Mood),
		MoodScore:      e.MoodScore,
		Tags:           tags,
		Archived:       e.Archived,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []*domain.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryResponse(e))
	}
	return out
}

// DailyMoodResponse is one day of mood analytics.
type DailyMoodResponse struct {
	Date         string         `json:"date"`
	Counts       map[string]int `json:"counts"`
	AverageScore float64        `json:"average_score"`
}

// MoodAnalyticsResponse is the external representation of mood analytics.
type MoodAnalyticsResponse struct {
	From             string              `json:"from"`
	To               string              `json:"to"`
	TotalEntries     int                 `json:"total_entries"`
	AverageMoodScore float64             `json:"average_mood_score"`
	Distribution     map[string]int      `json:"distribution"`
	Daily            []DailyMoodResponse `json:"daily"`
	CurrentStreak    int                 `json:"current_streak"`
}

func moodCounts(counts map[domain.Mood]int) map[string]int {
	out := make(map[string]int, len(counts))
	for mood, n := range counts {
		out[string(mood)] = n
	}
	return out
}

// ToMoodAnalyticsResponse converts domain analytics.
func ToMoodAnalyticsResponse(a *domain.MoodAnalytics) MoodAnalyticsResponse {
	daily := make([]DailyMoodResponse, 0, len(a.Daily))
	for _, d := range a.Daily {
		daily = append(daily, DailyMoodResponse{
			Date:         d.Date,
			Counts:       moodCounts(d.Counts),
			AverageScore: d.AverageScore,
		})
	}
	return MoodAnalyticsResponse{
		From:             a.From.Format(domain.DateLayout),
		To:               a.To.Format(domain.DateLayout),
		TotalEntries:     a.TotalEntries,
		AverageMoodScore: a.AverageMoodScore,
		Distribution:     moodCounts(a.Distribution),
		Daily:            daily,
		CurrentStreak:    a.CurrentStreak,
	}
}

// ExportProfileResponse is the profile section of an export.
type ExportProfileResponse struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ExportResponse is the downloadable data export document.
type ExportResponse struct {
	ExportedAt time.Time                        `json:"exported_at" yaml:"exported_at"`
	Profile    ExportProfileResponse            `json:"profile" yaml:"profile"`
	Entries    []EntryResponse                  `json:"entries" yaml:"entries"`
	Activities []activityDTO.CompletionResponse `json:"activities" yaml:"activities"`
}

// ToExportResponse converts a domain export.
func ToExportResponse(e *domain.Export) ExportResponse {
	return ExportResponse{
		ExportedAt: e.ExportedAt,
		Profile: ExportProfileResponse{
			ID:        e.Profile.ID,
			Name:      e.Profile.Name,
			Email:     e.Profile.Email,
			CreatedAt: e.Profile.CreatedAt,
		},
		Entries:    ToEntryResponses(e.Entries),
		Activities: activityDTO.ToCompletionResponses(e.Activities),
	}
}
