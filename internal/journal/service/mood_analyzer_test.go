package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dheeverse/dheeverse/internal/journal/domain"
)

func TestLexiconAnalyzer_Analyze(t *testing.T) {
	analyzer := NewMoodAnalyzer()

	tests := []struct {
		name string
		text string
		want domain.Mood
	}{
		{"empty", "", domain.MoodNeutral},
		{"no keywords", "Went to the market and bought vegetables.", domain.MoodNeutral},
		{"happy", "Feeling grateful today, the sunrise was wonderful!", domain.MoodHappy},
		{"calm", "A peaceful evening, I feel relaxed.", domain.MoodCalm},
		{"sad", "I feel so lonely and tired tonight", domain.MoodSad},
		{"anxious", "Worried about the exam deadline, so stressed", domain.MoodAnxious},
		{"angry", "I am furious, it was so unfair", domain.MoodAngry},
		{"case insensitive", "HAPPY HAPPY", domain.MoodHappy},
		{"negated positive", "I am not happy", domain.MoodSad},
		{"negated negative", "I was never worried", domain.MoodNeutral},
		{"tie prefers anxious", "happy but anxious", domain.MoodAnxious},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Analyze(tt.text)

			assert.Equal(t, tt.want, got.Mood)
			assert.Equal(t, tt.want.Score(), got.MoodScore)
			assert.NotEmpty(t, got.AIInsight)
			assert.NotEmpty(t, got.Recommendation)
			assert.NotEmpty(t, got.Question)
		})
	}
}

func TestLexiconAnalyzer_Deterministic(t *testing.T) {
	analyzer := NewMoodAnalyzer()
	text := "Feeling grateful today"

	assert.Equal(t, analyzer.Analyze(text), analyzer.Analyze(text))
}

func TestLexiconAnalyzer_Reflect(t *testing.T) {
	analyzer := NewMoodAnalyzer()

	t.Run("UsesChosenMood", func(t *testing.T) {
		got := analyzer.Reflect(domain.MoodCalm, "I am furious")

		assert.Equal(t, domain.MoodCalm, got.Mood)
		assert.Equal(t, 4, got.MoodScore)
		assert.Contains(t, reflections[domain.MoodCalm].insights, got.AIInsight)
	})

	t.Run("UnknownMoodIsNeutral", func(t *testing.T) {
		got := analyzer.Reflect(domain.Mood("ecstatic"), "")

		assert.Equal(t, domain.MoodNeutral, got.Mood)
	})
}
