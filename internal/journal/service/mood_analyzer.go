// Package service provides the rule-based mood analyzer that tags journal
// entries and writes their reflections.
package service

import (
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/dheeverse/dheeverse/internal/journal/domain"
)

// Analysis is the analyzer output for one entry.
type Analysis struct {
	Mood           domain.Mood
	MoodScore      int
	AIInsight      string
	Recommendation string
	Question       string
}

// MoodAnalyzer tags text with a mood and writes reflections for it.
type MoodAnalyzer interface {
	// Analyze detects the mood of text. Empty or unmatched text is neutral.
	Analyze(text string) Analysis

	// Reflect writes reflections for a mood the user chose themselves.
	Reflect(mood domain.Mood, text string) Analysis
}

// lexicon maps keywords to moods. Keys are lower-case single words.
var lexicon = map[string]domain.Mood{
	"happy": domain.MoodHappy, "joy": domain.MoodHappy, "joyful": domain.MoodHappy,
	"grateful": domain.MoodHappy, "thankful": domain.MoodHappy, "excited": domain.MoodHappy,
	"great": domain.MoodHappy, "wonderful": domain.MoodHappy, "love": domain.MoodHappy,
	"amazing": domain.MoodHappy, "proud": domain.MoodHappy, "delighted": domain.MoodHappy,

	"calm": domain.MoodCalm, "peaceful": domain.MoodCalm, "relaxed": domain.MoodCalm,
	"serene": domain.MoodCalm, "content": domain.MoodCalm, "rested": domain.MoodCalm,
	"balanced": domain.MoodCalm, "meditated": domain.MoodCalm, "quiet": domain.MoodCalm,

	"sad": domain.MoodSad, "lonely": domain.MoodSad, "down": domain.MoodSad,
	"cried": domain.MoodSad, "crying": domain.MoodSad, "hopeless": domain.MoodSad,
	"miss": domain.MoodSad, "empty": domain.MoodSad, "tired": domain.MoodSad,
	"depressed": domain.MoodSad, "heartbroken": domain.MoodSad, "grief": domain.MoodSad,

	"anxious": domain.MoodAnxious, "worried": domain.MoodAnxious, "nervous": domain.MoodAnxious,
	"stressed": domain.MoodAnxious, "stress": domain.MoodAnxious, "overwhelmed": domain.MoodAnxious,
	"panic": domain.MoodAnxious, "afraid": domain.MoodAnxious, "scared": domain.MoodAnxious,
	"restless": domain.MoodAnxious, "deadline": domain.MoodAnxious, "exam": domain.MoodAnxious,

	"angry": domain.MoodAngry, "furious": domain.MoodAngry, "annoyed": domain.MoodAngry,
	"frustrated": domain.MoodAngry, "irritated": domain.MoodAngry, "mad": domain.MoodAngry,
	"hate": domain.MoodAngry, "rage": domain.MoodAngry, "unfair": domain.MoodAngry,
}

// negations flip a following positive keyword to sad and neutralize a negative one.
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "dont": {}, "don't": {}, "isnt": {}, "isn't": {}, "wasnt": {}, "wasn't": {},
}

// tieOrder resolves equal keyword counts; heavier moods win so they are not missed.
var tieOrder = []domain.Mood{
	domain.MoodAnxious, domain.MoodSad, domain.MoodAngry, domain.MoodHappy, domain.MoodCalm,
}

type reflection struct {
	insights        []string
	recommendations []string
	questions       []string
}

var reflections = map[domain.Mood]reflection{
	domain.MoodHappy: {
		insights: []string{
			"Your words carry a bright, uplifted energy today.",
			"There is a clear sense of joy and appreciation in this entry.",
		},
		recommendations: []string{
			"Write down three things that made today good so you can revisit them later.",
			"Share this feeling with someone close to you.",
		},
		questions: []string{
			"What made this moment feel so good?",
			"How can you invite more of this into your week?",
		},
	},
	domain.MoodCalm: {
		insights: []string{
			"You seem grounded and at ease.",
			"This entry reflects a steady, peaceful state of mind.",
		},
		recommendations: []string{
			"Anchor this calm with a five minute breathing session.",
			"Try a short mindfulness practice to deepen this stillness.",
		},
		questions: []string{
			"What helped you feel this settled?",
			"Where in your body do you notice this calm?",
		},
	},
	domain.MoodNeutral: {
		insights: []string{
			"Today reads as balanced, neither high nor low.",
			"You are observing your day with an even tone.",
		},
		recommendations: []string{
			"A gratitude note can add warmth to an ordinary day.",
			"Take a mindful walk and notice one new detail around you.",
		},
		questions: []string{
			"What is one small thing you are looking forward to?",
			"If today had a colour, what would it be?",
		},
	},
	domain.MoodSad: {
		insights: []string{
			"It sounds like you are carrying something heavy right now.",
			"There is sadness in these words, and it is okay to feel it.",
		},
		recommendations: []string{
			"Be gentle with yourself and reach out to someone you trust.",
			"A slow breathing exercise can help soften heavy moments.",
		},
		questions: []string{
			"What would comfort you most right now?",
			"Who could you lean on today?",
		},
	},
	domain.MoodAnxious: {
		insights: []string{
			"Your mind seems busy with worries.",
			"This entry shows signs of stress and tension.",
		},
		recommendations: []string{
			"Try box breathing: inhale four, hold four, exhale four, hold four.",
			"Break what is worrying you into one small next step.",
		},
		questions: []string{
			"What is within your control right now?",
			"What would you tell a friend who felt this way?",
		},
	},
	domain.MoodAngry: {
		insights: []string{
			"Something has clearly frustrated you.",
			"There is strong energy in this entry that deserves attention.",
		},
		recommendations: []string{
			"Move your body for a few minutes to release the tension.",
			"Pause and take ten slow breaths before responding to anyone.",
		},
		questions: []string{
			"What boundary might have been crossed?",
			"What do you need in order to let this go?",
		},
	},
}

type lexiconAnalyzer struct{}

// NewMoodAnalyzer creates the keyword lexicon analyzer.
func NewMoodAnalyzer() MoodAnalyzer {
	return &lexiconAnalyzer{}
}

func (a *lexiconAnalyzer) Analyze(text string) Analysis {
	return a.Reflect(detectMood(text), text)
}

func (a *lexiconAnalyzer) Reflect(mood domain.Mood, text string) Analysis {
	if !mood.Valid() {
		mood = domain.MoodNeutral
	}
	r := reflections[mood]
	seed := textSeed(text)
	return Analysis{
		Mood:           mood,
		MoodScore:      mood.Score(),
		AIInsight:      pick(r.insights, seed),
		Recommendation: pick(r.recommendations, seed>>8),
		Question:       pick(r.questions, seed>>16),
	}
}

func detectMood(text string) domain.Mood {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	counts := map[domain.Mood]int{}
	negated := false
	for _, word := range words {
		if _, ok := negations[word]; ok {
			negated = true
			continue
		}
		mood, ok := lexicon[word]
		if !ok {
			negated = false
			continue
		}
		if negated {
			if mood == domain.MoodHappy || mood == domain.MoodCalm {
				counts[domain.MoodSad]++
			}
			negated = false
			continue
		}
		counts[mood]++
	}

	best, bestCount := domain.MoodNeutral, 0
	for _, mood := range tieOrder {
		if counts[mood] > bestCount {
			best, bestCount = mood, counts[mood]
		}
	}
	return best
}

// textSeed makes template choice stable for the same text.
func textSeed(text string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	return h.Sum32()
}

func pick(options []string, seed uint32) string {
	return options[int(seed%uint32(len(options)))]
}
