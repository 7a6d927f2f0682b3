// Package domain defines journal entries, moods and mood analytics.
package domain

// EntryType is how an entry was captured.
type EntryType string

const (
	EntryTypeText   EntryType = "text"
	EntryTypeVoice  EntryType = "voice"
	EntryTypeDoodle EntryType = "doodle"
)

// EntryTypes lists every supported entry type.
var EntryTypes = []EntryType{EntryTypeText, EntryTypeVoice, EntryTypeDoodle}

// Mood is the tagged emotional tone of an entry.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodCalm    Mood = "calm"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"
	MoodAngry   Mood = "angry"
)

// Moods lists every mood in display order.
var Moods = []Mood{MoodHappy, MoodCalm, MoodNeutral, MoodSad, MoodAnxious, MoodAngry}

// Score returns the 1..5 wellbeing score associated with a mood.
func (m Mood) Score() int {
	switch m {
	case MoodHappy:
		return 5
	case MoodCalm:
		return 4
	case MoodSad, MoodAnxious:
		return 2
	case MoodAngry:
		return 1
	default:
		return 3
	}
}

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

const (
	MinMoodScore = 1
	MaxMoodScore = 5

	// MaxTitleLength bounds entry titles.
	MaxTitleLength = 200
	// MaxContentLength bounds the plaintext content of an entry.
	MaxContentLength = 20000
	// MaxTags bounds the number of tags on an entry.
	MaxTags = 20
)
