package domain

import (
	"math"
	"sort"
	"time"
)

// DateLayout is the calendar date format used by analytics.
const DateLayout = "2006-01-02"

// DailyMood aggregates the entries written on one UTC day.
type DailyMood struct {
	Date         string
	Counts       map[Mood]int
	AverageScore float64
}

// MoodAnalytics summarizes mood data over a date range.
type MoodAnalytics struct {
	From             time.Time
	To               time.Time
	TotalEntries     int
	AverageMoodScore float64
	Distribution     map[Mood]int
	Daily            []DailyMood
	CurrentStreak    int
}

// BuildMoodAnalytics aggregates points per UTC day. Days without entries are
// omitted from Daily, which is ordered by date.
func BuildMoodAnalytics(points []MoodPoint, from, to time.Time, streak int) *MoodAnalytics {
	analytics := &MoodAnalytics{
		From:          from,
		To:            to,
		Distribution:  make(map[Mood]int, len(Moods)),
		Daily:         []DailyMood{},
		CurrentStreak: streak,
	}
	for _, mood := range Moods {
		analytics.Distribution[mood] = 0
	}

	type dayTotals struct {
		counts map[Mood]int
		sum    int
		n      int
	}
	days := map[string]*dayTotals{}
	order := []string{}

	total := 0
	for _, p := range points {
		analytics.Distribution[p.Mood]++
		total += p.MoodScore

		key := p.CreatedAt.UTC().Format(DateLayout)
		d, ok := days[key]
		if !ok {
			d = &dayTotals{counts: map[Mood]int{}}
			days[key] = d
			order = append(order, key)
		}
		d.counts[p.Mood]++
		d.sum += p.MoodScore
		d.n++
	}

	analytics.TotalEntries = len(points)
	if len(points) > 0 {
		analytics.AverageMoodScore = round2(float64(total) / float64(len(points)))
	}

	sort.Strings(order)
	for _, key := range order {
		d := days[key]
		analytics.Daily = append(analytics.Daily, DailyMood{
			Date:         key,
			Counts:       d.counts,
			AverageScore: round2(float64(d.sum) / float64(d.n)),
		})
	}
	return analytics
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
