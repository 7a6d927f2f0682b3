// Package streak computes consecutive-day streaks for journaling and activities.
package streak

import (
	"sort"
	"time"
)

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Current returns the number of consecutive UTC days with at least one
// timestamp, counting back from today. A streak whose last day is yesterday
// is still current; anything older is 0.
func Current(timestamps []time.Time, now time.Time) int {
	if len(timestamps) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(timestamps))
	days := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		day := Day(ts)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := Day(now)
	expected := today
	if days[0].Before(today) {
		expected = today.AddDate(0, 0, -1)
	}

	count := 0
	for _, day := range days {
		if day.After(expected) {
			continue
		}
		if !day.Equal(expected) {
			break
		}
		count++
		expected = expected.AddDate(0, 0, -1)
	}
	return count
}
