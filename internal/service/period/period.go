// Package period provides pure calendar-window math for the stats and
// leaderboard services. Weeks start Monday 00:00:00 local time and all
// intervals are half-open: [start, end).
package period

import (
	"time"
)

// WeekWindow returns the Monday-to-Monday window containing ref shifted
// back by offset weeks. offset 0 is the current week, 1 the previous one,
// and so on. Sunday counts as day 7 so "Monday minus (day-1)" lands on the
// correct Monday for every weekday.
func WeekWindow(ref time.Time, offset int) (start, end time.Time) {
	ref = ref.AddDate(0, 0, -offset*7)

	day := int(ref.Weekday())
	if day == 0 {
		day = 7
	}

	start = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	start = start.AddDate(0, 0, 1-day)
	end = start.AddDate(0, 0, 7)
	return start, end
}

// DayWindow returns the midnight-aligned window containing ref.
func DayWindow(ref time.Time) (start, end time.Time) {
	start = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	end = start.AddDate(0, 0, 1)
	return start, end
}

var weekdayShort = map[string][7]string{
	"ru": {"вс", "пн", "вт", "ср", "чт", "пт", "сб"},
	"en": {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// WeekdayShort returns the localized short weekday name for t. Unknown
// languages fall back to Russian, the portal's original locale.
func WeekdayShort(t time.Time, lang string) string {
	names, ok := weekdayShort[lang]
	if !ok {
		names = weekdayShort["ru"]
	}
	return names[int(t.Weekday())]
}
