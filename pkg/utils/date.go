package utils

import "time"

// CountWeekdays returns the number of weekdays in [from, to], inclusive.
// Exchange holidays are not modeled; weekday count is the expected-bar
// denominator used for coverage.
func CountWeekdays(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	from = truncateDay(from)
	to = truncateDay(to)

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
