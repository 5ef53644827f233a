// Package deadline computes business-day review deadlines.
package deadline

import "time"

// DefaultDays is the standard review window in business days.
const DefaultDays = 3

// Business returns the date the given number of business days after
// from. Saturdays and Sundays do not count toward the total.
func Business(from time.Time, days int) time.Time {
	t := from
	for added := 0; added < days; {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return t
}

// Format renders a deadline as "Monday January 2" with no leading zero
// on the day.
func Format(t time.Time) string {
	return t.Format("Monday January 2")
}
