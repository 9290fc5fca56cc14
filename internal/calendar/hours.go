package calendar

import "time"

const HoursPerDay = 24

// HourGrid produces the timeline's row axis.
type HourGrid struct{}

// HoursOfDay returns one marker per hour 0..23 on day's calendar date.
// On a day with a DST gap the missing wall-clock hour normalizes forward.
func (HourGrid) HoursOfDay(day time.Time) []time.Time {
	y, m, d := day.Date()
	loc := day.Location()
	out := make([]time.Time, 0, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		out = append(out, time.Date(y, m, d, h, 0, 0, 0, loc))
	}
	return out
}

// MidpointIndex is the row the presentation layer scrolls to on open.
func (HourGrid) MidpointIndex() int {
	return HoursPerDay / 2
}

func HourLabel(t time.Time) string {
	return t.Format("3 PM")
}
