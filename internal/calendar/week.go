package calendar

import (
	"fmt"
	"strings"
	"time"
)

const DaysPerWeek = 7

type WeekDay struct {
	Date time.Time
	Name string
}

// Short is the three letter label used by the week strip.
func (d WeekDay) Short() string {
	if len(d.Name) < 3 {
		return d.Name
	}
	return d.Name[:3]
}

// Week computes calendar weeks starting on FirstDay.
type Week struct {
	FirstDay time.Weekday
}

func NewWeek(firstDay time.Weekday) Week {
	return Week{FirstDay: firstDay}
}

// CurrentWeek returns the seven days of the week containing ref, in ref's location,
// ordered from FirstDay.
func (w Week) CurrentWeek(ref time.Time) []WeekDay {
	offset := (int(ref.Weekday()) - int(w.FirstDay) + DaysPerWeek) % DaysPerWeek
	y, m, d := ref.Date()
	loc := ref.Location()

	out := make([]WeekDay, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		date := time.Date(y, m, d-offset+i, 0, 0, 0, 0, loc)
		out = append(out, WeekDay{Date: date, Name: date.Weekday().String()})
	}
	return out
}

// ParseWeekday accepts full or three letter english weekday names.
func ParseWeekday(raw string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if normalized == name || normalized == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("calendar: unknown weekday %q", raw)
}

func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func Contains(week []WeekDay, day time.Time) bool {
	for _, wd := range week {
		if SameDay(wd.Date, day) {
			return true
		}
	}
	return false
}

// MonthLabel formats the header above the week strip, e.g. "Feb 2026".
func MonthLabel(day time.Time) string {
	return day.Format("Jan 2006")
}
