package calendar

import (
	"testing"
	"time"
)

func TestCurrentWeekSundayStart(t *testing.T) {
	ref := time.Date(2026, 2, 11, 15, 30, 0, 0, time.UTC) // Wednesday
	week := NewWeek(time.Sunday).CurrentWeek(ref)
	if len(week) != DaysPerWeek {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if got := week[0].Date.Format("2006-01-02"); got != "2026-02-08" {
		t.Fatalf("unexpected first day: %s", got)
	}
	if week[0].Name != "Sunday" || week[0].Short() != "Sun" {
		t.Fatalf("unexpected first day label: %q", week[0].Name)
	}
	if got := week[6].Date.Format("2006-01-02"); got != "2026-02-14" || week[6].Name != "Saturday" {
		t.Fatalf("unexpected last day: %s %s", got, week[6].Name)
	}
}

func TestCurrentWeekMondayStart(t *testing.T) {
	ref := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC) // Sunday
	week := NewWeek(time.Monday).CurrentWeek(ref)
	if got := week[0].Date.Format("2006-01-02"); got != "2026-02-02" || week[0].Name != "Monday" {
		t.Fatalf("unexpected first day: %s %s", got, week[0].Name)
	}
	if !SameDay(week[6].Date, ref) {
		t.Fatalf("expected sunday ref to be the last day, got %s", week[6].Date.Format(time.RFC3339))
	}
}

func TestCurrentWeekProperties(t *testing.T) {
	locations := []*time.Location{time.UTC, time.FixedZone("UTC-7", -7*60*60)}
	if ny, err := time.LoadLocation("America/New_York"); err == nil {
		locations = append(locations, ny)
	}
	for _, loc := range locations {
		for _, first := range []time.Weekday{time.Sunday, time.Monday, time.Saturday} {
			w := NewWeek(first)
			start := time.Date(2025, 12, 1, 13, 0, 0, 0, loc)
			for i := 0; i < 400; i++ {
				ref := start.AddDate(0, 0, i)
				week := w.CurrentWeek(ref)
				if len(week) != DaysPerWeek {
					t.Fatalf("%s: expected 7 days, got %d", ref, len(week))
				}
				if week[0].Date.Weekday() != first {
					t.Fatalf("%s: week starts on %s, want %s", ref, week[0].Date.Weekday(), first)
				}
				if !Contains(week, ref) {
					t.Fatalf("%s: week does not contain reference date", ref)
				}
				for j := 1; j < len(week); j++ {
					next := StartOfDay(week[j-1].Date.AddDate(0, 0, 1))
					if !week[j].Date.Equal(next) {
						t.Fatalf("%s: day %d is %s, want %s", ref, j, week[j].Date, next)
					}
				}
			}
		}
	}
}

func TestCurrentWeekIsStable(t *testing.T) {
	ref := time.Date(2026, 3, 29, 1, 0, 0, 0, time.UTC)
	w := NewWeek(time.Monday)
	a := w.CurrentWeek(ref)
	b := w.CurrentWeek(ref)
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || a[i].Name != b[i].Name {
			t.Fatalf("day %d differs between calls: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"sunday": time.Sunday,
		"Mon":    time.Monday,
		" SAT ":  time.Saturday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		if err != nil || got != want {
			t.Fatalf("ParseWeekday(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseWeekday("someday"); err == nil {
		t.Fatal("expected error for unknown weekday")
	}
}

func TestMonthLabel(t *testing.T) {
	// Dec 29 2025 belongs to ISO week-year 2026; the header uses the calendar year.
	if got := MonthLabel(time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)); got != "Dec 2025" {
		t.Fatalf("unexpected month label: %q", got)
	}
}
