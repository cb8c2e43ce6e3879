// Package stats derives aggregate totals and chartable series from the
// history log plus the live session. It is pure computation: nothing
// here is persisted, and empty history yields all-zero aggregates.
package stats

import (
	"fmt"
	"time"

	"github.com/nirmalgaihre/naamjap/internal/constants"
	"github.com/nirmalgaihre/naamjap/internal/models"
)

// Window is a rolling reporting range anchored at today.
type Window string

const (
	WindowToday    Window = "today"
	Window7Days    Window = "7d"
	Window15Days   Window = "15d"
	Window30Days   Window = "30d"
	Window90Days   Window = "90d"
	WindowYear     Window = "year"
	WindowLifetime Window = "lifetime"
)

// Windows lists all supported windows in ascending size order.
func Windows() []Window {
	return []Window{WindowToday, Window7Days, Window15Days, Window30Days, Window90Days, WindowYear, WindowLifetime}
}

// ParseWindow maps the user-facing range keyword to a Window.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowToday, Window7Days, Window15Days, Window30Days, Window90Days, WindowYear, WindowLifetime:
		return Window(s), nil
	}
	return "", fmt.Errorf("invalid range %q (expected today|7d|15d|30d|90d|year|lifetime)", s)
}

// Totals is the aggregate for one window.
type Totals struct {
	Window Window
	Label  string
	Chants int
	Malas  int
	// Days is the number of calendar days the window spans, for
	// per-day averages. Lifetime reports the days with recorded activity.
	Days int
}

// Point is one bucket of a chartable series.
type Point struct {
	Label string
	Value int
}

// Label returns the display name for a window.
func Label(w Window) string {
	switch w {
	case WindowToday:
		return "Today"
	case Window7Days:
		return "Last 7 days"
	case Window15Days:
		return "Last 15 days"
	case Window30Days:
		return "Last 30 days"
	case Window90Days:
		return "Last 90 days"
	case WindowYear:
		return "This year"
	case WindowLifetime:
		return "Lifetime"
	}
	return string(w)
}

func windowDays(w Window) int {
	switch w {
	case Window7Days:
		return 7
	case Window15Days:
		return 15
	case Window30Days:
		return 30
	case Window90Days:
		return 90
	}
	return 0
}

// lowerBound returns the inclusive first date of the window as a day
// key, or "" for an unbounded (lifetime) window.
func lowerBound(w Window, now time.Time) string {
	switch w {
	case WindowToday:
		return now.Format(constants.DateFormat)
	case WindowYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()).Format(constants.DateFormat)
	case WindowLifetime:
		return ""
	}
	if n := windowDays(w); n > 0 {
		return now.AddDate(0, 0, -(n - 1)).Format(constants.DateFormat)
	}
	return now.Format(constants.DateFormat)
}

// Aggregate sums chants and malas over the window. The history row
// matching the live session's date is a shadow of that session and is
// excluded; the live session is added instead, so in-progress taps show
// up immediately without double counting. The shadow is keyed on
// live.Date, not today, so a session that has not rolled over yet still
// pairs with its own flushed row.
func Aggregate(history []models.HistoryEntry, live models.Session, now time.Time, w Window) Totals {
	today := now.Format(constants.DateFormat)
	from := lowerBound(w, now)

	t := Totals{
		Window: w,
		Label:  Label(w),
		Chants: live.Count,
		Malas:  live.Malas,
	}

	activeDays := 0
	if live.Count > 0 {
		activeDays = 1
	}

	for _, entry := range history {
		if entry.Date == live.Date || entry.Date > today {
			continue
		}
		if from != "" && entry.Date < from {
			continue
		}
		t.Chants += entry.Chants
		t.Malas += entry.Malas
		if entry.Chants > 0 {
			activeDays++
		}
	}

	switch w {
	case WindowToday:
		t.Days = 1
	case WindowYear:
		t.Days = now.YearDay()
	case WindowLifetime:
		t.Days = activeDays
		if t.Days == 0 {
			t.Days = 1
		}
	default:
		t.Days = windowDays(w)
	}

	return t
}

// Lifetime derives the unbounded totals. Must always agree with the
// cached counters the tracker maintains.
func Lifetime(history []models.HistoryEntry, live models.Session, now time.Time) models.Lifetime {
	t := Aggregate(history, live, now, WindowLifetime)
	return models.Lifetime{Chants: t.Chants, Malas: t.Malas}
}

// Series buckets the window for charting, in chronological order.
// Day windows produce one point per day; the year window produces one
// point per month. Today's bucket reflects the live session.
func Series(history []models.HistoryEntry, live models.Session, now time.Time, w Window) []Point {
	today := now.Format(constants.DateFormat)

	byDate := make(map[string]int, len(history))
	for _, entry := range history {
		byDate[entry.Date] = entry.Chants
	}
	// Live count shadows whatever was folded for its own date
	if live.Date != "" {
		byDate[live.Date] = live.Count
	}

	switch w {
	case WindowToday:
		return []Point{{Label: today, Value: live.Count}}

	case WindowYear, WindowLifetime:
		points := make([]Point, 0, 12)
		for m := time.January; m <= now.Month(); m++ {
			points = append(points, Point{Label: m.String()[:3]})
		}
		for date, chants := range byDate {
			d, err := time.ParseInLocation(constants.DateFormat, date, now.Location())
			if err != nil || d.Year() != now.Year() || d.Month() > now.Month() {
				continue
			}
			points[int(d.Month())-1].Value += chants
		}
		return points

	default:
		n := windowDays(w)
		if n == 0 {
			n = 1
		}
		points := make([]Point, 0, n)
		for i := n - 1; i >= 0; i-- {
			day := now.AddDate(0, 0, -i)
			key := day.Format(constants.DateFormat)
			label := day.Format("01-02")
			if w == Window7Days {
				label = day.Weekday().String()[:3]
			}
			points = append(points, Point{Label: label, Value: byDate[key]})
		}
		return points
	}
}
