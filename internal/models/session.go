package models

import "time"

// Session is the live, uncommitted accumulation of taps for the current
// calendar day. It carries the full day total: folding it into history
// is an overwrite-upsert of that day's entry, so a fold is idempotent.
type Session struct {
	Date        string     `json:"date"` // YYYY-MM-DD, local time
	Count       int        `json:"count"`
	Malas       int        `json:"malas"`
	MantraID    string     `json:"mantra_id"`
	TargetCount int        `json:"target_count"`
	StartTime   *time.Time `json:"start_time,omitempty"` // first chant of the day
}

// HistoryEntry is one closed calendar day in the history log. At most
// one entry exists per date; same-day folds overwrite chants/malas.
type HistoryEntry struct {
	Date      string     `json:"date"` // YYYY-MM-DD, local time
	Chants    int        `json:"chants"`
	Malas     int        `json:"malas"`
	StartTime *time.Time `json:"start_time,omitempty"`
}

// Lifetime is the cached projection of the unbounded totals. The
// tracker keeps it in lockstep with history + live session; the stats
// aggregator must derive the same numbers.
type Lifetime struct {
	Chants int `json:"chants"`
	Malas  int `json:"malas"`
}
