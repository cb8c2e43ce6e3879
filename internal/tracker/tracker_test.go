package tracker

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nirmalgaihre/naamjap/internal/constants"
	"github.com/nirmalgaihre/naamjap/internal/models"
	"github.com/nirmalgaihre/naamjap/internal/stats"
	"github.com/nirmalgaihre/naamjap/internal/storage"
)

func newTestStore(t *testing.T) *storage.JSONStore {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "naamjap.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store
}

// fakeClock lets tests move the tracker across midnight.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestTracker(t *testing.T) (*Tracker, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}
	tr, err := New(newTestStore(t), WithClock(clock.now))
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	return tr, clock
}

func tap(t *testing.T, tr *Tracker, n int) TapResult {
	t.Helper()
	var res TapResult
	var err error
	for i := 0; i < n; i++ {
		if res, err = tr.Increment(); err != nil {
			t.Fatalf("increment failed: %v", err)
		}
	}
	return res
}

func TestIncrementAccumulates(t *testing.T) {
	tr, _ := newTestTracker(t)

	res := tap(t, tr, 23)

	if res.TodayChants != 23 {
		t.Errorf("expected 23 chants, got %d", res.TodayChants)
	}
	if res.Session.Malas != 0 {
		t.Errorf("expected 0 malas before target, got %d", res.Session.Malas)
	}
	if res.Session.StartTime == nil {
		t.Error("expected start time to be stamped on first chant")
	}
	if res.Lifetime.Chants != 23 {
		t.Errorf("expected lifetime chants 23, got %d", res.Lifetime.Chants)
	}
}

func TestDayRolloverFoldsExactlyOnce(t *testing.T) {
	tr, clock := newTestTracker(t)

	tap(t, tr, 150)

	clock.t = clock.t.AddDate(0, 0, 1)

	snap := tr.Snapshot()
	if snap.TodayChants != 150 {
		t.Fatalf("snapshot should be stale until next access, got %d", snap.TodayChants)
	}

	res := tap(t, tr, 1)
	if res.TodayChants != 1 {
		t.Errorf("expected fresh session with 1 chant, got %d", res.TodayChants)
	}
	if res.Session.Date != clock.t.Format("2006-01-02") {
		t.Errorf("session date not advanced: %s", res.Session.Date)
	}

	tail, err := tr.HistoryTail(5)
	if err != nil {
		t.Fatalf("history tail failed: %v", err)
	}
	if len(tail) != 1 {
		t.Fatalf("expected 1 closed day, got %d", len(tail))
	}
	if tail[0].Chants != 150 || tail[0].Malas != 1 {
		t.Errorf("folded day = %d chants %d malas, want 150 and 1", tail[0].Chants, tail[0].Malas)
	}
	if res.Lifetime.Chants != 151 {
		t.Errorf("lifetime chants = %d, want 151", res.Lifetime.Chants)
	}
}

func TestEndSessionIsIdempotent(t *testing.T) {
	tr, _ := newTestTracker(t)

	tap(t, tr, 40)

	for i := 0; i < 3; i++ {
		if err := tr.EndSession(); err != nil {
			t.Fatalf("end session failed: %v", err)
		}
	}

	lifetime, err := tr.Stats(stats.WindowLifetime)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if lifetime.Chants != 40 {
		t.Errorf("repeated end session inflated totals: got %d, want 40", lifetime.Chants)
	}

	// Counting continues in the same day bucket after a flush
	tap(t, tr, 10)
	if err := tr.EndSession(); err != nil {
		t.Fatalf("end session failed: %v", err)
	}
	lifetime, err = tr.Stats(stats.WindowLifetime)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if lifetime.Chants != 50 {
		t.Errorf("expected 50 chants after resumed counting, got %d", lifetime.Chants)
	}
}

func TestHistoryHasAtMostOneEntryPerDate(t *testing.T) {
	tr, clock := newTestTracker(t)

	tap(t, tr, 10)
	if err := tr.EndSession(); err != nil {
		t.Fatalf("end session failed: %v", err)
	}
	tap(t, tr, 10)
	if err := tr.EndSession(); err != nil {
		t.Fatalf("end session failed: %v", err)
	}

	clock.t = clock.t.AddDate(0, 0, 1)
	tap(t, tr, 1)

	seen := map[string]bool{}
	for _, h := range tr.history {
		if seen[h.Date] {
			t.Fatalf("duplicate history entry for %s", h.Date)
		}
		seen[h.Date] = true
	}

	tail, err := tr.HistoryTail(5)
	if err != nil {
		t.Fatalf("history tail failed: %v", err)
	}
	if len(tail) != 1 || tail[0].Chants != 20 {
		t.Errorf("expected one closed day with 20 chants, got %+v", tail)
	}
}

func TestLifetimeCacheMatchesDerivation(t *testing.T) {
	tr, clock := newTestTracker(t)

	for day := 0; day < 4; day++ {
		tap(t, tr, 120)
		clock.t = clock.t.AddDate(0, 0, 1)
	}
	tap(t, tr, 30)

	derived := stats.Lifetime(tr.history, tr.session, clock.t)
	if tr.lifetime != derived {
		t.Errorf("lifetime cache %+v drifted from derived %+v", tr.lifetime, derived)
	}
	if tr.lifetime.Chants != 4*120+30 {
		t.Errorf("lifetime chants = %d, want %d", tr.lifetime.Chants, 4*120+30)
	}
}

func TestLifetimeRebuildSkipsFlushedStaleSession(t *testing.T) {
	store := newTestStore(t)

	// A session from yesterday that was already flushed to history,
	// with the cached lifetime lost. The rebuild must pair the session
	// with its own shadow row, not count both.
	yesterday := "2025-06-09"
	if err := store.SaveSession(models.Session{Date: yesterday, Count: 50, TargetCount: 108}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	if err := store.SaveHistoryEntry(models.HistoryEntry{Date: yesterday, Chants: 50}); err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	clock := &fakeClock{t: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}
	tr, err := New(store, WithClock(clock.now))
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}

	if tr.lifetime.Chants != 50 {
		t.Errorf("rebuilt lifetime chants = %d, want 50", tr.lifetime.Chants)
	}
	derived := stats.Lifetime(tr.history, tr.session, clock.t)
	if tr.lifetime != derived {
		t.Errorf("lifetime cache %+v drifted from derived %+v", tr.lifetime, derived)
	}
}

func TestHistoryCapEvictionKeepsLifetimeInLockstep(t *testing.T) {
	tr, clock := newTestTracker(t)

	// Drive enough closed days past the cap to evict the two oldest
	for day := 0; day < constants.HistoryCap+2; day++ {
		tap(t, tr, 1)
		clock.t = clock.t.AddDate(0, 0, 1)
	}
	tap(t, tr, 1)

	if len(tr.history) != constants.HistoryCap {
		t.Fatalf("history length = %d, want %d", len(tr.history), constants.HistoryCap)
	}
	if got := tr.history[0].Date; got != "2025-06-12" {
		t.Errorf("oldest surviving date = %s, want 2025-06-12", got)
	}
	derived := stats.Lifetime(tr.history, tr.session, clock.t)
	if tr.lifetime != derived {
		t.Errorf("lifetime cache %+v drifted from derived %+v after eviction", tr.lifetime, derived)
	}
	if tr.lifetime.Chants != constants.HistoryCap+1 {
		t.Errorf("lifetime chants = %d, want %d", tr.lifetime.Chants, constants.HistoryCap+1)
	}
}

func TestResetSessionDiscardsLiveAndFlushedCount(t *testing.T) {
	tr, clock := newTestTracker(t)

	// A closed prior day must survive the reset
	tap(t, tr, 108)
	clock.t = clock.t.AddDate(0, 0, 1)

	tap(t, tr, 55)
	if err := tr.EndSession(); err != nil {
		t.Fatalf("end session failed: %v", err)
	}
	tap(t, tr, 5)

	if err := tr.ResetSession(); err != nil {
		t.Fatalf("reset session failed: %v", err)
	}

	snap := tr.Snapshot()
	if snap.TodayChants != 0 || snap.TodayMalas != 0 {
		t.Errorf("session not zeroed: %d chants %d malas", snap.TodayChants, snap.TodayMalas)
	}
	if snap.Session.StartTime != nil {
		t.Error("start time should be cleared on reset")
	}

	lifetime, err := tr.Stats(stats.WindowLifetime)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if lifetime.Chants != 108 || lifetime.Malas != 1 {
		t.Errorf("closed day lost: %d chants %d malas, want 108 and 1", lifetime.Chants, lifetime.Malas)
	}
}

func TestResetAllDataKeepsSettingsAndMantras(t *testing.T) {
	tr, clock := newTestTracker(t)

	settings := tr.Snapshot().Settings
	settings.TargetCount = 54
	if err := tr.UpdateSettings(settings); err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	custom, err := tr.AddMantra("गुरु ॐ")
	if err != nil {
		t.Fatalf("add mantra failed: %v", err)
	}

	tap(t, tr, 60)
	clock.t = clock.t.AddDate(0, 0, 1)
	tap(t, tr, 10)

	if err := tr.ResetAllData(); err != nil {
		t.Fatalf("reset all failed: %v", err)
	}

	snap := tr.Snapshot()
	if snap.TodayChants != 0 || snap.Lifetime.Chants != 0 {
		t.Errorf("counts survived reset: today=%d lifetime=%d", snap.TodayChants, snap.Lifetime.Chants)
	}
	tail, err := tr.HistoryTail(5)
	if err != nil {
		t.Fatalf("history tail failed: %v", err)
	}
	if len(tail) != 0 {
		t.Errorf("history survived reset: %+v", tail)
	}
	if snap.Settings.TargetCount != 54 {
		t.Errorf("settings lost: target = %d, want 54", snap.Settings.TargetCount)
	}
	if _, ok := tr.findMantra(custom.ID); !ok {
		t.Error("custom mantra lost on reset")
	}
}

func TestAddMantraSelectsIt(t *testing.T) {
	tr, _ := newTestTracker(t)

	mantra, err := tr.AddMantra("  राम राम  ")
	if err != nil {
		t.Fatalf("add mantra failed: %v", err)
	}
	if mantra.Text != "राम राम" {
		t.Errorf("text not trimmed: %q", mantra.Text)
	}
	if !mantra.IsCustom {
		t.Error("added mantra should be custom")
	}
	if got := tr.Snapshot().Settings.SelectedMantraID; got != mantra.ID {
		t.Errorf("selection = %s, want %s", got, mantra.ID)
	}

	if _, err := tr.AddMantra("   "); err == nil {
		t.Error("expected error for blank mantra text")
	}
}

func TestDeleteMantraProtectsBuiltIns(t *testing.T) {
	tr, _ := newTestTracker(t)

	builtin := tr.Snapshot().Mantras[0]
	if err := tr.DeleteMantra(builtin.ID); err == nil {
		t.Error("expected built-in mantra deletion to be rejected")
	}
	if err := tr.DeleteMantra("no-such-id"); err == nil {
		t.Error("expected error for unknown mantra id")
	}
}

func TestDeleteSelectedMantraReassignsSelection(t *testing.T) {
	tr, _ := newTestTracker(t)

	custom, err := tr.AddMantra("जय श्री कृष्ण")
	if err != nil {
		t.Fatalf("add mantra failed: %v", err)
	}
	if err := tr.DeleteMantra(custom.ID); err != nil {
		t.Fatalf("delete mantra failed: %v", err)
	}

	snap := tr.Snapshot()
	if snap.Settings.SelectedMantraID == custom.ID {
		t.Error("selection still points at deleted mantra")
	}
	if snap.Settings.SelectedMantraID != snap.Mantras[0].ID {
		t.Errorf("selection = %s, want first remaining %s", snap.Settings.SelectedMantraID, snap.Mantras[0].ID)
	}
	if _, ok := tr.findMantra(custom.ID); ok {
		t.Error("deleted mantra still present")
	}
}

func TestUpdateSettingsClampsTarget(t *testing.T) {
	tr, _ := newTestTracker(t)

	settings := tr.Snapshot().Settings
	settings.TargetCount = -5
	settings.SelectedMantraID = "bogus"
	if err := tr.UpdateSettings(settings); err != nil {
		t.Fatalf("update settings failed: %v", err)
	}

	snap := tr.Snapshot()
	if snap.Settings.TargetCount != 1 {
		t.Errorf("target = %d, want clamp to 1", snap.Settings.TargetCount)
	}
	if snap.Settings.SelectedMantraID == "bogus" {
		t.Error("unknown mantra selection should be reverted")
	}
	if snap.Session.TargetCount != snap.Settings.TargetCount {
		t.Error("live session target not synced with settings")
	}
}

func TestStateSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "naamjap.json")
	clock := &fakeClock{t: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}

	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	tr, err := New(store, WithClock(clock.now))
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	tap(t, tr, 77)

	// Process restart: session state persists without an explicit flush
	store2 := storage.NewJSONStore(path)
	if err := store2.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	tr2, err := New(store2, WithClock(clock.now))
	if err != nil {
		t.Fatalf("failed to recreate tracker: %v", err)
	}
	if got := tr2.Snapshot().TodayChants; got != 77 {
		t.Errorf("chants after reload = %d, want 77", got)
	}

	// Restart across midnight folds the old day during construction
	clock.t = clock.t.AddDate(0, 0, 1)
	store3 := storage.NewJSONStore(path)
	if err := store3.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	tr3, err := New(store3, WithClock(clock.now))
	if err != nil {
		t.Fatalf("failed to recreate tracker: %v", err)
	}
	if got := tr3.Snapshot().TodayChants; got != 0 {
		t.Errorf("chants after midnight reload = %d, want 0", got)
	}
	tail, err := tr3.HistoryTail(5)
	if err != nil {
		t.Fatalf("history tail failed: %v", err)
	}
	if len(tail) != 1 || tail[0].Chants != 77 {
		t.Errorf("expected folded day with 77 chants, got %+v", tail)
	}
}

func TestSubscriberNotifiedOnMutation(t *testing.T) {
	tr, _ := newTestTracker(t)

	var events []Snapshot
	tr.Subscribe(func(s Snapshot) { events = append(events, s) })

	tap(t, tr, 2)
	if err := tr.EndSession(); err != nil {
		t.Fatalf("end session failed: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(events))
	}
	if events[1].TodayChants != 2 {
		t.Errorf("notification carries stale state: %d", events[1].TodayChants)
	}
}

func TestHistoryTailExcludesToday(t *testing.T) {
	tr, clock := newTestTracker(t)

	for day := 0; day < 3; day++ {
		tap(t, tr, 10*(day+1))
		clock.t = clock.t.AddDate(0, 0, 1)
	}
	tap(t, tr, 99)
	if err := tr.EndSession(); err != nil {
		t.Fatalf("end session failed: %v", err)
	}

	tail, err := tr.HistoryTail(2)
	if err != nil {
		t.Fatalf("history tail failed: %v", err)
	}
	if len(tail) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(tail))
	}
	if tail[0].Chants != 30 || tail[1].Chants != 20 {
		t.Errorf("tail not newest-first: %+v", tail)
	}
	for _, h := range tail {
		if h.Chants == 99 {
			t.Error("today's flushed entry leaked into the closed-day tail")
		}
	}
}
