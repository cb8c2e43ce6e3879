// Package tracker owns the process-wide counting state: settings,
// mantras, the live session, the day-bucketed history log, and the
// lifetime cache. All mutation funnels through it, and every mutation
// is written through to the store before returning.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nirmalgaihre/naamjap/internal/chime"
	"github.com/nirmalgaihre/naamjap/internal/constants"
	"github.com/nirmalgaihre/naamjap/internal/counter"
	"github.com/nirmalgaihre/naamjap/internal/logger"
	"github.com/nirmalgaihre/naamjap/internal/models"
	"github.com/nirmalgaihre/naamjap/internal/stats"
	"github.com/nirmalgaihre/naamjap/internal/storage"
)

// Snapshot is the read view handed to the presentation layer and to
// change subscribers.
type Snapshot struct {
	Settings     models.Settings
	Mantras      []models.Mantra
	ActiveMantra models.Mantra
	Session      models.Session
	Display      int
	TodayChants  int
	TodayMalas   int
	Lifetime     models.Lifetime
}

// TapResult is the outcome of one increment.
type TapResult struct {
	Snapshot
	MalaCompleted bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source. Used by tests to cross midnight.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithNotifier sets the audio/haptic collaborator.
func WithNotifier(n chime.Notifier) Option {
	return func(t *Tracker) { t.notifier = n }
}

type Tracker struct {
	store    storage.Provider
	notifier chime.Notifier
	now      func() time.Time

	settings models.Settings
	mantras  []models.Mantra
	session  models.Session
	history  []models.HistoryEntry
	lifetime models.Lifetime

	subs []func(Snapshot)
}

// New builds a Tracker from an already-loaded store, repairing any
// inconsistencies it finds rather than failing: settings are clamped,
// a dangling mantra selection is reassigned, and a live session from a
// previous day is folded into history.
func New(store storage.Provider, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:    store,
		notifier: chime.Silent{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	var err error
	if t.settings, err = store.GetSettings(); err != nil {
		logger.Warn("failed to load settings, using defaults", "error", err)
		t.settings = models.DefaultSettings()
	}
	t.settings.Normalize()

	if t.mantras, err = store.GetAllMantras(); err != nil || len(t.mantras) == 0 {
		t.mantras = models.DefaultMantras()
	}
	if _, ok := t.findMantra(t.settings.SelectedMantraID); !ok {
		t.settings.SelectedMantraID = t.mantras[0].ID
		if err := store.SaveSettings(t.settings); err != nil {
			return nil, fmt.Errorf("failed to repair mantra selection: %w", err)
		}
	}

	if t.session, err = store.GetSession(); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if t.history, err = store.GetHistory(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if t.lifetime, err = store.GetLifetime(); err != nil {
		return nil, fmt.Errorf("failed to load lifetime stats: %w", err)
	}

	// Rebuild a lost lifetime cache from the source of truth
	if t.lifetime == (models.Lifetime{}) && (len(t.history) > 0 || t.session.Count > 0) {
		t.lifetime = stats.Lifetime(t.history, t.session, t.now())
		if err := store.SaveLifetime(t.lifetime); err != nil {
			return nil, fmt.Errorf("failed to rebuild lifetime stats: %w", err)
		}
	}

	if err := t.ensureToday(); err != nil {
		return nil, err
	}

	return t, nil
}

// Subscribe registers a change listener invoked after every mutation.
// Views subscribe instead of polling storage.
func (t *Tracker) Subscribe(fn func(Snapshot)) {
	t.subs = append(t.subs, fn)
}

func (t *Tracker) publish() {
	snap := t.Snapshot()
	for _, fn := range t.subs {
		fn(snap)
	}
}

func (t *Tracker) today() string {
	return t.now().Format(constants.DateFormat)
}

func (t *Tracker) findMantra(id string) (models.Mantra, bool) {
	for _, m := range t.mantras {
		if m.ID == id {
			return m, true
		}
	}
	return models.Mantra{}, false
}

// ensureToday performs the lazy day-rollover check: when the live
// session belongs to an earlier day, its accumulation is folded into
// that day's history entry exactly once, and a fresh session starts at
// zero for today. Called on every read and mutation, which tolerates
// the process being suspended across midnight.
func (t *Tracker) ensureToday() error {
	today := t.today()
	if t.session.Date == today {
		return nil
	}

	if t.session.Date != "" && t.session.Count > 0 {
		if err := t.fold(); err != nil {
			return err
		}
	}

	t.session = models.Session{
		Date:        today,
		MantraID:    t.settings.SelectedMantraID,
		TargetCount: t.settings.TargetCount,
	}
	return t.store.SaveSession(t.session)
}

// fold flushes the live session into the history entry for its own
// date. The entry is an overwrite-upsert keyed by date, so folding the
// same session twice is a no-op the second time.
func (t *Tracker) fold() error {
	if t.session.Date == "" || t.session.Count == 0 {
		return nil
	}

	entry := models.HistoryEntry{
		Date:      t.session.Date,
		Chants:    t.session.Count,
		Malas:     t.session.Malas,
		StartTime: t.session.StartTime,
	}
	if err := t.store.SaveHistoryEntry(entry); err != nil {
		return fmt.Errorf("failed to fold session into history: %w", err)
	}

	merged := false
	for i, h := range t.history {
		if h.Date == entry.Date {
			t.history[i] = entry
			merged = true
			break
		}
	}
	if !merged {
		t.history = append(t.history, entry)
	}

	if len(t.history) > constants.HistoryCap {
		if err := t.store.PruneHistory(constants.HistoryCap); err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		evicted := t.history[:len(t.history)-constants.HistoryCap]
		for _, h := range evicted {
			t.lifetime.Chants -= h.Chants
			t.lifetime.Malas -= h.Malas
		}
		t.history = t.history[len(t.history)-constants.HistoryCap:]
		if err := t.store.SaveLifetime(t.lifetime); err != nil {
			return err
		}
	}

	return nil
}

// Increment records one tap. Counting state is authoritative: feedback
// side effects are fire-and-forget and can never roll it back.
func (t *Tracker) Increment() (TapResult, error) {
	if err := t.ensureToday(); err != nil {
		return TapResult{}, err
	}

	session, res := counter.Increment(t.session, t.settings.TargetCount)
	if session.StartTime == nil {
		now := t.now()
		session.StartTime = &now
	}
	t.session = session

	t.lifetime.Chants++
	if res.Completed {
		t.lifetime.Malas++
	}

	if err := t.store.SaveSession(t.session); err != nil {
		return TapResult{}, err
	}
	if err := t.store.SaveLifetime(t.lifetime); err != nil {
		return TapResult{}, err
	}

	if res.Chime && t.settings.SoundEnabled {
		t.notifier.PlayChime()
	}
	if t.settings.VibrationEnabled {
		t.notifier.Vibrate(res.Pulse)
	}

	t.publish()
	return TapResult{Snapshot: t.Snapshot(), MalaCompleted: res.Completed}, nil
}

// EndSession flushes the live accumulation into today's history entry
// so progress survives process termination. The day key does not
// change and counting can continue; calling it again with no
// intervening taps changes nothing.
func (t *Tracker) EndSession() error {
	if err := t.ensureToday(); err != nil {
		return err
	}
	if err := t.fold(); err != nil {
		return err
	}
	t.publish()
	return nil
}

// ResetSession discards the live in-progress count without committing
// it, including any earlier flush of the same day. Closed prior days
// are untouched.
func (t *Tracker) ResetSession() error {
	if err := t.ensureToday(); err != nil {
		return err
	}

	t.lifetime.Chants -= t.session.Count
	t.lifetime.Malas -= t.session.Malas
	if t.lifetime.Chants < 0 {
		t.lifetime.Chants = 0
	}
	if t.lifetime.Malas < 0 {
		t.lifetime.Malas = 0
	}

	t.session = models.Session{
		Date:        t.session.Date,
		MantraID:    t.settings.SelectedMantraID,
		TargetCount: t.settings.TargetCount,
	}

	if err := t.store.DeleteHistoryEntry(t.session.Date); err != nil {
		return err
	}
	for i, h := range t.history {
		if h.Date == t.session.Date {
			t.history = append(t.history[:i], t.history[i+1:]...)
			break
		}
	}

	if err := t.store.SaveSession(t.session); err != nil {
		return err
	}
	if err := t.store.SaveLifetime(t.lifetime); err != nil {
		return err
	}

	t.publish()
	return nil
}

// ResetAllData clears the live session, the full history log, and the
// lifetime aggregates back to their zero state. Settings and the
// mantra list survive. The store clears everything in one transaction
// so no partial reset is ever visible.
func (t *Tracker) ResetAllData() error {
	if err := t.store.ResetAll(); err != nil {
		return err
	}

	t.history = []models.HistoryEntry{}
	t.lifetime = models.Lifetime{}
	t.session = models.Session{
		Date:        t.today(),
		MantraID:    t.settings.SelectedMantraID,
		TargetCount: t.settings.TargetCount,
	}
	if err := t.store.SaveSession(t.session); err != nil {
		return err
	}

	t.publish()
	return nil
}

// SelectMantra switches the active mantra for subsequent chanting.
func (t *Tracker) SelectMantra(id string) error {
	if err := t.ensureToday(); err != nil {
		return err
	}

	if _, ok := t.findMantra(id); !ok {
		return fmt.Errorf("mantra not found: %s", id)
	}

	t.settings.SelectedMantraID = id
	t.session.MantraID = id

	if err := t.store.SaveSettings(t.settings); err != nil {
		return err
	}
	if err := t.store.SaveSession(t.session); err != nil {
		return err
	}

	t.publish()
	return nil
}

// AddMantra creates a custom mantra and selects it, mirroring the
// behavior of adding from the settings screen.
func (t *Tracker) AddMantra(text string) (models.Mantra, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Mantra{}, fmt.Errorf("mantra text must not be empty")
	}

	mantra := models.Mantra{
		ID:       uuid.New().String(),
		Text:     text,
		IsCustom: true,
	}
	if err := t.store.AddMantra(mantra); err != nil {
		return models.Mantra{}, err
	}
	t.mantras = append(t.mantras, mantra)

	if err := t.SelectMantra(mantra.ID); err != nil {
		return models.Mantra{}, err
	}
	return mantra, nil
}

// DeleteMantra removes a custom mantra. Built-in mantras are not
// user-deletable. Deleting the selected mantra reassigns the selection
// to the first remaining mantra before the deletion persists, so the
// selection never dangles.
func (t *Tracker) DeleteMantra(id string) error {
	mantra, ok := t.findMantra(id)
	if !ok {
		return fmt.Errorf("mantra not found: %s", id)
	}
	if !mantra.IsCustom {
		return fmt.Errorf("built-in mantras cannot be deleted")
	}

	if t.settings.SelectedMantraID == id {
		for _, m := range t.mantras {
			if m.ID != id {
				if err := t.SelectMantra(m.ID); err != nil {
					return err
				}
				break
			}
		}
	}

	if err := t.store.DeleteMantra(id); err != nil {
		return err
	}
	for i, m := range t.mantras {
		if m.ID == id {
			t.mantras = append(t.mantras[:i], t.mantras[i+1:]...)
			break
		}
	}

	t.publish()
	return nil
}

// UpdateSettings applies new preferences, repairing invalid values at
// the boundary (a non-positive target clamps, an unknown mantra
// selection reverts) instead of rejecting them.
func (t *Tracker) UpdateSettings(settings models.Settings) error {
	if err := t.ensureToday(); err != nil {
		return err
	}

	settings.Normalize()
	if _, ok := t.findMantra(settings.SelectedMantraID); !ok {
		settings.SelectedMantraID = t.settings.SelectedMantraID
	}

	t.settings = settings
	t.session.TargetCount = settings.TargetCount
	t.session.MantraID = settings.SelectedMantraID

	if err := t.store.SaveSettings(t.settings); err != nil {
		return err
	}
	if err := t.store.SaveSession(t.session); err != nil {
		return err
	}

	t.publish()
	return nil
}

// Stats aggregates the requested window from history plus the live count.
func (t *Tracker) Stats(w stats.Window) (stats.Totals, error) {
	if err := t.ensureToday(); err != nil {
		return stats.Totals{}, err
	}
	return stats.Aggregate(t.history, t.session, t.now(), w), nil
}

// Series returns the chartable buckets for the requested window.
func (t *Tracker) Series(w stats.Window) ([]stats.Point, error) {
	if err := t.ensureToday(); err != nil {
		return nil, err
	}
	return stats.Series(t.history, t.session, t.now(), w), nil
}

// HistoryTail returns the n most recent closed days, newest first.
// Today's shadow entry is excluded; its counts are still live.
func (t *Tracker) HistoryTail(n int) ([]models.HistoryEntry, error) {
	if err := t.ensureToday(); err != nil {
		return nil, err
	}

	today := t.today()
	var closed []models.HistoryEntry
	for _, h := range t.history {
		if h.Date < today {
			closed = append(closed, h)
		}
	}

	tail := make([]models.HistoryEntry, 0, n)
	for i := len(closed) - 1; i >= 0 && len(tail) < n; i-- {
		tail = append(tail, closed[i])
	}
	return tail, nil
}

// Snapshot returns the current read view.
func (t *Tracker) Snapshot() Snapshot {
	active, _ := t.findMantra(t.settings.SelectedMantraID)
	return Snapshot{
		Settings:     t.settings,
		Mantras:      append([]models.Mantra(nil), t.mantras...),
		ActiveMantra: active,
		Session:      t.session,
		Display:      counter.Display(t.session.Count, t.settings.TargetCount),
		TodayChants:  t.session.Count,
		TodayMalas:   t.session.Malas,
		Lifetime:     t.lifetime,
	}
}
