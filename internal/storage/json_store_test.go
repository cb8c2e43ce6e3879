package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nirmalgaihre/naamjap/internal/constants"
	"github.com/nirmalgaihre/naamjap/internal/models"
)

func newLoadedJSONStore(t *testing.T) (*JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "naamjap.json")
	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store, path
}

func TestJSONStoreInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "naamjap.json")
	store := NewJSONStore(path)

	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("storage file not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}

	if err := store.Init(); err == nil {
		t.Error("expected error on double init")
	}
}

func TestJSONStoreLoadMissingFileUsesDefaults(t *testing.T) {
	store, path := newLoadedJSONStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.TargetCount != constants.DefaultTargetCount {
		t.Errorf("target = %d, want %d", settings.TargetCount, constants.DefaultTargetCount)
	}

	mantras, err := store.GetAllMantras()
	if err != nil {
		t.Fatalf("get mantras failed: %v", err)
	}
	if len(mantras) != len(models.DefaultMantras()) {
		t.Errorf("expected %d seeded mantras, got %d", len(models.DefaultMantras()), len(mantras))
	}

	// Loading must not create the file; only a write does
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("load created the storage file")
	}
}

func TestJSONStoreLoadCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "naamjap.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("load should absorb corrupt data, got %v", err)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.TargetCount != constants.DefaultTargetCount {
		t.Errorf("corrupt load did not fall back to defaults: %+v", settings)
	}
}

func TestJSONStoreLoadRepairsMissingPieces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "naamjap.json")
	// Valid JSON with settings and mantras absent
	blob := `{"version":1,"current_session":{"date":"2025-06-10","count":12}}`
	if err := os.WriteFile(path, []byte(blob), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	session, err := store.GetSession()
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if session.Count != 12 {
		t.Errorf("valid session discarded: %+v", session)
	}
	settings, _ := store.GetSettings()
	if settings.TargetCount != constants.DefaultTargetCount {
		t.Errorf("missing settings not repaired: %+v", settings)
	}
	mantras, _ := store.GetAllMantras()
	if len(mantras) == 0 {
		t.Error("missing mantras not reseeded")
	}
}

func TestJSONStorePersistsAcrossReload(t *testing.T) {
	store, path := newLoadedJSONStore(t)

	settings, _ := store.GetSettings()
	settings.TargetCount = 27
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("save settings failed: %v", err)
	}
	if err := store.SaveSession(models.Session{Date: "2025-06-10", Count: 99}); err != nil {
		t.Fatalf("save session failed: %v", err)
	}

	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	settings, _ = reloaded.GetSettings()
	if settings.TargetCount != 27 {
		t.Errorf("target after reload = %d, want 27", settings.TargetCount)
	}
	session, _ := reloaded.GetSession()
	if session.Count != 99 {
		t.Errorf("session after reload = %+v", session)
	}
}

func TestJSONStoreHistoryMergeByDate(t *testing.T) {
	store, _ := newLoadedJSONStore(t)

	entries := []models.HistoryEntry{
		{Date: "2025-06-10", Chants: 50},
		{Date: "2025-06-08", Chants: 30},
		{Date: "2025-06-10", Chants: 120, Malas: 1},
	}
	for _, e := range entries {
		if err := store.SaveHistoryEntry(e); err != nil {
			t.Fatalf("save history entry failed: %v", err)
		}
	}

	history, err := store.GetHistory()
	if err != nil {
		t.Fatalf("get history failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries after merge, got %d", len(history))
	}
	if history[0].Date != "2025-06-08" || history[1].Date != "2025-06-10" {
		t.Errorf("history not sorted ascending: %+v", history)
	}
	if history[1].Chants != 120 || history[1].Malas != 1 {
		t.Errorf("same-date entry not overwritten: %+v", history[1])
	}
}

func TestJSONStoreDeleteHistoryEntry(t *testing.T) {
	store, _ := newLoadedJSONStore(t)

	if err := store.SaveHistoryEntry(models.HistoryEntry{Date: "2025-06-10", Chants: 10}); err != nil {
		t.Fatalf("save history entry failed: %v", err)
	}
	if err := store.DeleteHistoryEntry("2025-06-10"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.DeleteHistoryEntry("2025-06-10"); err != nil {
		t.Errorf("deleting an absent date should be a no-op, got %v", err)
	}

	history, _ := store.GetHistory()
	if len(history) != 0 {
		t.Errorf("entry not deleted: %+v", history)
	}
}

func TestJSONStorePruneHistoryKeepsNewest(t *testing.T) {
	store, _ := newLoadedJSONStore(t)

	dates := []string{"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-04"}
	for _, d := range dates {
		if err := store.SaveHistoryEntry(models.HistoryEntry{Date: d, Chants: 1}); err != nil {
			t.Fatalf("save history entry failed: %v", err)
		}
	}

	if err := store.PruneHistory(2); err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	history, _ := store.GetHistory()
	if len(history) != 2 {
		t.Fatalf("expected 2 entries after prune, got %d", len(history))
	}
	if history[0].Date != "2025-06-03" || history[1].Date != "2025-06-04" {
		t.Errorf("prune evicted the wrong end: %+v", history)
	}
}

func TestJSONStoreResetAllKeepsSettingsAndMantras(t *testing.T) {
	store, _ := newLoadedJSONStore(t)

	settings, _ := store.GetSettings()
	settings.TargetCount = 21
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("save settings failed: %v", err)
	}
	if err := store.AddMantra(models.Mantra{ID: "custom-1", Text: "ॐ", IsCustom: true}); err != nil {
		t.Fatalf("add mantra failed: %v", err)
	}
	if err := store.SaveSession(models.Session{Date: "2025-06-10", Count: 42}); err != nil {
		t.Fatalf("save session failed: %v", err)
	}
	if err := store.SaveHistoryEntry(models.HistoryEntry{Date: "2025-06-09", Chants: 42}); err != nil {
		t.Fatalf("save history failed: %v", err)
	}
	if err := store.SaveLifetime(models.Lifetime{Chants: 84}); err != nil {
		t.Fatalf("save lifetime failed: %v", err)
	}

	if err := store.ResetAll(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	session, _ := store.GetSession()
	history, _ := store.GetHistory()
	lifetime, _ := store.GetLifetime()
	if session.Count != 0 || len(history) != 0 || lifetime.Chants != 0 {
		t.Errorf("counting state survived reset: session=%+v history=%d lifetime=%+v", session, len(history), lifetime)
	}

	settings, _ = store.GetSettings()
	if settings.TargetCount != 21 {
		t.Errorf("settings lost on reset: %+v", settings)
	}
	if _, err := store.GetMantra("custom-1"); err != nil {
		t.Errorf("custom mantra lost on reset: %v", err)
	}
}

func TestJSONStoreMantraLookup(t *testing.T) {
	store, _ := newLoadedJSONStore(t)

	if _, err := store.GetMantra("missing"); err == nil {
		t.Error("expected error for unknown mantra")
	}
	if err := store.DeleteMantra("missing"); err == nil {
		t.Error("expected error deleting unknown mantra")
	}

	mantras, _ := store.GetAllMantras()
	got, err := store.GetMantra(mantras[0].ID)
	if err != nil {
		t.Fatalf("get mantra failed: %v", err)
	}
	if got.Text != mantras[0].Text {
		t.Errorf("mantra = %+v, want %+v", got, mantras[0])
	}
}

func TestJSONStoreRequiresLoad(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "naamjap.json"))
	if _, err := store.GetSettings(); err == nil {
		t.Error("expected error before Load")
	}
	if err := store.SaveSession(models.Session{}); err == nil {
		t.Error("expected error before Load")
	}
}
