package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nirmalgaihre/naamjap/internal/logger"
	"github.com/nirmalgaihre/naamjap/internal/models"
)

// Store is the single JSON blob persisted by the JSONStore.
type Store struct {
	Version  int                   `json:"version"`
	Settings models.Settings       `json:"settings"`
	Mantras  []models.Mantra       `json:"mantras"`
	Session  models.Session        `json:"current_session"`
	History  []models.HistoryEntry `json:"history"`
	Lifetime models.Lifetime       `json:"lifetime_stats"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func defaultStore() *Store {
	return &Store{
		Version:  1,
		Settings: models.DefaultSettings(),
		Mantras:  models.DefaultMantras(),
		History:  []models.HistoryEntry{},
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = defaultStore()
	return s.save()
}

// Load reads the blob from disk. Absent or unparseable data falls back
// to the seeded defaults; it is never an error visible to the caller.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.store = defaultStore()
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		logger.Warn("persisted data is corrupt, falling back to defaults", "path", s.path, "error", err)
		s.store = defaultStore()
		return nil
	}

	// Repair missing pieces individually rather than discarding the rest
	models.ApplyDefaultSettings(&s.store.Settings)
	if len(s.store.Mantras) == 0 {
		s.store.Mantras = models.DefaultMantras()
	}
	if s.store.History == nil {
		s.store.History = []models.HistoryEntry{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetAllMantras() ([]models.Mantra, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	mantras := make([]models.Mantra, len(s.store.Mantras))
	copy(mantras, s.store.Mantras)
	return mantras, nil
}

func (s *JSONStore) GetMantra(id string) (models.Mantra, error) {
	if s.store == nil {
		return models.Mantra{}, fmt.Errorf("storage not loaded")
	}

	for _, m := range s.store.Mantras {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Mantra{}, fmt.Errorf("mantra not found: %s", id)
}

func (s *JSONStore) AddMantra(mantra models.Mantra) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Mantras = append(s.store.Mantras, mantra)
	return s.save()
}

func (s *JSONStore) DeleteMantra(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, m := range s.store.Mantras {
		if m.ID == id {
			s.store.Mantras = append(s.store.Mantras[:i], s.store.Mantras[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("mantra not found: %s", id)
}

func (s *JSONStore) GetSession() (models.Session, error) {
	if s.store == nil {
		return models.Session{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Session, nil
}

func (s *JSONStore) SaveSession(session models.Session) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Session = session
	return s.save()
}

func (s *JSONStore) GetHistory() ([]models.HistoryEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	history := make([]models.HistoryEntry, len(s.store.History))
	copy(history, s.store.History)
	return history, nil
}

// SaveHistoryEntry merges the entry into the log: an existing row for
// the same date is overwritten, never duplicated.
func (s *JSONStore) SaveHistoryEntry(entry models.HistoryEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	replaced := false
	for i, h := range s.store.History {
		if h.Date == entry.Date {
			s.store.History[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		s.store.History = append(s.store.History, entry)
		sort.Slice(s.store.History, func(i, j int) bool {
			return s.store.History[i].Date < s.store.History[j].Date
		})
	}

	return s.save()
}

func (s *JSONStore) DeleteHistoryEntry(date string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, h := range s.store.History {
		if h.Date == date {
			s.store.History = append(s.store.History[:i], s.store.History[i+1:]...)
			return s.save()
		}
	}
	return nil
}

// PruneHistory evicts the oldest entries once the log exceeds the cap.
func (s *JSONStore) PruneHistory(cap int) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if cap > 0 && len(s.store.History) > cap {
		s.store.History = s.store.History[len(s.store.History)-cap:]
		return s.save()
	}
	return nil
}

func (s *JSONStore) GetLifetime() (models.Lifetime, error) {
	if s.store == nil {
		return models.Lifetime{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Lifetime, nil
}

func (s *JSONStore) SaveLifetime(lifetime models.Lifetime) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Lifetime = lifetime
	return s.save()
}

// ResetAll clears session, history, and lifetime in one write so no
// partial reset state is ever visible on disk.
func (s *JSONStore) ResetAll() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Session = models.Session{}
	s.store.History = []models.HistoryEntry{}
	s.store.Lifetime = models.Lifetime{}
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines
//     without external synchronization.
//   - Running multiple naamjap processes that share the same storage
//     path at the same time is not supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
