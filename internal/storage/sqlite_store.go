package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nirmalgaihre/naamjap/internal/logger"
	"github.com/nirmalgaihre/naamjap/internal/migration"
	"github.com/nirmalgaihre/naamjap/internal/models"
	"github.com/nirmalgaihre/naamjap/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Run migrations
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return s.seedDefaults()
}

// Load opens the database, creating and seeding it when absent so a
// missing store is never a fatal condition.
func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	fresh := false
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		fresh = true
	}

	if fresh {
		return s.Init()
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Apply any migrations shipped since the database was created
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return s.seedDefaults()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg)
	})
	return err
}

// seedDefaults fills in settings and the built-in mantra list when the
// tables are empty, so a fresh or wiped database behaves like first run.
func (s *SQLiteStore) seedDefaults() error {
	settings, err := s.GetSettings()
	if err != nil || settings.TargetCount == 0 {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM mantras").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for _, m := range models.DefaultMantras() {
			if err := s.AddMantra(m); err != nil {
				return fmt.Errorf("failed to seed mantra %s: %w", m.ID, err)
			}
		}
	}

	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	settings, err := models.MapToSettings(data)
	if err != nil {
		// Corrupt values repair to defaults rather than failing the caller
		logger.Warn("stored settings are corrupt, falling back to defaults", "error", err)
		return models.DefaultSettings(), nil
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.Exec(key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetAllMantras() ([]models.Mantra, error) {
	rows, err := s.db.Query("SELECT id, text, is_custom FROM mantras ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mantras []models.Mantra
	for rows.Next() {
		var m models.Mantra
		if err := rows.Scan(&m.ID, &m.Text, &m.IsCustom); err != nil {
			return nil, err
		}
		mantras = append(mantras, m)
	}
	return mantras, rows.Err()
}

func (s *SQLiteStore) GetMantra(id string) (models.Mantra, error) {
	row := s.db.QueryRow("SELECT id, text, is_custom FROM mantras WHERE id = ?", id)

	var m models.Mantra
	if err := row.Scan(&m.ID, &m.Text, &m.IsCustom); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Mantra{}, fmt.Errorf("mantra not found: %s", id)
		}
		return models.Mantra{}, err
	}
	return m, nil
}

func (s *SQLiteStore) AddMantra(mantra models.Mantra) error {
	// Append at the end of display order
	var position int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(position), 0) + 1 FROM mantras").Scan(&position); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO mantras (id, text, is_custom, position) VALUES (?, ?, ?, ?)",
		mantra.ID, mantra.Text, mantra.IsCustom, position,
	)
	return err
}

func (s *SQLiteStore) DeleteMantra(id string) error {
	res, err := s.db.Exec("DELETE FROM mantras WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("mantra not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) GetSession() (models.Session, error) {
	row := s.db.QueryRow("SELECT date, count, malas, mantra_id, target_count, start_time FROM session WHERE id = 1")

	var sess models.Session
	var startTime sql.NullString
	err := row.Scan(&sess.Date, &sess.Count, &sess.Malas, &sess.MantraID, &sess.TargetCount, &startTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No live session yet; the tracker starts a fresh one
			return models.Session{}, nil
		}
		return models.Session{}, err
	}

	if startTime.Valid {
		t, err := time.Parse(time.RFC3339, startTime.String)
		if err != nil {
			logger.Warn("session start_time is corrupt, ignoring", "value", startTime.String)
		} else {
			sess.StartTime = &t
		}
	}

	return sess, nil
}

func (s *SQLiteStore) SaveSession(session models.Session) error {
	var startTime sql.NullString
	if session.StartTime != nil {
		startTime = sql.NullString{String: session.StartTime.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO session (id, date, count, malas, mantra_id, target_count, start_time)
		VALUES (1, ?, ?, ?, ?, ?, ?)`,
		session.Date, session.Count, session.Malas, session.MantraID, session.TargetCount, startTime,
	)
	return err
}

func (s *SQLiteStore) GetHistory() ([]models.HistoryEntry, error) {
	rows, err := s.db.Query("SELECT date, chants, malas, start_time FROM history ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.HistoryEntry
	for rows.Next() {
		var h models.HistoryEntry
		var startTime sql.NullString
		if err := rows.Scan(&h.Date, &h.Chants, &h.Malas, &startTime); err != nil {
			return nil, err
		}
		if startTime.Valid {
			if t, err := time.Parse(time.RFC3339, startTime.String); err == nil {
				h.StartTime = &t
			}
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (s *SQLiteStore) SaveHistoryEntry(entry models.HistoryEntry) error {
	var startTime sql.NullString
	if entry.StartTime != nil {
		startTime = sql.NullString{String: entry.StartTime.Format(time.RFC3339), Valid: true}
	}

	// date is the primary key: same-day saves merge, never duplicate
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO history (date, chants, malas, start_time) VALUES (?, ?, ?, ?)",
		entry.Date, entry.Chants, entry.Malas, startTime,
	)
	return err
}

func (s *SQLiteStore) DeleteHistoryEntry(date string) error {
	_, err := s.db.Exec("DELETE FROM history WHERE date = ?", date)
	return err
}

func (s *SQLiteStore) PruneHistory(cap int) error {
	if cap <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM history WHERE date NOT IN (
			SELECT date FROM history ORDER BY date DESC LIMIT ?
		)`, cap)
	return err
}

func (s *SQLiteStore) GetLifetime() (models.Lifetime, error) {
	row := s.db.QueryRow("SELECT chants, malas FROM lifetime WHERE id = 1")

	var lt models.Lifetime
	if err := row.Scan(&lt.Chants, &lt.Malas); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Lifetime{}, nil
		}
		return models.Lifetime{}, err
	}
	return lt, nil
}

func (s *SQLiteStore) SaveLifetime(lifetime models.Lifetime) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO lifetime (id, chants, malas) VALUES (1, ?, ?)",
		lifetime.Chants, lifetime.Malas,
	)
	return err
}

// ResetAll clears session, history, and lifetime in a single
// transaction so no partial reset state is ever visible.
func (s *SQLiteStore) ResetAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM session"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM lifetime"); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
