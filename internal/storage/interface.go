package storage

import "github.com/nirmalgaihre/naamjap/internal/models"

// Provider is the persistence boundary. Malformed or absent data
// resolves to seeded defaults behind Load; errors surface only for real
// I/O failures. Providers are not safe for concurrent use; the tracker
// is the sole writer.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Mantras
	GetAllMantras() ([]models.Mantra, error)
	GetMantra(id string) (models.Mantra, error)
	AddMantra(models.Mantra) error
	DeleteMantra(id string) error

	// Live session
	GetSession() (models.Session, error)
	SaveSession(models.Session) error

	// History (one entry per calendar day, ascending by date)
	GetHistory() ([]models.HistoryEntry, error)
	SaveHistoryEntry(models.HistoryEntry) error
	DeleteHistoryEntry(date string) error
	PruneHistory(cap int) error

	// Lifetime cache
	GetLifetime() (models.Lifetime, error)
	SaveLifetime(models.Lifetime) error

	// ResetAll clears session, history, and lifetime atomically.
	// Settings and the mantra list survive a reset.
	ResetAll() error

	// Utils
	GetConfigPath() string
}
