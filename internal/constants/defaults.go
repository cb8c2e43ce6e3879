package constants

const (
	AppName           = "naamjap"
	DefaultConfigPath = "~/.config/naamjap/naamjap.db"
	Version           = "v1.0.1"

	// DateFormat is the calendar-day key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Setting keys as stored in the key-value settings table
	SettingTargetCount      = "target_count"
	SettingSoundEnabled     = "sound_enabled"
	SettingVibrationEnabled = "vibration_enabled"
	SettingDarkMode         = "dark_mode"
	SettingSelectedMantra   = "selected_mantra_id"

	// Default Settings Values
	DefaultTargetCount      = 108
	DefaultSoundEnabled     = true
	DefaultVibrationEnabled = true
	DefaultDarkMode         = false

	// MinTargetCount is the floor a target count is clamped to at the
	// settings boundary. The counter engine never sees anything lower.
	MinTargetCount = 1

	// HistoryCap bounds the per-day history log (~2 years). Oldest
	// entries are evicted first once the cap is exceeded.
	HistoryCap = 730

	// DefaultHistoryTail is how many recent entries `history` shows.
	DefaultHistoryTail = 5
)

func init() {
	// Runtime validation: a history cap below 1 would make every fold evict itself
	if HistoryCap < 1 {
		panic("HistoryCap must be at least 1")
	}
}
