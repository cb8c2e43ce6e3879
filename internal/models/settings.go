package models

import (
	"fmt"

	"github.com/nirmalgaihre/naamjap/internal/constants"
)

// Settings represents application-wide user preferences
type Settings struct {
	TargetCount      int    `json:"target_count"`       // chants per mala, e.g. 108
	SoundEnabled     bool   `json:"sound_enabled"`      // whether the completion chime plays
	VibrationEnabled bool   `json:"vibration_enabled"`  // whether haptic pulses fire
	DarkMode         bool   `json:"dark_mode"`          // whether the dark theme is active
	SelectedMantraID string `json:"selected_mantra_id"` // must reference an existing mantra
}

// DefaultSettings returns the documented defaults applied on init,
// after a full reset, and when persisted data is missing or corrupt.
func DefaultSettings() Settings {
	return Settings{
		TargetCount:      constants.DefaultTargetCount,
		SoundEnabled:     constants.DefaultSoundEnabled,
		VibrationEnabled: constants.DefaultVibrationEnabled,
		DarkMode:         constants.DefaultDarkMode,
		SelectedMantraID: DefaultMantras()[0].ID,
	}
}

// Normalize repairs a Settings value in place rather than rejecting it:
// a non-positive target is clamped so the counter engine never sees one.
func (s *Settings) Normalize() {
	if s.TargetCount < constants.MinTargetCount {
		s.TargetCount = constants.MinTargetCount
	}
	if s.SelectedMantraID == "" {
		s.SelectedMantraID = DefaultMantras()[0].ID
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.TargetCount == 0 {
		settings.TargetCount = constants.DefaultTargetCount
	}
	if settings.SelectedMantraID == "" {
		settings.SelectedMantraID = DefaultMantras()[0].ID
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTargetCount:
			if _, err := fmt.Sscanf(value, "%d", &settings.TargetCount); err != nil {
				return Settings{}, fmt.Errorf("parsing target_count: %w", err)
			}
		case constants.SettingSoundEnabled:
			settings.SoundEnabled = value == "true"
		case constants.SettingVibrationEnabled:
			settings.VibrationEnabled = value == "true"
		case constants.SettingDarkMode:
			settings.DarkMode = value == "true"
		case constants.SettingSelectedMantra:
			settings.SelectedMantraID = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTargetCount:      fmt.Sprintf("%d", settings.TargetCount),
		constants.SettingSoundEnabled:     fmt.Sprintf("%v", settings.SoundEnabled),
		constants.SettingVibrationEnabled: fmt.Sprintf("%v", settings.VibrationEnabled),
		constants.SettingDarkMode:         fmt.Sprintf("%v", settings.DarkMode),
		constants.SettingSelectedMantra:   settings.SelectedMantraID,
	}
}
