package cli

import "fmt"

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	snap := tr.Snapshot()
	fmt.Printf("Target count:  %d chants per mala\n", snap.Settings.TargetCount)
	fmt.Printf("Sound:         %s\n", onOff(snap.Settings.SoundEnabled))
	fmt.Printf("Vibration:     %s\n", onOff(snap.Settings.VibrationEnabled))
	fmt.Printf("Dark mode:     %s\n", onOff(snap.Settings.DarkMode))
	fmt.Printf("Mantra:        %s (%s)\n", snap.ActiveMantra.Text, snap.ActiveMantra.ID)
	return nil
}

type SettingsSetCmd struct {
	Target    int    `help:"Chants per mala." default:"-1"`
	Sound     string `help:"Completion chime: on or off." enum:"on,off," default:""`
	Vibration string `help:"Haptic pulses: on or off." enum:"on,off," default:""`
	DarkMode  string `help:"Dark theme: on or off." enum:"on,off," default:""`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings := tr.Snapshot().Settings
	if c.Target >= 0 {
		settings.TargetCount = c.Target
	}
	if c.Sound != "" {
		settings.SoundEnabled = c.Sound == "on"
	}
	if c.Vibration != "" {
		settings.VibrationEnabled = c.Vibration == "on"
	}
	if c.DarkMode != "" {
		settings.DarkMode = c.DarkMode == "on"
	}

	if err := tr.UpdateSettings(settings); err != nil {
		return err
	}

	applied := tr.Snapshot().Settings
	fmt.Printf("Settings updated: target %d, sound %s, vibration %s, dark mode %s\n",
		applied.TargetCount, onOff(applied.SoundEnabled),
		onOff(applied.VibrationEnabled), onOff(applied.DarkMode))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
