// Package chime is the audio/haptic collaborator. Playback is
// fire-and-forget: a request must never block or delay the counting
// state update, and failures are swallowed, never surfaced.
package chime

import (
	"io"
	"os"

	"github.com/nirmalgaihre/naamjap/internal/counter"
	"github.com/nirmalgaihre/naamjap/internal/logger"
)

// Notifier receives playback requests from the tracker. Implementations
// must return immediately.
type Notifier interface {
	PlayChime()
	Vibrate(pattern counter.Pulse)
}

// Terminal sounds the terminal bell. There is no haptic hardware to
// drive, so Vibrate is a no-op kept for interface completeness.
type Terminal struct {
	w io.Writer
}

func NewTerminal() *Terminal {
	return &Terminal{w: os.Stderr}
}

func (t *Terminal) PlayChime() {
	go func() {
		if _, err := t.w.Write([]byte("\a")); err != nil {
			logger.Warn("chime playback failed", "error", err)
		}
	}()
}

func (t *Terminal) Vibrate(pattern counter.Pulse) {}

// Silent discards all requests. Used by non-interactive commands and tests.
type Silent struct{}

func (Silent) PlayChime() {}
func (Silent) Vibrate(pattern counter.Pulse) {}
