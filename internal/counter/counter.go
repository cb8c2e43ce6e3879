// Package counter implements the tap-to-increment engine: a pure
// function of (session, tap) that rolls chant counts over into
// completed malas. It performs no side effects itself; feedback cues
// are returned for the caller to dispatch.
package counter

import "github.com/nirmalgaihre/naamjap/internal/models"

// Pulse is a haptic cue requested by a tap.
type Pulse int

const (
	// PulseShort is the ordinary per-tap pulse.
	PulseShort Pulse = iota
	// PulseDouble is the longer double pulse fired on mala completion.
	PulseDouble
)

// Result describes the outcome of a single tap.
type Result struct {
	// Completed is true exactly once per multiple-of-target tap.
	Completed bool
	// Display is the count to show for this tap: the full target on the
	// completing tap, the position within the current cycle otherwise.
	Display int
	// Chime is true when the completion chime should play (subject to
	// the sound setting, which the caller gates on).
	Chime bool
	// Pulse is the haptic pattern to fire (subject to the vibration setting).
	Pulse Pulse
}

// Increment applies one tap to the session. The session's count and
// mala tally are advanced; the target must already be normalized to a
// positive value at the settings boundary.
func Increment(session models.Session, target int) (models.Session, Result) {
	session.Count++

	res := Result{
		Display: Display(session.Count, target),
		Pulse:   PulseShort,
	}

	if session.Count%target == 0 {
		session.Malas++
		res.Completed = true
		res.Chime = true
		res.Pulse = PulseDouble
	}

	return session, res
}

// Display returns the count shown after the k-th tap of the day: the
// full target on a completing tap (never 0), the cycle position
// otherwise. A fresh day shows 0.
func Display(count, target int) int {
	if count > 0 && count%target == 0 {
		return target
	}
	return count % target
}

// MalasCompleted is the number of full cycles in count taps.
func MalasCompleted(count, target int) int {
	if target < 1 {
		return 0
	}
	return count / target
}
