package counter

import (
	"testing"

	"github.com/nirmalgaihre/naamjap/internal/models"
)

func TestIncrement_MalaRollover(t *testing.T) {
	target := 108
	session := models.Session{Date: "2025-06-01", TargetCount: target}

	for i := 1; i <= 108; i++ {
		var res Result
		session, res = Increment(session, target)

		wantCompleted := i == 108
		if res.Completed != wantCompleted {
			t.Errorf("tap %d: Completed = %v, want %v", i, res.Completed, wantCompleted)
		}

		wantDisplay := i % target
		if i%target == 0 {
			wantDisplay = target
		}
		if res.Display != wantDisplay {
			t.Errorf("tap %d: Display = %d, want %d", i, res.Display, wantDisplay)
		}
	}

	if session.Count != 108 {
		t.Errorf("session count = %d, want 108", session.Count)
	}
	if session.Malas != 1 {
		t.Errorf("session malas = %d, want 1", session.Malas)
	}
}

func TestIncrement_CompletionExactlyOncePerCycle(t *testing.T) {
	// Property: for any target T and N taps, malas completed == floor(N/T)
	cases := []struct {
		target int
		taps   int
		malas  int
	}{
		{10, 23, 2},
		{108, 108, 1},
		{108, 216, 2},
		{1, 5, 5},
		{3, 2, 0},
	}

	for _, tc := range cases {
		session := models.Session{TargetCount: tc.target}
		completions := 0
		for i := 0; i < tc.taps; i++ {
			var res Result
			session, res = Increment(session, tc.target)
			if res.Completed {
				completions++
			}
		}
		if completions != tc.malas {
			t.Errorf("target=%d taps=%d: completions = %d, want %d", tc.target, tc.taps, completions, tc.malas)
		}
		if session.Malas != tc.malas {
			t.Errorf("target=%d taps=%d: session.Malas = %d, want %d", tc.target, tc.taps, session.Malas, tc.malas)
		}
		if got := MalasCompleted(session.Count, tc.target); got != tc.malas {
			t.Errorf("target=%d taps=%d: MalasCompleted = %d, want %d", tc.target, tc.taps, got, tc.malas)
		}
	}
}

func TestIncrement_DisplayAfter23TapsOfTen(t *testing.T) {
	session := models.Session{TargetCount: 10}
	var res Result
	for i := 0; i < 23; i++ {
		session, res = Increment(session, 10)
	}
	if res.Display != 3 {
		t.Errorf("display after 23 taps of target 10 = %d, want 3", res.Display)
	}
	if session.Malas != 2 {
		t.Errorf("malas after 23 taps of target 10 = %d, want 2", session.Malas)
	}
}

func TestIncrement_FeedbackCues(t *testing.T) {
	session := models.Session{TargetCount: 2}

	session, res := Increment(session, 2)
	if res.Chime || res.Pulse != PulseShort {
		t.Errorf("ordinary tap: Chime=%v Pulse=%v, want no chime and short pulse", res.Chime, res.Pulse)
	}

	_, res = Increment(session, 2)
	if !res.Chime || res.Pulse != PulseDouble {
		t.Errorf("completing tap: Chime=%v Pulse=%v, want chime and double pulse", res.Chime, res.Pulse)
	}
}

func TestDisplay_FreshDayShowsZero(t *testing.T) {
	if got := Display(0, 108); got != 0 {
		t.Errorf("Display(0, 108) = %d, want 0", got)
	}
}
