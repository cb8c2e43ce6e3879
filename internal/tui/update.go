package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nirmalgaihre/naamjap/internal/stats"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		kept := m.markers[:0]
		for _, mk := range m.markers {
			if now.Before(mk.expires) {
				kept = append(kept, mk)
			}
		}
		m.markers = kept
		if m.celebrating && now.After(m.celebrateUntil) {
			m.celebrating = false
		}
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == StateAddMantra && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal states own the keyboard
	switch m.state {
	case StateAddMantra:
		if msg.Type == tea.KeyEsc {
			m.state = StateMantras
			m.form = nil
			return m, nil
		}
		return m.updateForm(msg)
	case StateConfirmDeleteMantra:
		return m.handleConfirmDelete(msg)
	case StateConfirmReset, StateConfirmResetAgain:
		return m.handleConfirmReset(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		// Flush today's progress before leaving
		if err := m.tracker.EndSession(); err != nil {
			m.errMsg = err.Error()
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case StateCount:
		return m.handleCountKey(msg)
	case StateStats:
		return m.handleStatsKey(msg)
	case StateMantras:
		return m.handleMantrasKey(msg)
	}
	return m, nil
}

func (m Model) handleCountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tap), key.Matches(msg, m.keys.Enter):
		res, err := m.tracker.Increment()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.snap = res.Snapshot

		now := time.Now()
		m.markers = append(m.markers, marker{text: "+1", expires: now.Add(markerLifetime)})
		if res.MalaCompleted {
			m.celebrating = true
			m.celebrateUntil = now.Add(celebrationLifetime)
		}
		return m, nil

	case key.Matches(msg, m.keys.End):
		if err := m.tracker.EndSession(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.snap = m.tracker.Snapshot()
		m.markers = append(m.markers, marker{text: "saved", expires: time.Now().Add(markerLifetime)})
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		if m.snap.TodayChants == 0 {
			return m, nil
		}
		m.previousState = m.state
		m.state = StateConfirmReset
		return m, nil
	}
	return m, nil
}

func (m Model) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(stats.Windows())
	switch {
	case key.Matches(msg, m.keys.Right):
		m.statsWindow = (m.statsWindow + 1) % n
	case key.Matches(msg, m.keys.Left):
		m.statsWindow = (m.statsWindow - 1 + n) % n
	}
	return m, nil
}

func (m Model) handleMantrasKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.mantraCursor > 0 {
			m.mantraCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.mantraCursor < len(m.snap.Mantras)-1 {
			m.mantraCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.mantraCursor < len(m.snap.Mantras) {
			if err := m.tracker.SelectMantra(m.snap.Mantras[m.mantraCursor].ID); err != nil {
				m.errMsg = err.Error()
			} else {
				m.errMsg = ""
				m.snap = m.tracker.Snapshot()
			}
		}
	case key.Matches(msg, m.keys.Add):
		m.mantraText = ""
		m.form = newMantraForm(&m.mantraText)
		m.previousState = m.state
		m.state = StateAddMantra
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Delete):
		if m.mantraCursor < len(m.snap.Mantras) {
			target := m.snap.Mantras[m.mantraCursor]
			if !target.IsCustom {
				m.errMsg = "built-in mantras cannot be deleted"
				return m, nil
			}
			m.mantraToDelete = target.ID
			m.previousState = m.state
			m.state = StateConfirmDeleteMantra
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if _, err := m.tracker.AddMantra(m.mantraText); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
			m.snap = m.tracker.Snapshot()
			m.mantraCursor = len(m.snap.Mantras) - 1
		}
		m.state = StateMantras
		m.form = nil
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.state = StateMantras
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.tracker.DeleteMantra(m.mantraToDelete); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
			m.snap = m.tracker.Snapshot()
			if m.mantraCursor >= len(m.snap.Mantras) {
				m.mantraCursor = len(m.snap.Mantras) - 1
			}
		}
		m.mantraToDelete = ""
		m.state = m.previousState
	case "n", "N", "esc", "q":
		m.mantraToDelete = ""
		m.state = m.previousState
	}
	return m, nil
}

// handleConfirmReset walks the two-step confirmation before today's
// count is discarded.
func (m Model) handleConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.state == StateConfirmReset {
			m.state = StateConfirmResetAgain
			return m, nil
		}
		if err := m.tracker.ResetSession(); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
			m.snap = m.tracker.Snapshot()
			m.markers = append(m.markers, marker{
				text:    fmt.Sprintf("reset at %s", time.Now().Format("15:04")),
				expires: time.Now().Add(markerLifetime),
			})
		}
		m.state = m.previousState
	case "n", "N", "esc", "q":
		m.state = m.previousState
	}
	return m, nil
}
