package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nirmalgaihre/naamjap/internal/stats"
	"github.com/nirmalgaihre/naamjap/internal/tracker"
)

type SessionState int

const (
	StateCount SessionState = iota
	StateStats
	StateMantras
	StateAddMantra
	StateConfirmDeleteMantra
	StateConfirmReset
	StateConfirmResetAgain
)

// tabCount is how many states are reachable with tab cycling.
const tabCount = 3

// markerLifetime is how long a floating +1 marker stays on screen.
const markerLifetime = time.Second

// celebrationLifetime is how long the mala completion banner shows.
const celebrationLifetime = 2 * time.Second

type marker struct {
	text    string
	expires time.Time
}

// tickMsg drives marker and celebration expiry.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	tracker *tracker.Tracker
	snap    tracker.Snapshot

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	form       *huh.Form
	mantraText string

	statsWindow int // index into stats.Windows()

	mantraCursor   int
	mantraToDelete string

	markers        []marker
	celebrating    bool
	celebrateUntil time.Time

	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(tr *tracker.Tracker) Model {
	return Model{
		tracker: tr,
		snap:    tr.Snapshot(),
		state:   StateCount,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateCount:
		keys = append(keys, m.keys.Tap, m.keys.End, m.keys.Reset)
	case StateStats:
		keys = append(keys, m.keys.Left, m.keys.Right)
	case StateMantras:
		keys = append(keys, m.keys.Enter, m.keys.Add, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateCount:
		actions = []key.Binding{m.keys.Tap, m.keys.End, m.keys.Reset}
	case StateMantras:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) currentWindow() stats.Window {
	return stats.Windows()[m.statsWindow]
}

// newMantraForm builds the huh input shown in the add-mantra state.
func newMantraForm(value *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("New mantra").
			Placeholder("ॐ ...").
			Value(value),
	))
}
