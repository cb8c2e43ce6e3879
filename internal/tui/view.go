package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateCount:
		content = m.viewCount()
	case StateStats:
		content = m.viewStats()
	case StateMantras:
		content = m.viewMantras()
	case StateAddMantra:
		if m.form != nil {
			content = docStyle.Render(m.form.View())
		}
	case StateConfirmDeleteMantra:
		content = m.viewConfirmDelete()
	case StateConfirmReset, StateConfirmResetAgain:
		content = m.viewConfirmReset()
	}

	sections := []string{m.viewTabs(), content}
	if m.errMsg != "" {
		sections = append(sections, dangerStyle.Render("  "+m.errMsg))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Japa", "Stats", "Mantras"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewCount() string {
	target := m.snap.Settings.TargetCount

	lines := []string{
		mantraStyle.Render(m.snap.ActiveMantra.Text),
		"",
		countStyle.Render(fmt.Sprintf("%d", m.snap.Display)) + dimStyle.Render(fmt.Sprintf(" / %d", target)),
		m.progressBar(),
		"",
		fmt.Sprintf("Today: %d chants, %d malas", m.snap.TodayChants, m.snap.TodayMalas),
		dimStyle.Render(fmt.Sprintf("Lifetime: %d chants, %d malas", m.snap.Lifetime.Chants, m.snap.Lifetime.Malas)),
	}

	if m.celebrating {
		lines = append(lines, "", celebrationStyle.Render("🙏 Mala complete!"))
	}
	if len(m.markers) > 0 {
		texts := make([]string, len(m.markers))
		for i, mk := range m.markers {
			texts[i] = mk.text
		}
		lines = append(lines, "", markerStyle.Render(strings.Join(texts, " ")))
	}

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(max(m.width, 1), max(m.height-4, len(lines)),
		lipgloss.Center, lipgloss.Center, block)
}

// progressBar renders position within the current mala.
func (m Model) progressBar() string {
	const width = 30
	target := m.snap.Settings.TargetCount
	filled := 0
	if target > 0 {
		filled = m.snap.Display * width / target
	}
	if filled > width {
		filled = width
	}
	return progressFilled.Render(strings.Repeat("█", filled)) +
		progressEmpty.Render(strings.Repeat("░", width-filled))
}

func (m Model) viewStats() string {
	w := m.currentWindow()
	totals, err := m.tracker.Stats(w)
	if err != nil {
		return docStyle.Render(dangerStyle.Render(err.Error()))
	}
	series, err := m.tracker.Series(w)
	if err != nil {
		return docStyle.Render(dangerStyle.Render(err.Error()))
	}

	lines := []string{
		fmt.Sprintf("%s  %s", countStyle.Render(totals.Label), dimStyle.Render("←/→ to change window")),
		"",
		fmt.Sprintf("Chants: %d    Malas: %d    Avg: %d/day",
			totals.Chants, totals.Malas, totals.Chants/totals.Days),
		"",
	}

	maxVal := 0
	for _, p := range series {
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}
	const barWidth = 30
	for _, p := range series {
		bar := 0
		if maxVal > 0 {
			bar = p.Value * barWidth / maxVal
		}
		lines = append(lines, fmt.Sprintf("%-6s %s %d",
			p.Label, progressFilled.Render(strings.Repeat("▇", bar)), p.Value))
	}

	return docStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewMantras() string {
	lines := []string{"Mantras", ""}
	for i, mantra := range m.snap.Mantras {
		cursor := "  "
		if i == m.mantraCursor {
			cursor = "> "
		}
		line := cursor + mantra.Text
		if mantra.ID == m.snap.Settings.SelectedMantraID {
			line += " *"
		}
		if mantra.IsCustom {
			line += dimStyle.Render(" (custom)")
		}
		if i == m.mantraCursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", dimStyle.Render("enter: chant this  a: add  d: delete"))
	return docStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(max(m.width, 1), max(m.height-4, 6),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this mantra?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmReset() string {
	title := fmt.Sprintf("Discard today's %d chants?", m.snap.TodayChants)
	if m.state == StateConfirmResetAgain {
		title = "Are you absolutely sure? This cannot be undone."
	}
	return lipgloss.Place(max(m.width, 1), max(m.height-4, 6),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(title),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
