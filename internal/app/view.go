package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/engage/internal/ui/components"
	"github.com/abhisek/engage/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	st := m.engine.Behavior()

	header := theme.Bar.Width(m.width).Render(
		theme.Title.Render("  Engage") +
			theme.Dim.Render("  ·  ") +
			theme.CreditAmount.Render(fmt.Sprintf("◆ %d credits", st.Credits)) +
			theme.Dim.Render("  ·  ") +
			theme.Body.Render(fmt.Sprintf("🔥 %d day streak", st.Streak)),
	)

	bar := components.XPBar(st.Level, st.XP, st.Threshold(), m.width-4)

	stats := theme.Dim.Render(fmt.Sprintf(
		"  clicks %d   time %ds   pages %d   actions %d   achievements %d",
		st.Clicks, st.TimeSpentSeconds, len(st.PagesVisited),
		len(st.ActionsCompleted), len(st.Achievements),
	))
	if st.IsAddicted() {
		stats += theme.Warning.Render("   ⚠ take a break")
	}

	var feed []string
	ns := m.engine.Notifications()
	if len(ns) == 0 {
		feed = append(feed, theme.Hint.Render("  no notifications"))
	}
	for i, n := range ns {
		feed = append(feed, components.Toast(n, m.width-4, i == m.selected))
	}

	bottom := theme.Hint.Render(
		"  c click · o opportunity · p page · a action · b bonus · s spend · d streak · x dismiss · q quit")
	if m.entering {
		bottom = "  " + m.input.View()
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		"  "+bar,
		stats,
		"",
		strings.Join(feed, "\n"),
	)

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 1).
		Render(body)

	v.SetContent(content + "\n" + bottom)
	return v
}
