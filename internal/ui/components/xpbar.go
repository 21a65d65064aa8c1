package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/engage/internal/ui/theme"
)

// XPBar renders level progress as a filled bar with an xp/threshold
// counter, e.g. "Lv 3 ████░░░░ 40/300".
func XPBar(level, xp, threshold, width int) string {
	label := theme.Title.Render(fmt.Sprintf("Lv %d ", level))
	counter := theme.Dim.Render(fmt.Sprintf(" %d/%d", xp, threshold))

	barWidth := width - lipgloss.Width(label) - lipgloss.Width(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := 0
	if threshold > 0 {
		filled = barWidth * xp / threshold
	}
	if filled > barWidth {
		filled = barWidth
	}

	bar := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))

	return label + bar + counter
}
