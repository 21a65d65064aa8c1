package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/engage/internal/notify"
	"github.com/abhisek/engage/internal/ui/theme"
)

// Toast renders a single notification as a bordered card line.
func Toast(n notify.Notification, width int, selected bool) string {
	title := theme.Title.Render(n.Icon + " " + n.Title)
	body := theme.Body.Render(n.Message)

	reward := ""
	if n.Reward != nil {
		sign := "+"
		if n.Reward.Amount < 0 {
			sign = ""
		}
		reward = theme.CreditAmount.Render(fmt.Sprintf("  %s%d %s", sign, n.Reward.Amount, n.Reward.Kind))
	}

	card := theme.Card
	if selected {
		card = card.BorderForeground(theme.Primary)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, body+reward)
	if width > 4 {
		card = card.Width(width - 2)
	}
	return card.Render(content)
}
