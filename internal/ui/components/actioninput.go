package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/engage/internal/ui/theme"
)

// ActionInput wraps bubbles/textinput for free-form action entry on the
// dashboard (e.g. "apply:grant-42").
type ActionInput struct {
	Model textinput.Model
}

// NewActionInput creates a focused input with the given placeholder.
func NewActionInput(placeholder string) ActionInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	return ActionInput{Model: ti}
}

// Focus focuses the input and returns its blink command.
func (a *ActionInput) Focus() tea.Cmd {
	return a.Model.Focus()
}

// Blur removes focus and clears the value.
func (a *ActionInput) Blur() {
	a.Model.Blur()
	a.Model.SetValue("")
}

// Update forwards messages to the underlying model.
func (a ActionInput) Update(msg tea.Msg) (ActionInput, tea.Cmd) {
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input with a prompt label.
func (a ActionInput) View() string {
	return theme.Hint.Render("action> ") + a.Model.View()
}

// Value returns the current input value.
func (a ActionInput) Value() string {
	return a.Model.Value()
}
