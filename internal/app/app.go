// Package app hosts the Bubble Tea dashboard: a reference collaborator
// that feeds events into the behavior engine and renders its snapshot
// and notification feed.
package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/engage/internal/behavior"
	"github.com/abhisek/engage/internal/ui/components"
)

// pages the p key cycles through, mirroring the surfaces of the hosting
// funding platform.
var pages = []string{"dashboard", "opportunities", "proposals", "donors", "settings"}

// refreshMsg redraws the dashboard so clock ticks and notification
// expiry become visible without user input.
type refreshMsg time.Time

// Model is the root dashboard model.
type Model struct {
	engine *behavior.Engine

	input    components.ActionInput
	entering bool

	pageIdx  int
	selected int

	width  int
	height int
}

func newModel(engine *behavior.Engine) Model {
	return Model{
		engine: engine,
		input:  components.NewActionInput("apply:grant-42"),
	}
}

func (m Model) Init() tea.Cmd {
	return refreshCmd()
}

func refreshCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.clampSelection()
		return m, refreshCmd()

	case tea.KeyMsg:
		if m.entering {
			return m.updateEntering(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateEntering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if v := m.input.Value(); v != "" {
			m.engine.TrackAction(v)
		}
		m.entering = false
		m.input.Blur()
		return m, nil
	case "esc":
		m.entering = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "c":
		m.engine.TrackClick("click", "card")
	case "o":
		m.engine.TrackClick("view", "opportunity-card")
	case "p":
		m.engine.TrackPageVisit(pages[m.pageIdx])
		m.pageIdx = (m.pageIdx + 1) % len(pages)
	case "a":
		m.entering = true
		return m, m.input.Focus()
	case "b":
		m.engine.AddCredits(100, "daily bonus")
	case "s":
		m.engine.DeductCredits(250, "ai proposal draft")
	case "d":
		m.engine.UpdateStreak(m.engine.Behavior().Streak + 1)

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		m.selected++
		m.clampSelection()
	case "x":
		ns := m.engine.Notifications()
		if m.selected < len(ns) {
			m.engine.Dismiss(ns[m.selected].ID)
			m.clampSelection()
		}
	}
	return m, nil
}

func (m *Model) clampSelection() {
	n := len(m.engine.Notifications())
	if n == 0 {
		m.selected = 0
	} else if m.selected >= n {
		m.selected = n - 1
	}
}

// Run starts the dashboard program and blocks until it exits.
func Run(engine *behavior.Engine) error {
	p := tea.NewProgram(newModel(engine))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
