// Package behavior implements the engagement and credit economy engine:
// a single-session state machine that turns raw interaction events into
// XP and level progression, keeps a solvency-checked credit balance,
// unlocks one-shot achievements and milestones, and feeds the transient
// notification queue.
package behavior

import (
	"slices"
	"time"
)

// DefaultCredits is the starting balance for a fresh session.
const DefaultCredits = 1000

// State is the full engagement snapshot for one local session. Slices
// carry set semantics in unlock order; use the Has* helpers for
// membership checks. All mutation goes through the engine.
type State struct {
	Clicks           int       `json:"clicks"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	PagesVisited     []string  `json:"pagesVisited"`
	ActionsCompleted []string  `json:"actionsCompleted"`
	Streak           int       `json:"streak"`
	Level            int       `json:"level"`
	XP               int       `json:"xp"`
	Credits          int       `json:"credits"`
	LastActive       time.Time `json:"lastActive"`
	Achievements     []string  `json:"achievements"`
	Milestones       []string  `json:"milestones"`
}

// DefaultState returns the snapshot used when nothing has been persisted.
func DefaultState() State {
	return State{
		Streak:  1,
		Level:   1,
		Credits: DefaultCredits,
	}
}

// Clone returns a deep copy so callers can never alias engine-owned slices.
func (s State) Clone() State {
	cp := s
	cp.PagesVisited = slices.Clone(s.PagesVisited)
	cp.ActionsCompleted = slices.Clone(s.ActionsCompleted)
	cp.Achievements = slices.Clone(s.Achievements)
	cp.Milestones = slices.Clone(s.Milestones)
	return cp
}

// Threshold returns the XP value at which the next level-up occurs.
func (s State) Threshold() int {
	return levelThreshold(s.Level)
}

// HasPage reports whether page has already been visited.
func (s State) HasPage(page string) bool {
	return slices.Contains(s.PagesVisited, page)
}

// HasAchievement reports whether the achievement id is unlocked.
func (s State) HasAchievement(id string) bool {
	return slices.Contains(s.Achievements, id)
}

// HasMilestone reports whether the milestone id is unlocked.
func (s State) HasMilestone(id string) bool {
	return slices.Contains(s.Milestones, id)
}

// IsAddicted derives the heavy-engagement flag from the current counters.
// Never stored; recomputed on demand.
func (s State) IsAddicted() bool {
	return s.Clicks > 20 || s.TimeSpentSeconds > 180
}

func levelThreshold(level int) int {
	return level * 100
}
