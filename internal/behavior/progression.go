package behavior

import (
	"fmt"
	"strings"

	"github.com/abhisek/engage/internal/notify"
)

const (
	baseClickXP   = 2
	fastClickXP   = 5
	opportunityXP = 10
	pageVisitXP   = 5

	encouragementEvery = 10

	levelUpCreditsPerLevel = 50
	actionTakerCredits     = 100
)

// AddXP grants experience and pushes a reward notification. A single
// threshold crossing is processed per call even when the amount spans
// two levels; the remainder carries into the new level.
func (e *Engine) AddXP(amount int, reason string) {
	if amount < 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state.Clone()
	e.applyXP(&st, amount)
	e.push(notify.Notification{
		Category: notify.CategoryReward,
		Title:    "XP Earned",
		Message:  reason,
		Reward:   &notify.Reward{Kind: notify.RewardXP, Amount: amount},
	})
	e.checkAchievements(&st)
	e.checkMilestones(&st)
	e.replace(st)
}

// TrackClick records a click event: counts it, grants the per-click XP
// (fast-click bonus inside the 2s window), fires the every-10th-click
// encouragement, and the flat opportunity bonus when the element looks
// like a funding opportunity.
func (e *Engine) TrackClick(action, element string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	st := e.state.Clone()
	st.Clicks++
	st.LastActive = now
	st.ActionsCompleted = append(st.ActionsCompleted, action+":"+element)

	fast := !e.lastClickAt.IsZero() && now.Sub(e.lastClickAt) < fastClickWindow
	e.lastClickAt = now

	if fast {
		e.applyXP(&st, fastClickXP)
		e.pushReward("Quick Fingers!", "Fast click bonus", fastClickXP)
	} else {
		e.applyXP(&st, baseClickXP)
		e.pushReward("XP Earned", "Keep exploring", baseClickXP)
	}

	if st.Clicks%encouragementEvery == 0 {
		e.push(notify.Notification{
			Category: notify.CategoryEncouragement,
			Title:    "Keep Going!",
			Message:  encouragements[e.intn(len(encouragements))],
		})
	}

	if strings.Contains(element, "opportunity") || strings.Contains(element, "grant") {
		e.applyXP(&st, opportunityXP)
		e.pushReward("Opportunity Hunter!", "You found a funding opportunity", opportunityXP)
	}

	e.checkAchievements(&st)
	e.checkMilestones(&st)
	e.replace(st)
}

// TrackPageVisit grants the explorer reward the first time a page is
// seen. Repeat visits are a pure no-op.
func (e *Engine) TrackPageVisit(page string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.HasPage(page) {
		return
	}

	st := e.state.Clone()
	st.PagesVisited = append(st.PagesVisited, page)
	e.applyXP(&st, pageVisitXP)
	e.push(notify.Notification{
		Category: notify.CategoryAchievement,
		Title:    "Explorer!",
		Message:  fmt.Sprintf("You discovered %s", page),
		Reward:   &notify.Reward{Kind: notify.RewardXP, Amount: pageVisitXP},
	})
	e.checkAchievements(&st)
	e.checkMilestones(&st)
	e.replace(st)
}

// TrackAction appends to the completed-action log. Actions containing
// "apply" fire the Action Taker notification; its advertised credits are
// display-only and are not deposited here (callers that actually pay out
// invoke AddCredits themselves).
func (e *Engine) TrackAction(action string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state.Clone()
	st.ActionsCompleted = append(st.ActionsCompleted, action)
	st.LastActive = e.now()

	if strings.Contains(action, "apply") {
		e.push(notify.Notification{
			Category: notify.CategoryAchievement,
			Title:    "Action Taker!",
			Message:  "You're making real moves",
			Reward:   &notify.Reward{Kind: notify.RewardCredits, Amount: actionTakerCredits},
		})
	}

	e.checkAchievements(&st)
	e.replace(st)
}

// applyXP adds amount and performs at most one level-up normalization.
// Deliberately an if, not a loop: a grant spanning two thresholds leaves
// the surplus in the new level. When the crossing fires, the LEVEL UP
// notification advertises newLevel*50 credits without depositing them.
func (e *Engine) applyXP(st *State, amount int) {
	st.XP += amount
	if st.XP >= levelThreshold(st.Level) {
		st.XP -= levelThreshold(st.Level)
		st.Level++
		e.push(notify.Notification{
			Category: notify.CategoryMilestone,
			Title:    "LEVEL UP!",
			Message:  fmt.Sprintf("You reached level %d", st.Level),
			Reward:   &notify.Reward{Kind: notify.RewardCredits, Amount: st.Level * levelUpCreditsPerLevel},
		})
	}
}

func (e *Engine) pushReward(title, message string, amount int) {
	e.push(notify.Notification{
		Category: notify.CategoryReward,
		Title:    title,
		Message:  message,
		Reward:   &notify.Reward{Kind: notify.RewardXP, Amount: amount},
	})
}

// unlockRule is one row of the achievement/milestone predicate tables.
type unlockRule struct {
	id      string
	title   string
	message string
	met     func(State) bool
}

var achievementRules = []unlockRule{
	{
		id:      "click_master",
		title:   "Click Master!",
		message: "50 clicks and counting",
		met:     func(s State) bool { return s.Clicks >= 50 },
	},
	{
		id:      "time_warrior",
		title:   "Time Warrior!",
		message: "5 minutes of focus",
		met:     func(s State) bool { return s.TimeSpentSeconds >= 300 },
	},
}

var milestoneRules = []unlockRule{
	{
		id:      "level_5",
		title:   "Level 5 Reached!",
		message: "You're becoming a power user",
		met:     func(s State) bool { return s.Level >= 5 },
	},
}

// checkAchievements evaluates every achievement predicate against st and
// unlocks the ones newly met. Re-evaluation is cheap and idempotent: an
// unlocked id never fires its notification again. Callers hold e.mu.
func (e *Engine) checkAchievements(st *State) {
	for _, rule := range achievementRules {
		if st.HasAchievement(rule.id) || !rule.met(*st) {
			continue
		}
		st.Achievements = append(st.Achievements, rule.id)
		e.push(notify.Notification{
			Category: notify.CategoryAchievement,
			Title:    rule.title,
			Message:  rule.message,
		})
	}
}

// checkMilestones is checkAchievements for the milestone table.
func (e *Engine) checkMilestones(st *State) {
	for _, rule := range milestoneRules {
		if st.HasMilestone(rule.id) || !rule.met(*st) {
			continue
		}
		st.Milestones = append(st.Milestones, rule.id)
		e.push(notify.Notification{
			Category: notify.CategoryMilestone,
			Title:    rule.title,
			Message:  rule.message,
		})
	}
}
