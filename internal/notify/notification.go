// Package notify implements the transient notification feed: an ordered
// queue of self-expiring records produced by the behavior engine and
// consumed by whatever surface renders them.
package notify

import "time"

// DefaultDuration is how long a notification stays in the queue unless
// it carries its own duration or is dismissed first.
const DefaultDuration = 5 * time.Second

// Category classifies a notification for rendering.
type Category string

const (
	CategoryAchievement   Category = "achievement"
	CategoryReward        Category = "reward"
	CategoryMilestone     Category = "milestone"
	CategoryEncouragement Category = "encouragement"
	CategoryCredit        Category = "credit"
	CategoryStreak        Category = "streak"
)

// RewardKind identifies what a notification's reward payload refers to.
type RewardKind string

const (
	RewardXP          RewardKind = "xp"
	RewardCredits     RewardKind = "credits"
	RewardAchievement RewardKind = "achievement"
)

// Reward describes the payout a notification advertises. The amount is
// display metadata only; actual balance changes happen in the engine.
type Reward struct {
	Kind   RewardKind `json:"kind"`
	Amount int        `json:"amount"`
}

// Notification is a single transient record. The queue owns it from Push
// until expiry or dismissal; callers always receive copies.
type Notification struct {
	ID        string
	Category  Category
	Title     string
	Message   string
	Icon      string
	Duration  time.Duration
	Reward    *Reward
	CreatedAt time.Time
}

// Icon returns the display icon for the category.
func (c Category) Icon() string {
	switch c {
	case CategoryAchievement:
		return "🏅"
	case CategoryReward:
		return "✨"
	case CategoryMilestone:
		return "🎉"
	case CategoryEncouragement:
		return "💪"
	case CategoryCredit:
		return "💰"
	case CategoryStreak:
		return "🔥"
	default:
		return "•"
	}
}
