package behavior

import (
	"testing"

	"github.com/abhisek/engage/internal/notify"
)

// A bulk grant spanning two thresholds performs exactly one level-up:
// 250 XP at level 1 lands on level 2 with 150 XP, not level 3 with 50.
func TestAddXPSingleStepNormalization(t *testing.T) {
	e, _ := newTestEngine(t)

	e.AddXP(250, "bulk reward")

	st := e.Behavior()
	if st.Level != 2 {
		t.Errorf("Level = %d, want 2", st.Level)
	}
	if st.XP != 150 {
		t.Errorf("XP = %d, want 150", st.XP)
	}
}

// After any grant the remainder stays below the current level threshold,
// except for the surplus a single-step normalization deliberately leaves.
func TestAddXPNormalizationBounds(t *testing.T) {
	e, _ := newTestEngine(t)

	e.AddXP(99, "warmup")
	if st := e.Behavior(); st.Level != 1 || st.XP != 99 {
		t.Fatalf("Level/XP = %d/%d, want 1/99", st.Level, st.XP)
	}

	e.AddXP(1, "tip over")
	st := e.Behavior()
	if st.Level != 2 || st.XP != 0 {
		t.Errorf("Level/XP = %d/%d, want 2/0", st.Level, st.XP)
	}
	if st.XP < 0 || st.XP >= st.Threshold() {
		t.Errorf("XP %d outside [0, %d)", st.XP, st.Threshold())
	}
}

func TestAddXPPushesRewardNotification(t *testing.T) {
	e, _ := newTestEngine(t)

	e.AddXP(10, "daily login")

	ns := e.Notifications()
	if len(ns) != 1 {
		t.Fatalf("notifications = %d, want 1", len(ns))
	}
	n := ns[0]
	if n.Category != notify.CategoryReward {
		t.Errorf("Category = %q, want reward", n.Category)
	}
	if n.Reward == nil || n.Reward.Kind != notify.RewardXP || n.Reward.Amount != 10 {
		t.Errorf("Reward = %+v, want {xp 10}", n.Reward)
	}
}

// The LEVEL UP notification advertises newLevel*50 credits but the
// balance must not change: the reward text is informational only.
func TestLevelUpNotificationDoesNotDepositCredits(t *testing.T) {
	e, _ := newTestEngine(t)

	e.AddXP(100, "level up")

	st := e.Behavior()
	if st.Level != 2 {
		t.Fatalf("Level = %d, want 2", st.Level)
	}
	if st.Credits != 1000 {
		t.Errorf("Credits = %d, want 1000 (level-up reward is display-only)", st.Credits)
	}

	var found *notify.Notification
	for _, n := range e.Notifications() {
		if n.Category == notify.CategoryMilestone && n.Title == "LEVEL UP!" {
			found = &n
			break
		}
	}
	if found == nil {
		t.Fatal("missing LEVEL UP! milestone notification")
	}
	if found.Reward == nil || found.Reward.Kind != notify.RewardCredits || found.Reward.Amount != 100 {
		t.Errorf("Reward = %+v, want {credits 100}", found.Reward)
	}
}

func TestTrackPageVisitIdempotent(t *testing.T) {
	e, repo := newTestEngine(t)

	e.TrackPageVisit("dashboard")

	st := e.Behavior()
	if st.XP != 5 {
		t.Fatalf("XP = %d, want 5", st.XP)
	}
	if len(st.PagesVisited) != 1 || st.PagesVisited[0] != "dashboard" {
		t.Fatalf("PagesVisited = %v", st.PagesVisited)
	}
	if got := len(e.Notifications()); got != 1 {
		t.Fatalf("notifications = %d, want 1 Explorer", got)
	}
	saves := len(repo.snapshots)

	// Second visit: pure no-op on xp, pages, queue, and persistence.
	e.TrackPageVisit("dashboard")

	st = e.Behavior()
	if st.XP != 5 || len(st.PagesVisited) != 1 {
		t.Errorf("repeat visit mutated state: XP=%d pages=%v", st.XP, st.PagesVisited)
	}
	if got := len(e.Notifications()); got != 1 {
		t.Errorf("repeat visit pushed a notification (%d total)", got)
	}
	if len(repo.snapshots) != saves {
		t.Errorf("repeat visit persisted a snapshot")
	}
}

func TestTrackPageVisitDistinctPages(t *testing.T) {
	e, _ := newTestEngine(t)

	e.TrackPageVisit("dashboard")
	e.TrackPageVisit("opportunities")

	st := e.Behavior()
	if st.XP != 10 {
		t.Errorf("XP = %d, want 10", st.XP)
	}
	if len(st.PagesVisited) != 2 {
		t.Errorf("PagesVisited = %v", st.PagesVisited)
	}
}

func TestTrackActionApply(t *testing.T) {
	e, _ := newTestEngine(t)

	e.TrackAction("apply:grant-42")

	st := e.Behavior()
	if len(st.ActionsCompleted) != 1 || st.ActionsCompleted[0] != "apply:grant-42" {
		t.Errorf("ActionsCompleted = %v", st.ActionsCompleted)
	}
	if st.LastActive.IsZero() {
		t.Error("LastActive not updated")
	}

	ns := e.Notifications()
	if len(ns) != 1 || ns[0].Title != "Action Taker!" {
		t.Fatalf("notifications = %+v, want one Action Taker!", ns)
	}
	// Advertised credits are not deposited.
	if st.Credits != 1000 {
		t.Errorf("Credits = %d, want 1000", st.Credits)
	}
	if ns[0].Reward == nil || ns[0].Reward.Amount != 100 {
		t.Errorf("Reward = %+v, want {credits 100}", ns[0].Reward)
	}
}

func TestTrackActionPlain(t *testing.T) {
	e, _ := newTestEngine(t)

	e.TrackAction("scroll:feed")

	if got := len(e.Notifications()); got != 0 {
		t.Errorf("notifications = %d, want 0 for a plain action", got)
	}
}

func TestAchievementIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)

	st := e.Behavior()
	st.Clicks = 50
	e.checkAchievements(&st)
	e.checkAchievements(&st)

	if got := len(st.Achievements); got != 1 {
		t.Fatalf("Achievements = %v, want exactly [click_master]", st.Achievements)
	}
	if st.Achievements[0] != "click_master" {
		t.Errorf("Achievements[0] = %q, want click_master", st.Achievements[0])
	}
	if got := countByCategory(e.Notifications(), notify.CategoryAchievement); got != 1 {
		t.Errorf("achievement notifications = %d, want 1", got)
	}
}

func TestTimeWarriorUnlocksOnTick(t *testing.T) {
	e, _ := newTestEngine(t)

	e.state.TimeSpentSeconds = 299
	e.tickOnce()

	st := e.Behavior()
	if st.TimeSpentSeconds != 300 {
		t.Fatalf("TimeSpentSeconds = %d, want 300", st.TimeSpentSeconds)
	}
	if !st.HasAchievement("time_warrior") {
		t.Errorf("time_warrior not unlocked at 300s: %v", st.Achievements)
	}
}

func TestLevelFiveMilestone(t *testing.T) {
	e, _ := newTestEngine(t)

	e.state.Level = 4
	e.state.XP = 399 // one point short of the level-4 threshold

	e.AddXP(1, "final push")

	st := e.Behavior()
	if st.Level != 5 {
		t.Fatalf("Level = %d, want 5", st.Level)
	}
	if !st.HasMilestone("level_5") {
		t.Errorf("level_5 milestone not unlocked: %v", st.Milestones)
	}

	// Re-qualifying never re-fires.
	before := countByCategory(e.Notifications(), notify.CategoryMilestone)
	e.AddXP(1, "again")
	after := countByCategory(e.Notifications(), notify.CategoryMilestone)
	if after != before {
		t.Errorf("milestone notifications grew from %d to %d", before, after)
	}
}

func TestClickMasterViaClicks(t *testing.T) {
	e, _ := newTestEngine(t)

	for i := 0; i < 50; i++ {
		e.TrackClick("view", "card")
	}

	st := e.Behavior()
	if !st.HasAchievement("click_master") {
		t.Errorf("click_master not unlocked after 50 clicks: %v", st.Achievements)
	}
}
