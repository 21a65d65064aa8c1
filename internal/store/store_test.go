package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/engage/internal/behavior"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "engage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		require.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestLatestSnapshotEmpty(t *testing.T) {
	repo := openTestStore(t).BehaviorRepo()

	st, err := repo.LatestSnapshot(context.Background())
	require.NoError(t, err)
	require.Nil(t, st)
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo := openTestStore(t).BehaviorRepo()
	ctx := context.Background()

	in := behavior.State{
		Clicks:           42,
		TimeSpentSeconds: 120,
		PagesVisited:     []string{"dashboard", "opportunities"},
		ActionsCompleted: []string{"view:card", "apply:grant-1"},
		Streak:           3,
		Level:            2,
		XP:               75,
		Credits:          850,
		LastActive:       time.Now().UTC().Truncate(time.Second),
		Achievements:     []string{"click_master"},
		Milestones:       nil,
	}
	require.NoError(t, repo.SaveSnapshot(ctx, in))

	out, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Equal(t, in.Clicks, out.Clicks)
	require.Equal(t, in.PagesVisited, out.PagesVisited)
	require.Equal(t, in.ActionsCompleted, out.ActionsCompleted)
	require.Equal(t, in.Level, out.Level)
	require.Equal(t, in.XP, out.XP)
	require.Equal(t, in.Credits, out.Credits)
	require.Equal(t, in.Achievements, out.Achievements)
	require.True(t, in.LastActive.Equal(out.LastActive))
}

func TestLatestSnapshotReturnsNewest(t *testing.T) {
	repo := openTestStore(t).BehaviorRepo()
	ctx := context.Background()

	first := behavior.DefaultState()
	require.NoError(t, repo.SaveSnapshot(ctx, first))

	second := first
	second.Credits = 700
	require.NoError(t, repo.SaveSnapshot(ctx, second))

	out, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 700, out.Credits)
}

func TestLatestSnapshotRejectsCorruptPayload(t *testing.T) {
	s := openTestStore(t)
	repo := s.BehaviorRepo()
	ctx := context.Background()

	_, err := s.DB().Exec(`
		INSERT INTO behavior_snapshots (sequence, timestamp, data)
		VALUES (1, ?, ?)`, time.Now().UTC().Format(time.RFC3339Nano), `{"not":"a snapshot"}`)
	require.NoError(t, err)

	_, err = repo.LatestSnapshot(ctx)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestLatestSnapshotRejectsFutureVersion(t *testing.T) {
	s := openTestStore(t)
	repo := s.BehaviorRepo()

	payload := `{"version":99,"clicks":0,"timeSpentSeconds":0,"streak":1,"level":1,"xp":0,"credits":1000,"lastActive":"0001-01-01T00:00:00Z"}`
	_, err := s.DB().Exec(`
		INSERT INTO behavior_snapshots (sequence, timestamp, data)
		VALUES (1, ?, ?)`, time.Now().UTC().Format(time.RFC3339Nano), payload)
	require.NoError(t, err)

	_, err = repo.LatestSnapshot(context.Background())
	require.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestSnapshotPruneRetainsWindow(t *testing.T) {
	s := openTestStore(t)
	repo := s.BehaviorRepo()
	ctx := context.Background()

	st := behavior.DefaultState()
	for i := 0; i < snapshotKeep+5; i++ {
		st.Clicks = i
		require.NoError(t, repo.SaveSnapshot(ctx, st))
	}

	var count int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM behavior_snapshots`).Scan(&count))
	require.LessOrEqual(t, count, snapshotKeep)

	// Newest survives pruning.
	out, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, snapshotKeep+4, out.Clicks)
}

func TestCreditTransactionAuditLog(t *testing.T) {
	repo := openTestStore(t).BehaviorRepo()
	ctx := context.Background()

	now := time.Now()
	txs := []behavior.CreditTransaction{
		{Amount: 100, Type: behavior.CreditEarn, Reason: "signup bonus", BalanceAfter: 1100, CreatedAt: now},
		{Amount: -300, Type: behavior.CreditSpend, Reason: "ai proposal", BalanceAfter: 800, CreatedAt: now},
		{Amount: -5000, Type: behavior.CreditDeclined, Reason: "premium", BalanceAfter: 800, CreatedAt: now},
	}
	for _, tx := range txs {
		require.NoError(t, repo.AppendCreditTransaction(ctx, tx))
	}

	recent, err := repo.RecentCreditTransactions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Newest first.
	require.Equal(t, behavior.CreditDeclined, recent[0].Type)
	require.Equal(t, -5000, recent[0].Amount)
	require.Equal(t, 800, recent[0].BalanceAfter)
	require.Equal(t, behavior.CreditEarn, recent[2].Type)
	require.Equal(t, "signup bonus", recent[2].Reason)
}

func TestRecentCreditTransactionsLimit(t *testing.T) {
	repo := openTestStore(t).BehaviorRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AppendCreditTransaction(ctx, behavior.CreditTransaction{
			Amount: i, Type: behavior.CreditEarn, Reason: "r", BalanceAfter: 1000 + i,
		}))
	}

	recent, err := repo.RecentCreditTransactions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, 4, recent[0].Amount)
}
