package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/engage/internal/behavior"
	"github.com/abhisek/engage/internal/config"
	"github.com/abhisek/engage/internal/store"
	"github.com/abhisek/engage/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the persisted engagement snapshot and recent credit activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		repo := st.BehaviorRepo()
		snap, err := repo.LatestSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap == nil {
			fresh := behavior.DefaultState()
			snap = &fresh
		}

		fmt.Println(theme.Title.Render("Engagement"))
		fmt.Printf("  level %d (%d/%d xp)\n", snap.Level, snap.XP, snap.Threshold())
		fmt.Printf("  credits %d\n", snap.Credits)
		fmt.Printf("  streak %d\n", snap.Streak)
		fmt.Printf("  clicks %d, time %ds, pages %d, actions %d\n",
			snap.Clicks, snap.TimeSpentSeconds, len(snap.PagesVisited), len(snap.ActionsCompleted))
		fmt.Printf("  achievements: %v\n", snap.Achievements)
		fmt.Printf("  milestones: %v\n", snap.Milestones)

		txs, err := repo.RecentCreditTransactions(ctx, 10)
		if err != nil {
			return fmt.Errorf("load credit transactions: %w", err)
		}
		fmt.Println(theme.Title.Render("Recent credit activity"))
		if len(txs) == 0 {
			fmt.Println(theme.Hint.Render("  none"))
		}
		for _, tx := range txs {
			fmt.Printf("  %s  %+d  %-9s %s (balance %d)\n",
				tx.CreatedAt.Local().Format("2006-01-02 15:04"),
				tx.Amount, tx.Type, tx.Reason, tx.BalanceAfter)
		}
		return nil
	},
}
