package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/engage/internal/app"
	"github.com/abhisek/engage/internal/behavior"
	"github.com/abhisek/engage/internal/config"
	"github.com/abhisek/engage/internal/notify"
	"github.com/abhisek/engage/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the engagement dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
}

// runDashboard wires the store, engine, and TUI together.
func runDashboard(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logFile, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

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
	repo.SetSnapshotKeep(cfg.SnapshotKeep)

	engine := behavior.New(behavior.Options{
		Queue:     notify.NewQueue(),
		Persister: repo,
		Logger:    logger,
	})
	engine.Load(ctx)
	engine.Start()
	defer engine.Stop()

	logger.Info().Str("db", dbPath).Msg("engagement session started")
	return app.Run(engine)
}

// openLogger builds a file-backed zerolog logger. The TUI owns the
// terminal, so logs never go to stdout or stderr.
func openLogger(cfg config.Config) (zerolog.Logger, *os.File, error) {
	path := cfg.LogPath
	if path == "" {
		var err error
		path, err = config.DefaultLogPath()
		if err != nil {
			return zerolog.Logger{}, nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
	}
	return zerolog.New(f).With().Timestamp().Logger(), f, nil
}
