package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-difficulty statistics",
	Long: `Summarise every game ever played, grouped by difficulty. Unlike the
ranked history this includes games that fell off the list.

Only the sqlite and memory backends keep the game journal.

Examples:
  snake stats
  snake stats --db ./history.db`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, "snake")
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, err := openHistory(ctx, cfg.History, logger)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer svc.Close()

	stats, err := svc.Stats(ctx)
	if errors.Is(err, history.ErrNoJournal) {
		return fmt.Errorf("the %s backend keeps no game journal; use sqlite for stats", cfg.History.Backend)
	}
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Println("No games played yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-6s  %-6s  %-8s  %s\n", "Difficulty", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-10s  %-6s  %-6s  %-8s  %s\n", "----------", "-----", "----", "-------", "-----------")
	for _, s := range stats {
		fmt.Printf("  %-10s  %-6d  %-6d  %-8.1f  %s\n",
			s.Difficulty, s.Games, s.Best, s.Average(), s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
