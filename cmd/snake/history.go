package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var flagClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the ranked game history",
	Long: `Display the best games recorded so far, highest score first.

In a terminal the history opens as a scrollable table; otherwise it is
printed as plain text.

Examples:
  snake history
  snake history --clear
  snake history --backend json --db ./history.json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the ranked history")
}

func runHistory(_ *cobra.Command, _ []string) error {
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

	if flagClear {
		if err := svc.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	}

	entries := svc.List()
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.RunHistory(entries)
	}

	fmt.Println("Snake - Game History")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-10s  %s\n", "Rank", "Score", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %s\n", "----", "-----", "----------", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-8d  %-10s  %s\n", i+1, e.Score, e.Difficulty, e.RecordedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", svc.Best())
	return nil
}
