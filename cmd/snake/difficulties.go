package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List difficulty settings",
	Long:  `Shows the difficulty table from the active configuration.`,
	Args:  cobra.NoArgs,
	RunE:  runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-8s  %-7s  %-6s  %s\n", "Name", "Board", "Tick", "Points")
	fmt.Printf("  %-8s  %-7s  %-6s  %s\n", "----", "-----", "----", "------")

	for _, d := range config.AllDifficulties() {
		s, err := cfg.Difficulties.Lookup(d)
		if err != nil {
			continue
		}
		marker := " "
		if d == cfg.DefaultDifficulty {
			marker = "*"
		}
		board := fmt.Sprintf("%dx%d", s.BoardSize, s.BoardSize)
		fmt.Printf("%s %-8s  %-7s  %-6s  %d\n", marker, d, board, s.TickInterval(), s.ScoreMultiplier)
	}

	fmt.Println()
	fmt.Println("* default. Run 'snake play --difficulty <name>' to pick one.")
	return nil
}
