package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagDifficulty string
	flagNoSave     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start the game in this terminal. The welcome screen lets you pick a
difficulty before the first move.

Controls:
  Arrows/WASD  - Steer
  Space/Enter  - Start, pause and resume
  P/Esc        - Pause
  R            - Back to the menu
  Tab          - Game history
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - 15x15 board, slow, 1 point per food
  normal  - 20x20 board, 2 points per food
  hard    - 25x25 board, fast, 3 points per food

Examples:
  snake play
  snake play --difficulty hard
  snake play --seed 42 --no-save`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselected difficulty: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Keep the history in memory only")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("snake play needs an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagNoSave {
		cfg.History.Backend = storage.BackendMemory
	}

	difficulty := cfg.DefaultDifficulty
	if flagDifficulty != "" {
		difficulty, err = config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
	}

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "snake")
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, err := openHistory(ctx, cfg.History, logger)
	if err != nil {
		// The game still works without persistence.
		fmt.Fprintf(os.Stderr, "Warning: could not open history: %v\n", err)
		logger.Warn("history unavailable, playing without persistence", "error", err)
		svc, _ = openHistory(ctx, memoryPolicy(cfg.History), logger)
	}
	defer svc.Close()

	logger.Info("starting game", "difficulty", difficulty, "backend", cfg.History.Backend, "seed", flagSeed)

	return tui.Run(tui.Options{
		Difficulties: cfg.Difficulties,
		Default:      difficulty,
		Seed:         flagSeed,
		History:      svc,
		Session:      "local",
		Logger:       logger,
	})
}

func memoryPolicy(p config.HistoryPolicy) config.HistoryPolicy {
	p.Backend = storage.BackendMemory
	p.Path = ""
	return p
}
