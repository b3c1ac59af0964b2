// snake is a terminal Snake game with a persistent game history.
//
// Usage:
//
//	snake play               - Play in this terminal
//	snake history            - Show the ranked game history
//	snake stats              - Show per-difficulty statistics
//	snake difficulties       - List difficulty settings
//	snake serve              - Host games over SSH and an HTTP API
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible food placement
//	--config <path>    - Use a custom config YAML
//	--backend <name>   - History backend: sqlite, json, memory
//	--db <path>        - History location (default from config)
//	--log-level <lvl>  - debug, info, warn, error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/history"
	"github.com/vovakirdan/tui-snake/internal/registry"

	// Register history backends
	_ "github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagBackend  string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is a terminal version of the classic game. Steer the snake to the
food, grow, and avoid the walls and your own tail.

Available commands:
  play          - Play a game in this terminal
  history       - Show the ranked game history
  stats         - Show per-difficulty statistics
  difficulties  - List difficulty settings
  serve         - Host games over SSH and serve the HTTP API

Examples:
  snake play
  snake play --difficulty hard
  snake history --backend json --db ~/.snake/history.json
  snake serve --ssh :23234 --http :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "History backend: "+fmt.Sprint(registry.Names()))
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "History location (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(difficultiesCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.snake/snake.log for appending. Interactive play logs
// there so nothing is written over the alt-screen.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".snake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// loadConfig loads the configuration and applies the --backend and --db
// overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagBackend != "" {
		cfg.History.Backend = flagBackend
	}
	if flagDBPath != "" {
		cfg.History.Path = flagDBPath
	}
	return cfg, nil
}

// openHistory opens the configured backend and loads the history from it.
func openHistory(ctx context.Context, policy config.HistoryPolicy, logger *log.Logger) (*history.Service, error) {
	backend, err := registry.Open(policy.Backend, policy.Path)
	if err != nil {
		return nil, err
	}
	svc := history.NewService(policy, backend, logger)
	svc.Load(ctx)
	return svc, nil
}
