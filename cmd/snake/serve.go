package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/api"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host games over SSH and serve the HTTP API",
	Long: `Start an SSH server that lets users connect and play, and an HTTP server
exposing the history and a spectator websocket.

Each SSH connection gets its own game. All players share one history.
Pass an empty address to disable a listener.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # SSH on :23234, HTTP on :8080
  snake serve --ssh :2222 --http ""     # SSH only
  snake serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234
and watch at:
  ws://localhost:8080/ws/spectate`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP API address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, "snake")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := openHistory(ctx, cfg.History, logger)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer svc.Close()

	hub := spectate.NewHub(logger.WithPrefix("spectate"))
	defer hub.Close()

	errCh := make(chan error, 2)
	running := 0

	if flagHTTPAddr != "" {
		httpSrv := api.NewServer(api.Options{
			Addr:         flagHTTPAddr,
			History:      svc,
			Difficulties: cfg.Difficulties,
			Hub:          hub,
			Logger:       logger.WithPrefix("http"),
		})
		running++
		go func() {
			logger.Info("starting HTTP server", "address", httpSrv.Addr())
			if err := httpSrv.Start(); err != nil {
				errCh <- fmt.Errorf("http server: %w", err)
				return
			}
			errCh <- nil
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpSrv.Stop(shutdownCtx); err != nil {
				logger.Error("http shutdown", "error", err)
			}
		}()
	}

	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.Difficulties = cfg.Difficulties
		sshCfg.Default = cfg.DefaultDifficulty
		sshCfg.History = svc
		sshCfg.Hub = hub
		sshCfg.Logger = logger.WithPrefix("ssh")

		sshSrv, err := tui.NewSSHServer(sshCfg)
		if err != nil {
			return err
		}
		running++
		go func() {
			errCh <- sshSrv.Serve(ctx)
		}()
		if _, port, err := net.SplitHostPort(flagSSHAddr); err == nil {
			fmt.Printf("Connect with: ssh localhost -p %s\n", port)
		}
	}

	fmt.Println("Press Ctrl+C to stop")

	// Wait for a signal or for the first listener to fail.
	for ; running > 0; running-- {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err != nil {
				return err
			}
		}
	}
	return nil
}
