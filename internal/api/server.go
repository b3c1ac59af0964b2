// Package api serves a read-only HTTP view of the history plus the
// spectator websocket.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/history"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

// Server wraps the http.Server for the read API.
type Server struct {
	server *http.Server
	logger *log.Logger
}

// Options configures NewServer. Hub may be nil, which disables spectating.
type Options struct {
	Addr         string
	History      *history.Service
	Difficulties config.DifficultyTable
	Hub          *spectate.Hub
	Logger       *log.Logger
}

// NewServer creates a server listening on opts.Addr.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Server{
		server: &http.Server{
			Addr:              opts.Addr,
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: opts.Logger,
	}
}

// NewRouter builds the route table.
func NewRouter(opts Options) *mux.Router {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	r := mux.NewRouter()
	r.Use(logRequests(opts.Logger))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/history", handleHistory(opts.History, opts.Logger)).Methods(http.MethodGet)
	api.HandleFunc("/stats", handleStats(opts.History, opts.Logger)).Methods(http.MethodGet)
	api.HandleFunc("/difficulties", handleDifficulties(opts.Difficulties, opts.Logger)).Methods(http.MethodGet)

	if opts.Hub != nil {
		r.HandleFunc("/ws/spectate", opts.Hub.Handler()).Methods(http.MethodGet)
	}
	return r
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("API server listening", "address", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("API server closed")
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
