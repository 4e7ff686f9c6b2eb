package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/claimpipe/claimpipe/internal/config"
	"github.com/claimpipe/claimpipe/internal/parser"
)

// PipelineFactory builds a parse pipeline from a configuration snapshot.
// The server uses it at startup and again on every config reload.
type PipelineFactory func(*config.Config) (*parser.Pipeline, error)

// Server is the claimpipe HTTP server.
type Server struct {
	httpServer     *http.Server
	configMgr      *config.Manager
	factory        PipelineFactory
	logger         *slog.Logger
	requestTimeout time.Duration

	mu       sync.RWMutex
	pipeline *parser.Pipeline
	running  bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// RequestTimeout bounds a single parse request (default: 120s)
	RequestTimeout time.Duration
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Factory builds the pipeline from a config snapshot
	Factory PipelineFactory
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 120 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Factory == nil {
		return nil, errors.New("pipeline factory is required")
	}
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}

	s := &Server{
		configMgr:      cfg.ConfigManager,
		factory:        cfg.Factory,
		logger:         cfg.Logger,
		requestTimeout: cfg.RequestTimeout,
	}

	pipeline, err := cfg.Factory(cfg.ConfigManager.Get())
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}
	s.pipeline = pipeline

	// Rebuild the pipeline when the config file changes.
	cfg.ConfigManager.OnChange(func(c *config.Config) {
		p, err := cfg.Factory(c)
		if err != nil {
			cfg.Logger.Error("config reload produced unusable pipeline; keeping previous", "error", err)
			return
		}
		s.mu.Lock()
		s.pipeline = p
		s.mu.Unlock()
		cfg.Logger.Info("pipeline rebuilt from config")
	})

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start runs the server. It blocks until the context is cancelled or an
// error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Pipeline returns the current pipeline snapshot.
func (s *Server) Pipeline() *parser.Pipeline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pipeline
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
