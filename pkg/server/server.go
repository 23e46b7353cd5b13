package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"anchor-hq/anchor/pkg/config"
	"anchor-hq/anchor/pkg/guardrail"
	"anchor-hq/anchor/pkg/server/handlers"
	"anchor-hq/anchor/pkg/server/middleware"
	"anchor-hq/anchor/pkg/telemetry"
	"anchor-hq/anchor/pkg/telemetry/health"
)

// Route paths.
const (
	RoutePostprocess = "/v1/postprocess"
	RouteHealth      = "/health"
	RouteReady       = "/ready"
	RouteVersion     = "/version"
)

// Server is the HTTP front end for a guardrail pipeline.
type Server struct {
	config    *config.Config
	pipeline  *guardrail.Pipeline
	telemetry *telemetry.Telemetry
	logger    *slog.Logger

	httpServer   *http.Server
	listener     net.Listener
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	stopOnce     sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a server for pipeline. It registers the guardrail self-check
// with the telemetry health checker.
func New(cfg *config.Config, pipeline *guardrail.Pipeline, tel *telemetry.Telemetry) *Server {
	tel.Health().Register("guardrail", func(context.Context) error {
		return pipeline.SelfCheck()
	})

	return &Server{
		config:       cfg,
		pipeline:     pipeline,
		telemetry:    tel,
		logger:       tel.Logger(),
		shutdownChan: make(chan struct{}),
	}
}

// Start listens on server.listen_address and serves until ctx is cancelled,
// a termination signal arrives or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return errors.New("server is already running")
	}

	ln, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.ListenAddress, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			"address", ln.Addr().String(),
			"metrics", s.telemetry.Metrics().Enabled(),
			"tracing", s.telemetry.Tracer().Enabled(),
		)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errChan:
		s.markStopped()
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
	}
	return s.shutdown(context.Background())
}

// Shutdown asks a running Start to stop. Start returns once in-flight
// requests finish.
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() { close(s.shutdownChan) })
}

func (s *Server) shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		timeout := s.config.Server.ShutdownTimeout
		s.logger.Info("initiating graceful shutdown", "timeout", timeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}
		if err := s.telemetry.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error flushing telemetry", "error", err)
		}

		s.markStopped()
		s.logger.Info("server stopped")
	})

	return shutdownErr
}

func (s *Server) markStopped() {
	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()
}

// Addr returns the bound listen address while the server is running.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning reports whether Start is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the routed handler with the full middleware chain.
func (s *Server) Handler() http.Handler {
	tel := s.telemetry
	build := tel.Build()

	mux := http.NewServeMux()
	mux.Handle(RoutePostprocess, handlers.NewPostprocessHandler(s.pipeline, tel.Metrics(), tel.Tracer(), s.logger))
	mux.Handle(RouteHealth, tel.Health().LivenessHandler())
	mux.Handle(RouteReady, tel.Health().ReadinessHandler())
	mux.Handle(RouteVersion, health.VersionHandler(build.Version, build.Commit, build.BuildTime))

	routes := []string{RoutePostprocess, RouteHealth, RouteReady, RouteVersion}
	if tel.Metrics().Enabled() {
		path := s.config.Telemetry.Metrics.Path
		mux.Handle(path, tel.Metrics().Handler())
		routes = append(routes, path)
	}

	return middleware.Chain(mux,
		middleware.Recovery(s.logger),
		middleware.RequestID,
		middleware.Logging(s.logger),
		middleware.Metrics(tel.Metrics(), routes...),
		tel.Tracer().Middleware,
		middleware.BodyLimit(s.config.Server.MaxBodyBytes),
	)
}
