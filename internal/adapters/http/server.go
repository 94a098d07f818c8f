package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// ServerConfig configures Server.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// DefaultServerConfig returns sane production-ish defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:            "0.0.0.0",
		Port:            "8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		Logger:          slog.Default(),
	}
}

// Address returns the host:port the server listens on.
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Server wraps net/http.Server with graceful shutdown wired to
// SIGINT/SIGTERM.
type Server struct {
	config     *ServerConfig
	httpServer *http.Server
}

// NewServer creates a Server around router.
func NewServer(config *ServerConfig, router *gin.Engine) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	return &Server{
		config: config,
		httpServer: &http.Server{
			Addr:         config.Address(),
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start blocks serving requests until the server is shut down.
func (s *Server) Start() error {
	s.config.Logger.Info("starting http server", slog.String("address", s.config.Address()))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.config.Logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.config.Logger.Error("http server shutdown error", slog.String("error", err.Error()))
		return err
	}
	s.config.Logger.Info("http server stopped gracefully")
	return nil
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func (s *Server) Run() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		s.config.Logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	return s.Shutdown(context.Background())
}
