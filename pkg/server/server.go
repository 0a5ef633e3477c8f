// Package server provides an environment-driven HTTP bootstrap for gregal
// applications. The detected runtime environment decides the gin mode, the
// logging level, and whether hardening middleware is applied; the rest of
// the lifecycle (startup, signal handling, graceful shutdown) follows the
// configuration.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/animalet/gregal-go/pkg/environment"
	"github.com/animalet/gregal-go/pkg/server/middleware"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 30 * time.Second

// Config holds the core server settings, loaded from the "server" section
// of the configuration file.
type Config struct {
	Address               string `yaml:"address" toml:"address"`
	ContentSecurityPolicy string `yaml:"content_security_policy,omitempty" toml:"content_security_policy,omitempty"`
}

// Validate checks if the Config has all required fields set.
func (c Config) Validate() error {
	if c.Address == "" {
		return errors.New("address must be set and non-empty")
	}
	return nil
}

// Server is an HTTP server whose runtime behavior follows the environment
// it was created for.
type Server struct {
	env             environment.Environment
	config          Config
	engine          *gin.Engine
	httpServer      *http.Server
	shutdownHooks   []func() error
	shutdownChannel chan os.Signal
}

// NewServer creates a server for the given environment and configuration.
// Routes are registered on Engine() before calling Start.
func NewServer(env environment.Environment, cfg Config) *Server {
	return &Server{env: env, config: cfg}
}

// ModeFor maps an environment to the gin mode it runs under: release mode
// for production-named environments and release builds, test mode for
// testing, debug mode otherwise.
func ModeFor(env environment.Environment) string {
	switch {
	case env.Name() == environment.ProductionName || env.IsRelease():
		return gin.ReleaseMode
	case env.Name() == environment.TestingName:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// ConfigureLogging sets the global zerolog level from the environment:
// debug for development, info for everything else.
func ConfigureLogging(env environment.Environment) {
	if env.IsDevelopment() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Engine returns the gin engine, bootstrapping it on first use so routes
// can be registered before Start.
func (s *Server) Engine() *gin.Engine {
	if s.engine == nil {
		s.bootstrap()
	}
	return s.engine
}

func (s *Server) bootstrap() {
	mode := ModeFor(s.env)
	gin.SetMode(mode)

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	if mode == gin.ReleaseMode {
		log.Info().Str("environment", s.env.Name()).Msg("Running in release mode")
		if err := engine.SetTrustedProxies(nil); err != nil {
			log.Error().Err(err).Msg("Failed to clear trusted proxies")
		}
		engine.Use(middleware.SecurityHeaders(s.config.ContentSecurityPolicy))
	} else {
		log.Info().Str("environment", s.env.Name()).Msgf("Running in %s mode", mode)
	}

	s.engine = engine
}

// AddShutdownHook registers a function executed during graceful shutdown.
func (s *Server) AddShutdownHook(f func() error) {
	s.shutdownHooks = append(s.shutdownHooks, f)
}

// Start validates the configuration and begins listening for requests.
func (s *Server) Start() error {
	if err := s.config.Validate(); err != nil {
		return errors.Wrap(err, "invalid server configuration")
	}

	s.httpServer = &http.Server{
		Addr:    s.config.Address,
		Handler: s.Engine(),
	}

	log.Info().
		Str("environment", s.env.Name()).
		Str("address", s.config.Address).
		Msg("Starting server")
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("Listen error: %s", err)
		}
	}()
	return nil
}

// StartAndWaitForSignal starts the server and blocks until SIGINT or
// SIGTERM arrives, then shuts down gracefully.
func (s *Server) StartAndWaitForSignal() error {
	if err := s.Start(); err != nil {
		return err
	}
	return s.waitForSignal()
}

func (s *Server) waitForSignal() error {
	s.shutdownChannel = make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	signal.Notify(s.shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	log.Info().Msgf("Shutdown signal received (%s)", <-s.shutdownChannel)
	return s.Shutdown()
}

// Shutdown gracefully stops the server, waiting for active connections to
// complete and running the registered shutdown hooks.
func (s *Server) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return errors.Wrap(err, "forced shutdown")
		}
	}

	for _, hook := range s.shutdownHooks {
		if err := hook(); err != nil {
			log.Error().Msgf("Error during shutdown hook: %s", err)
		}
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
