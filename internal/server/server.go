package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/liturgica/lectern/internal/api"
	"github.com/liturgica/lectern/internal/calendar"
	"github.com/liturgica/lectern/internal/config"
	"github.com/liturgica/lectern/internal/enhance"
	"github.com/liturgica/lectern/internal/export"
	"github.com/liturgica/lectern/internal/home"
	"github.com/liturgica/lectern/internal/library"
	"github.com/liturgica/lectern/internal/schema"
	"github.com/liturgica/lectern/internal/server/endpoints"
	"github.com/liturgica/lectern/internal/store"
	"github.com/liturgica/lectern/internal/svcctx"
)

// Server is the main Lectern HTTP server. It owns the in-memory
// presentation store, the song library, the calendar client and the
// image provider registry, and injects them into request contexts.
type Server struct {
	httpServer *http.Server
	homeDir    *home.Dir
	registry   *enhance.Registry
	configMgr  *config.Manager
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8666)
	Port int
	// HomeDir is the lectern home directory for data and exports
	HomeDir *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8666
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.HomeDir == nil {
		dir, err := home.New("")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.HomeDir = dir
	}

	// Create provider registry
	registry := enhance.NewRegistry()
	registry.SetLogger(cfg.Logger)

	// If config manager provided, set up providers and hot reload
	if cfg.ConfigManager != nil {
		registry.Reload(cfg.ConfigManager.Get().ToProviderRegistryConfig())

		cfg.ConfigManager.OnChange(func(c *config.Config) {
			registry.Reload(c.ToProviderRegistryConfig())
			cfg.Logger.Info("image provider registry reloaded from config")
		})
	}

	s := &Server{
		homeDir:   cfg.HomeDir,
		registry:  registry,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{SwaggerSpecPath: endpoints.GetSwaggerSpecPath()}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the server. It blocks until the context is cancelled
// or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.homeDir.EnsureExists(); err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to create home directory: %w", err)
	}

	lib, err := library.Load()
	if err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to load song library: %w", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to compile presentation schema: %w", err)
	}

	var calCfg calendar.Config
	if s.configMgr != nil {
		calCfg = s.configMgr.Get().ToCalendarConfig()
	}
	calCfg.Logger = s.logger
	cal := calendar.New(calCfg)

	exporter := export.NewExporter(export.ExporterConfig{
		Home:      s.homeDir,
		Providers: s.registry,
		DefaultProvider: func() string {
			if s.configMgr == nil {
				return ""
			}
			return s.configMgr.Get().Export.DefaultProvider
		},
		Logger: s.logger,
	})

	// Create services struct for context enrichment
	s.services = &svcctx.Services{
		Store:         store.New(),
		Library:       lib,
		Calendar:      cal,
		Providers:     s.registry,
		Exporter:      exporter,
		ExportJobs:    export.NewJobs(exporter),
		Validator:     validator,
		ConfigManager: s.configMgr,
		Logger:        s.logger,
		Home:          s.homeDir,
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
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

	// Drain in-flight export jobs so they finish writing to disk.
	if s.services != nil && s.services.ExportJobs != nil {
		s.services.ExportJobs.Wait()
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

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Registry returns the image provider registry.
func (s *Server) Registry() *enhance.Registry {
	return s.registry
}

// Services returns the service bundle. Nil before Start.
func (s *Server) Services() *svcctx.Services {
	return s.services
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable until Start has built the services.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.services == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
