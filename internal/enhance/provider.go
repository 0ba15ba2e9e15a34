package enhance

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ImageProvider generates one image per prompt. A provider returns the
// URL of the generated image; downloading and embedding is the
// enhancer's job.
type ImageProvider interface {
	// Name returns the provider identifier (e.g., "deepai", "openai").
	Name() string

	// Generate produces an image for the prompt and returns its URL.
	Generate(ctx context.Context, prompt string) (string, error)

	// Validate checks credentials without making a generation request.
	Validate() error
}

// ProviderConfig configures one image provider entry.
type ProviderConfig struct {
	Type              string  `mapstructure:"type"` // "deepai" or "openai"
	APIKey            string  `mapstructure:"api_key"`
	Model             string  `mapstructure:"model"`
	RequestsPerMinute int     `mapstructure:"requests_per_minute"`
	MaxRetries        int     `mapstructure:"max_retries"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	Enabled           bool    `mapstructure:"enabled"`
}

// Registry holds the configured image providers. Reload replaces the
// whole set, matching config hot-reload semantics.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ImageProvider
	logger    *slog.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]ImageProvider),
		logger:    slog.Default(),
	}
}

// SetLogger sets the logger used for reload reporting.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if logger != nil {
		r.logger = logger
	}
}

// Reload rebuilds the provider set from configuration. Unknown types and
// disabled entries are skipped with a warning.
func (r *Registry) Reload(configs map[string]ProviderConfig) {
	providers := make(map[string]ImageProvider)

	for name, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		switch cfg.Type {
		case "deepai":
			providers[name] = NewDeepAIClient(DeepAIConfig{
				APIKey:            cfg.APIKey,
				RequestsPerMinute: cfg.RequestsPerMinute,
				MaxRetries:        cfg.MaxRetries,
				Timeout:           timeout,
			})
		case "openai":
			providers[name] = NewOpenAIClient(OpenAIConfig{
				APIKey:     cfg.APIKey,
				Model:      cfg.Model,
				MaxRetries: cfg.MaxRetries,
				Timeout:    timeout,
			})
		default:
			r.logger.Warn("unknown image provider type", "name", name, "type", cfg.Type)
		}
	}

	r.mu.Lock()
	r.providers = providers
	logger := r.logger
	r.mu.Unlock()

	logger.Info("image providers reloaded", "count", len(providers))
}

// Get returns the named provider, or nil.
func (r *Registry) Get(name string) ImageProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[name]
}

// List returns the registered provider names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
