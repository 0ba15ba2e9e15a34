// Package config loads and hot-reloads lectern configuration from
// ~/.lectern/config.yaml, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/liturgica/lectern/internal/calendar"
	"github.com/liturgica/lectern/internal/enhance"
)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	// Defaults are registered per leaf so a partial section in the
	// config file merges with them instead of replacing the whole
	// section.
	defaults := DefaultConfig()
	viper.SetDefault("server.host", defaults.Server.Host)
	viper.SetDefault("server.port", defaults.Server.Port)
	viper.SetDefault("calendar.base_url", defaults.Calendar.BaseURL)
	viper.SetDefault("calendar.zone", defaults.Calendar.Zone)
	viper.SetDefault("calendar.timeout_seconds", defaults.Calendar.TimeoutSeconds)
	viper.SetDefault("calendar.cache_ttl_minutes", defaults.Calendar.CacheTTLMinutes)
	viper.SetDefault("export.default_provider", defaults.Export.DefaultProvider)
	for name, p := range defaults.ImageProviders {
		prefix := "image_providers." + name + "."
		viper.SetDefault(prefix+"type", p.Type)
		viper.SetDefault(prefix+"model", p.Model)
		viper.SetDefault(prefix+"api_key", p.APIKey)
		viper.SetDefault(prefix+"requests_per_minute", p.RequestsPerMinute)
		viper.SetDefault(prefix+"max_retries", p.MaxRetries)
		viper.SetDefault(prefix+"timeout_seconds", p.TimeoutSeconds)
		viper.SetDefault(prefix+"enabled", p.Enabled)
	}

	// Environment variables with LECTERN_ prefix
	viper.SetEnvPrefix("LECTERN")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.lectern")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// ToProviderRegistryConfig converts the config to the enhance.Registry
// format, resolving all ${ENV_VAR} references in API keys.
func (c *Config) ToProviderRegistryConfig() map[string]enhance.ProviderConfig {
	out := make(map[string]enhance.ProviderConfig, len(c.ImageProviders))
	for name, p := range c.ImageProviders {
		out[name] = enhance.ProviderConfig{
			Type:              p.Type,
			Model:             p.Model,
			APIKey:            ResolveEnvVars(p.APIKey),
			RequestsPerMinute: p.RequestsPerMinute,
			MaxRetries:        p.MaxRetries,
			TimeoutSeconds:    p.TimeoutSeconds,
			Enabled:           p.Enabled,
		}
	}
	return out
}

// ToCalendarConfig converts the calendar section to a client config.
func (c *Config) ToCalendarConfig() calendar.Config {
	return calendar.Config{
		BaseURL:  c.Calendar.BaseURL,
		Zone:     c.Calendar.Zone,
		Timeout:  time.Duration(c.Calendar.TimeoutSeconds) * time.Second,
		CacheTTL: time.Duration(c.Calendar.CacheTTLMinutes) * time.Minute,
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Lectern configuration
# API keys use ${ENV_VAR} syntax to reference environment variables
# Set these in your shell: export DEEPAI_API_KEY=xxx OPENAI_API_KEY=xxx

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
