package config

// Config holds lectern configuration.
// Stored at: ~/.lectern/config.yaml
type Config struct {
	Server         ServerCfg                 `mapstructure:"server" yaml:"server"`
	Calendar       CalendarCfg               `mapstructure:"calendar" yaml:"calendar"`
	ImageProviders map[string]ImageProvCfg   `mapstructure:"image_providers" yaml:"image_providers"`
	Export         ExportCfg                 `mapstructure:"export" yaml:"export"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// CalendarCfg configures the liturgical calendar client.
type CalendarCfg struct {
	BaseURL         string `mapstructure:"base_url" yaml:"base_url"`
	Zone            string `mapstructure:"zone" yaml:"zone"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes" yaml:"cache_ttl_minutes"`
}

// ImageProvCfg configures an image-generation provider.
type ImageProvCfg struct {
	Type              string `mapstructure:"type" yaml:"type"`       // "deepai", "openai"
	Model             string `mapstructure:"model" yaml:"model"`     // Model name (for openai)
	APIKey            string `mapstructure:"api_key" yaml:"api_key"` // API key (supports ${ENV_VAR} syntax)
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	MaxRetries        int    `mapstructure:"max_retries" yaml:"max_retries"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
}

// ExportCfg configures deck exports.
type ExportCfg struct {
	// DefaultProvider is the image provider used when enhancement is
	// requested without naming one.
	DefaultProvider string `mapstructure:"default_provider" yaml:"default_provider"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: 8666,
		},
		Calendar: CalendarCfg{
			BaseURL:         "https://api.aelf.org/v1/messes",
			Zone:            "france",
			TimeoutSeconds:  10,
			CacheTTLMinutes: 60,
		},
		ImageProviders: map[string]ImageProvCfg{
			"deepai": {
				Type:              "deepai",
				APIKey:            "${DEEPAI_API_KEY}",
				RequestsPerMinute: 30,
				MaxRetries:        3,
				TimeoutSeconds:    30,
				Enabled:           true,
			},
			"openai": {
				Type:           "openai",
				Model:          "dall-e-3",
				APIKey:         "${OPENAI_API_KEY}",
				MaxRetries:     3,
				TimeoutSeconds: 60,
				Enabled:        false,
			},
		},
		Export: ExportCfg{
			DefaultProvider: "deepai",
		},
	}
}

// GetImageProvider returns an image provider config by name.
func (c *Config) GetImageProvider(name string) (ImageProvCfg, bool) {
	cfg, ok := c.ImageProviders[name]
	return cfg, ok
}

// EnabledImageProviders returns all enabled image providers.
func (c *Config) EnabledImageProviders() map[string]ImageProvCfg {
	result := make(map[string]ImageProvCfg)
	for name, cfg := range c.ImageProviders {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
