package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 8666 {
		t.Errorf("unexpected default port: %d", cfg.Server.Port)
	}
	if cfg.Calendar.BaseURL == "" || cfg.Calendar.Zone != "france" {
		t.Errorf("unexpected calendar defaults: %+v", cfg.Calendar)
	}
	if len(cfg.ImageProviders) == 0 {
		t.Fatal("expected default image providers")
	}
	deepai, ok := cfg.GetImageProvider("deepai")
	if !ok {
		t.Fatal("expected deepai provider")
	}
	if deepai.APIKey != "${DEEPAI_API_KEY}" {
		t.Error("expected deepai API key placeholder")
	}
	if cfg.Export.DefaultProvider != "deepai" {
		t.Errorf("unexpected default export provider: %s", cfg.Export.DefaultProvider)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestConfig_ToProviderRegistryConfig(t *testing.T) {
	os.Setenv("TEST_DEEPAI_KEY", "deepai-key-0123456789")
	defer os.Unsetenv("TEST_DEEPAI_KEY")

	cfg := &Config{
		ImageProviders: map[string]ImageProvCfg{
			"deepai": {
				Type:              "deepai",
				APIKey:            "${TEST_DEEPAI_KEY}",
				RequestsPerMinute: 10,
				Enabled:           true,
			},
			"literal": {
				Type:   "openai",
				APIKey: "direct-key",
			},
		},
	}

	out := cfg.ToProviderRegistryConfig()
	if out["deepai"].APIKey != "deepai-key-0123456789" {
		t.Errorf("expected resolved key, got %s", out["deepai"].APIKey)
	}
	if out["deepai"].RequestsPerMinute != 10 || !out["deepai"].Enabled {
		t.Errorf("provider fields not carried over: %+v", out["deepai"])
	}
	if out["literal"].APIKey != "direct-key" {
		t.Errorf("expected literal key, got %s", out["literal"].APIKey)
	}
}

func TestConfig_ToCalendarConfig(t *testing.T) {
	cfg := DefaultConfig()
	cal := cfg.ToCalendarConfig()
	if cal.BaseURL != cfg.Calendar.BaseURL || cal.Zone != "france" {
		t.Errorf("unexpected calendar config: %+v", cal)
	}
	if cal.Timeout.Seconds() != 10 {
		t.Errorf("unexpected timeout: %v", cal.Timeout)
	}
	if cal.CacheTTL.Minutes() != 60 {
		t.Errorf("unexpected cache TTL: %v", cal.CacheTTL)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
server:
  host: "0.0.0.0"
  port: 9000
calendar:
  zone: "belgique"
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9000 {
			t.Errorf("unexpected server config: %+v", cfg.Server)
		}
		if cfg.Calendar.Zone != "belgique" {
			t.Errorf("unexpected zone: %s", cfg.Calendar.Zone)
		}
		// Values not in the file fall back to defaults
		if cfg.Calendar.BaseURL != DefaultConfig().Calendar.BaseURL {
			t.Errorf("expected default base URL, got %s", cfg.Calendar.BaseURL)
		}
	})

	t.Run("partial provider section merges with defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
image_providers:
  deepai:
    api_key: "real-key-0123456789"
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		deepai, ok := mgr.Get().GetImageProvider("deepai")
		if !ok {
			t.Fatal("expected deepai provider")
		}
		if deepai.APIKey != "real-key-0123456789" {
			t.Errorf("file value not applied: %s", deepai.APIKey)
		}
		// Leaves the file omits keep their defaults
		if deepai.Type != "deepai" || deepai.RequestsPerMinute != 30 || !deepai.Enabled {
			t.Errorf("defaults lost for unspecified leaves: %+v", deepai)
		}
	})
}

func TestManager_OnChange(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configFile, []byte("server:\n  port: 8666\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 2 {
		t.Errorf("expected 2 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	content := string(data)
	if len(content) == 0 {
		t.Fatal("expected non-empty config")
	}
	for _, want := range []string{"image_providers", "${DEEPAI_API_KEY}", "calendar", "server"} {
		if !strings.Contains(content, want) {
			t.Errorf("written config missing %q", want)
		}
	}
}
