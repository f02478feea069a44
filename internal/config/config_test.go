package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TotalPages != DefaultTotalPages {
		t.Errorf("pages: got %d, want %d", cfg.TotalPages, DefaultTotalPages)
	}
	if cfg.PoolSize != DefaultPoolSize {
		t.Errorf("pool size: got %d, want %d", cfg.PoolSize, DefaultPoolSize)
	}
	if cfg.NavigationTimeout != DefaultNavigationTimeout {
		t.Errorf("timeout: got %v, want %v", cfg.NavigationTimeout, DefaultNavigationTimeout)
	}
	if cfg.ContainerSelector != DefaultContainerSelector {
		t.Errorf("selector: got %q, want %q", cfg.ContainerSelector, DefaultContainerSelector)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			BaseURL:           "https://example.com/games",
			ContainerSelector: "tbody",
			TotalPages:        5,
			PoolSize:          2,
			NavigationTimeout: time.Minute,
			RateLimitRPS:      4.0,
			RateLimitBurst:    8,
			OutputPath:        "out.csv",
		}
	}

	if err := validate(valid()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative pages", func(c *Config) { c.TotalPages = -1 }},
		{"zero pool", func(c *Config) { c.PoolSize = 0 }},
		{"oversized pool", func(c *Config) { c.PoolSize = DefaultMaxPoolSize + 1 }},
		{"zero timeout", func(c *Config) { c.NavigationTimeout = 0 }},
		{"zero rate", func(c *Config) { c.RateLimitRPS = 0 }},
		{"empty selector", func(c *Config) { c.ContainerSelector = "" }},
		{"empty output", func(c *Config) { c.OutputPath = "" }},
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://example.com" }},
		{"no host", func(c *Config) { c.BaseURL = "https://" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_ZeroPagesIsLegal(t *testing.T) {
	cfg := &Config{
		BaseURL:           "https://example.com/games",
		ContainerSelector: "tbody",
		TotalPages:        0,
		PoolSize:          2,
		NavigationTimeout: time.Minute,
		RateLimitRPS:      4.0,
		RateLimitBurst:    8,
		OutputPath:        "out.csv",
	}
	if err := validate(cfg); err != nil {
		t.Errorf("zero pages should be a legal degenerate case: %v", err)
	}
}
