package config

import (
	"fmt"
	"net/url"
)

func validate(c *Config) error {
	if c.TotalPages < 0 {
		return fmt.Errorf("pages must be >= 0")
	}
	if c.PoolSize <= 0 || c.PoolSize > DefaultMaxPoolSize {
		return fmt.Errorf("pool size must be between 1 and %d", DefaultMaxPoolSize)
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be > 0")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be > 0 requests/sec")
	}
	if c.ContainerSelector == "" {
		return fmt.Errorf("container selector must not be empty")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL %q is not a valid http(s) URL", c.BaseURL)
	}
	return nil
}
