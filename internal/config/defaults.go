package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "info"
	DefaultJSONLog   = false
	DefaultUserAgent = "Harvest/1.0 (+https://github.com/dappdex/harvest)"

	DefaultBaseURL           = "https://playtoearn.com/blockchaingames"
	DefaultContainerSelector = "tbody.__TableItemsSwiper"
	DefaultTotalPages        = 61

	DefaultPoolSize    = 8
	DefaultMaxPoolSize = 16
	DefaultHeadless    = true

	DefaultNavigationTimeout = 60 * time.Second

	DefaultRateLimitRPS   = 4.0
	DefaultRateLimitBurst = 8

	DefaultOutputPath = "games.csv"
)
