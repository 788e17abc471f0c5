// Package config loads quayside's startup configuration.
//
// # Resolution Order
//
// Values are resolved from lowest to highest precedence:
//
//  1. Built-in defaults (see Default)
//  2. The TOML file, ~/.config/quayside/config.toml unless a path is given
//  3. A .env file in the working directory, read with godotenv
//  4. The process environment
//  5. Command-line flags, merged with Config.Apply
//
// A missing config file or .env file is not an error.
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8080"
//	timezone = "Local"
//	page_size = 10
//	request_timeout = "10s"
//	log_dir = "~/.local/share/quayside/logs"
//	log_level = "info"
//
//	[cache]
//	redis_addr = ""
//	redis_db = 0
//	ttl = "5m"
//
// Every field is optional. Durations use Go syntax ("750ms", "2m").
//
// # Environment
//
//   - QUAYSIDE_API_URL overrides api_url
//   - QUAYSIDE_TIMEZONE overrides timezone
//   - QUAYSIDE_REDIS_ADDR overrides cache.redis_addr
//
// # Validation
//
// Load rejects a page_size outside 10/20/30/40/50, a non-positive
// request_timeout, a negative cache TTL and an unknown timezone. The page
// size error wraps view.ErrInvalidPageSize.
//
// The timezone decides which calendar day a departure falls on when the date
// filter compares days.
package config
