package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/quayside/internal/view"
)

// Config captures everything quayside reads at startup.
type Config struct {
	APIURL         string
	Timezone       string
	PageSize       int
	RequestTimeout time.Duration
	LogDir         string
	LogLevel       string
	Cache          CacheConfig
}

// CacheConfig configures the optional Redis payload cache.
type CacheConfig struct {
	RedisAddr string
	RedisDB   int
	TTL       time.Duration
}

// Overrides carries command-line values that win over file and environment.
type Overrides struct {
	APIURL string
	LogDir string
}

const (
	defaultConfigPath     = "~/.config/quayside/config.toml"
	defaultEnvFile        = ".env"
	defaultAPIURL         = "http://127.0.0.1:8080"
	defaultTimezone       = "Local"
	defaultRequestTimeout = 10 * time.Second
	defaultLogDir         = "~/.local/share/quayside/logs"
	defaultLogLevel       = "info"
	defaultCacheTTL       = 5 * time.Minute

	envAPIURL    = "QUAYSIDE_API_URL"
	envTimezone  = "QUAYSIDE_TIMEZONE"
	envRedisAddr = "QUAYSIDE_REDIS_ADDR"
)

type rawConfig struct {
	APIURL         string `toml:"api_url"`
	Timezone       string `toml:"timezone"`
	PageSize       int    `toml:"page_size"`
	RequestTimeout string `toml:"request_timeout"`
	LogDir         string `toml:"log_dir"`
	LogLevel       string `toml:"log_level"`
	Cache          struct {
		RedisAddr string `toml:"redis_addr"`
		RedisDB   int    `toml:"redis_db"`
		TTL       string `toml:"ttl"`
	} `toml:"cache"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		APIURL:         defaultAPIURL,
		Timezone:       defaultTimezone,
		PageSize:       view.DefaultPageSize,
		RequestTimeout: defaultRequestTimeout,
		LogDir:         mustExpand(defaultLogDir),
		LogLevel:       defaultLogLevel,
		Cache:          CacheConfig{TTL: defaultCacheTTL},
	}
}

// Load locates and parses the config file, applies .env and environment
// overrides, and validates the result. A missing file yields defaults.
func Load(path string) (*Config, error) {
	return load(path, defaultEnvFile)
}

func load(path, envFile string) (*Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := cfg.readFile(resolved); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(envFile); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(raw.Timezone); v != "" {
		c.Timezone = v
	}
	if raw.PageSize != 0 {
		c.PageSize = raw.PageSize
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		c.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	c.Cache.RedisAddr = strings.TrimSpace(raw.Cache.RedisAddr)
	c.Cache.RedisDB = raw.Cache.RedisDB
	if v := strings.TrimSpace(raw.Cache.TTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: cache.ttl: %w", err)
		}
		c.Cache.TTL = d
	}
	return nil
}

// applyEnv reads envFile (when present) and the process environment. Process
// variables take precedence over the file.
func (c *Config) applyEnv(envFile string) error {
	fileVars := map[string]string{}
	if strings.TrimSpace(envFile) != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, os.ErrNotExist):
		default:
			return fmt.Errorf("read env file: %w", err)
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileVars[key])
	}

	if v := lookup(envAPIURL); v != "" {
		c.APIURL = v
	}
	if v := lookup(envTimezone); v != "" {
		c.Timezone = v
	}
	if v := lookup(envRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	return nil
}

// Apply merges command-line overrides and revalidates.
func (c *Config) Apply(o Overrides) error {
	if v := strings.TrimSpace(o.APIURL); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(o.LogDir); v != "" {
		expanded, err := expandPath(v)
		if err != nil {
			return fmt.Errorf("log dir: %w", err)
		}
		c.LogDir = expanded
	}
	return c.Validate()
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return errors.New("config: api_url is empty")
	}
	if !view.ValidPageSize(c.PageSize) {
		return fmt.Errorf("config: page_size %d: %w", c.PageSize, view.ErrInvalidPageSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config: cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone. "Local" and empty map to the
// system zone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", name, err)
	}
	return loc, nil
}

// LogPath returns the path of the rotating log file.
func (c *Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/quayside.log")
	}
	return filepath.Join(c.LogDir, "quayside.log")
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.Cache.RedisAddr) != ""
}

// DefaultPath returns the unexpanded default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
