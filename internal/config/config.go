package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Env            string        `mapstructure:"APP_ENV"`
	ServerAddr     string        `mapstructure:"SERVER_ADDR"`
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	HTTPTimeout    time.Duration `mapstructure:"HTTP_TIMEOUT"`
	CacheTTL       time.Duration `mapstructure:"CACHE_TTL"`
	StoreDriver    string        `mapstructure:"STORE_DRIVER"`
	StorePath      string        `mapstructure:"STORE_PATH"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	AllowedOrigins string        `mapstructure:"ALLOWED_ORIGINS"`
	DefaultTheme   string        `mapstructure:"DEFAULT_THEME"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`

	Defaults *Defaults `mapstructure:"-"`
}

// Load reads configuration from .env, config.yml and the environment, then
// loads the bundled fallback data
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config.yml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	defaults, err := LoadDefaults()
	if err != nil {
		return nil, err
	}
	cfg.Defaults = defaults

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("API_BASE_URL", "http://127.0.0.1:3001")
	v.SetDefault("HTTP_TIMEOUT", 30*time.Second)
	v.SetDefault("CACHE_TTL", time.Duration(0))
	v.SetDefault("STORE_DRIVER", StoreSQLite)
	v.SetDefault("STORE_PATH", "termfolio.db")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("DEFAULT_THEME", "dark")
	v.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.DefaultTheme = strings.ToLower(strings.TrimSpace(c.DefaultTheme))
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
}

// Validate ensures that required configuration values are present and usable
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return errors.New("SERVER_ADDR is required")
	}
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL %q is not an absolute URL", c.APIBaseURL)
	}
	if c.HTTPTimeout < 0 {
		return errors.New("HTTP_TIMEOUT must not be negative")
	}
	if c.CacheTTL < 0 {
		return errors.New("CACHE_TTL must not be negative")
	}

	switch c.StoreDriver {
	case StoreSQLite:
		if c.StorePath == "" {
			return errors.New("STORE_PATH is required for the sqlite store")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.DefaultTheme != "light" && c.DefaultTheme != "dark" {
		return fmt.Errorf("DEFAULT_THEME must be light or dark, got %q", c.DefaultTheme)
	}
	return nil
}

// Origins splits ALLOWED_ORIGINS into a list
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
