package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Daily     DailyConfig     `yaml:"daily"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DailyConfig contains Token Issuing Service settings
type DailyConfig struct {
	APIBaseURL      string `yaml:"api_base_url"`
	APIKey          string `yaml:"api_key"`
	DiscoverBaseURL string `yaml:"discover_base_url"` // host the admin link points at
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// SessionConfig contains form session settings
type SessionConfig struct {
	Secret             string `yaml:"secret"`
	CookieName         string `yaml:"cookie_name"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
	SecureCookie       bool   `yaml:"secure_cookie"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SweepSessions string `yaml:"sweep_sessions"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes, applies environment
// overrides and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.overrideWithEnv(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() error {
	// Daily
	if val := os.Getenv("DAILY_API_BASE_URL"); val != "" {
		c.Daily.APIBaseURL = val
	}
	if val := os.Getenv("DAILY_API_KEY"); val != "" {
		c.Daily.APIKey = val
	}
	if val := os.Getenv("DAILY_DISCOVER_BASE_URL"); val != "" {
		c.Daily.DiscoverBaseURL = val
	}

	// Session
	if val := os.Getenv("SESSION_SECRET"); val != "" {
		c.Session.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: must be a number", val)
		}
		c.Server.Port = port
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Daily validation
	if c.Daily.APIBaseURL == "" {
		return fmt.Errorf("daily API base URL is required")
	}
	if !strings.HasPrefix(c.Daily.APIBaseURL, "http://") && !strings.HasPrefix(c.Daily.APIBaseURL, "https://") {
		return fmt.Errorf("daily API base URL must be http(s): %s", c.Daily.APIBaseURL)
	}
	if c.Daily.APIKey == "" {
		return fmt.Errorf("daily API key is required")
	}

	// Session validation
	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session secret must be at least 32 characters")
	}

	// Defaults
	if c.Daily.DiscoverBaseURL == "" {
		c.Daily.DiscoverBaseURL = "https://discover.daily.co"
	}
	if c.Daily.TimeoutSeconds <= 0 {
		c.Daily.TimeoutSeconds = 30
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "token_form_session"
	}
	if c.Session.IdleTimeoutMinutes <= 0 {
		c.Session.IdleTimeoutMinutes = 30
	}
	if c.Scheduler.SweepSessions == "" {
		c.Scheduler.SweepSessions = "0 * * * * *" // every minute
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDailyTimeout returns the upstream request timeout
func (c *Config) GetDailyTimeout() time.Duration {
	return time.Duration(c.Daily.TimeoutSeconds) * time.Second
}

// GetSessionIdleTimeout returns how long an untouched form session survives
func (c *Config) GetSessionIdleTimeout() time.Duration {
	return time.Duration(c.Session.IdleTimeoutMinutes) * time.Minute
}
