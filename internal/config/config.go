// Package config loads the esys configuration file, applies environment
// overrides and builds the process logger.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store drivers.
const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Duration is a time.Duration that reads and writes as "15s", "12h" and so on.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the esys configuration.
type Config struct {
	DataDir string        `json:"data_dir"`
	Store   StoreConfig   `json:"store"`
	HTTP    HTTPConfig    `json:"http"`
	Token   TokenConfig   `json:"token"`
	Log     LogConfig     `json:"log"`
	Session SessionConfig `json:"session"`
}

// StoreConfig selects the persistence back-end.
type StoreConfig struct {
	Driver string `json:"driver"`        // json, sqlite or postgres
	DSN    string `json:"dsn,omitempty"` // sqlite path or postgres URL
}

// HTTPConfig configures esys serve.
type HTTPConfig struct {
	Addr            string   `json:"addr"`
	ReadTimeout     Duration `json:"read_timeout"`
	WriteTimeout    Duration `json:"write_timeout"`
	ShutdownTimeout Duration `json:"shutdown_timeout"`
}

// TokenConfig configures API bearer tokens.
type TokenConfig struct {
	Secret string   `json:"secret,omitempty"`
	TTL    Duration `json:"ttl"`
}

// LogConfig configures slog.
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text or json
}

// SessionConfig is the logged-in CLI user and their selected context.
type SessionConfig struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	BaseID   string `json:"base_id,omitempty"`
	Tail     string `json:"aircraft_tail,omitempty"`
}

// LoggedIn reports whether a CLI session is active.
func (s SessionConfig) LoggedIn() bool {
	return s.Username != ""
}

// HomeDir returns ESYS_HOME, or the user's home directory.
func HomeDir() (string, error) {
	if dir := os.Getenv("ESYS_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// Path returns the config file path under home.
func Path(home string) string {
	return filepath.Join(home, ".esys", "config.json")
}

// Default returns the configuration used when no file exists.
func Default(home string) *Config {
	return &Config{
		DataDir: filepath.Join(home, ".esys", "data"),
		Store:   StoreConfig{Driver: DriverJSON},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Token: TokenConfig{TTL: Duration(12 * time.Hour)},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads .esys/config.json under home over the defaults, then
// applies environment overrides. A missing file is not an error.
func LoadConfig(home string) (*Config, error) {
	cfg := Default(home)

	data, err := os.ReadFile(Path(home))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes config.json under home.
func SaveConfig(home string, cfg *Config) error {
	dir := filepath.Dir(Path(home))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create .esys dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(home), data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DataDir = getEnvDefault("ESYS_DATA_DIR", c.DataDir)
	c.Store.Driver = getEnvDefault("ESYS_STORE_DRIVER", c.Store.Driver)
	c.Store.DSN = getEnvDefault("ESYS_STORE_DSN", c.Store.DSN)
	c.HTTP.Addr = getEnvDefault("ESYS_HTTP_ADDR", c.HTTP.Addr)
	c.Token.Secret = getEnvDefault("ESYS_TOKEN_SECRET", c.Token.Secret)
	c.Log.Level = getEnvDefault("ESYS_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvDefault("ESYS_LOG_FORMAT", c.Log.Format)
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverJSON, DriverSQLite:
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q (want json, sqlite or postgres)", c.Store.Driver)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	if c.Token.TTL <= 0 {
		return fmt.Errorf("token.ttl must be positive")
	}
	return nil
}

// RequireTokenSecret checks that a signing secret is configured for the API.
func (c *Config) RequireTokenSecret() error {
	if len(c.Token.Secret) < 16 {
		return fmt.Errorf("token secret must be at least 16 characters (set ESYS_TOKEN_SECRET)")
	}
	return nil
}

// SetupLogger builds the process logger from cfg and installs it as the slog default.
func SetupLogger(cfg *Config, w io.Writer) *slog.Logger {
	level, _ := ParseLogLevel(cfg.Log.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLogLevel converts a level name to slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
}

func getEnvDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
