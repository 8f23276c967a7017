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
)

// Config captures everything aperture reads at startup.
type Config struct {
	APIURL         string
	TokenFile      string
	RequestTimeout time.Duration
	Log            LogConfig
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level  string
	Format string
	File   string
	Fluent FluentConfig
}

// FluentConfig controls optional forwarding to a fluentd agent.
type FluentConfig struct {
	Enabled bool
	Host    string
	Port    int
}

// Environment variables that override the config file.
const (
	EnvAPIURL    = "APERTURE_API_URL"
	EnvTokenFile = "APERTURE_TOKEN_FILE"
	EnvLogLevel  = "APERTURE_LOG_LEVEL"
)

const (
	defaultConfigPath     = "~/.config/aperture/config.toml"
	defaultAPIURL         = "https://backend.jayaphotography.in/api/v1"
	defaultTokenFile      = "~/.config/aperture/token"
	defaultRequestTimeout = 10 * time.Second
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultLogFile        = "~/.local/state/aperture/aperture.log"
	defaultFluentHost     = "127.0.0.1"
	defaultFluentPort     = 24224
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		TokenFile:      mustExpand(defaultTokenFile),
		RequestTimeout: defaultRequestTimeout,
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			File:   mustExpand(defaultLogFile),
			Fluent: FluentConfig{Host: defaultFluentHost, Port: defaultFluentPort},
		},
	}
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load parses the config file, falling back to defaults when it is missing,
// then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		applyEnv(&cfg)
		return cfg, nil
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		TokenFile      string `toml:"token_file"`
		RequestTimeout string `toml:"request_timeout"`
		Log            struct {
			Level  string `toml:"level"`
			Format string `toml:"format"`
			File   string `toml:"file"`
			Fluent struct {
				Enabled bool   `toml:"enabled"`
				Host    string `toml:"host"`
				Port    int    `toml:"port"`
			} `toml:"fluent"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.TokenFile); v != "" {
		cfg.TokenFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("parse config: request_timeout %q is not a positive duration", v)
		}
		cfg.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.Log.Level); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Log.Format)); v != "" {
		if v != "text" && v != "json" {
			return Config{}, fmt.Errorf("parse config: log.format %q must be text or json", v)
		}
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(raw.Log.File); v != "" {
		cfg.Log.File = mustExpand(v)
	}
	cfg.Log.Fluent.Enabled = raw.Log.Fluent.Enabled
	if v := strings.TrimSpace(raw.Log.Fluent.Host); v != "" {
		cfg.Log.Fluent.Host = v
	}
	if raw.Log.Fluent.Port > 0 {
		cfg.Log.Fluent.Port = raw.Log.Fluent.Port
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTokenFile)); v != "" {
		cfg.TokenFile = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
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
