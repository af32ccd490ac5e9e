package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAPIBaseURL = "https://url-info-extractor.onrender.com/api/v1"
	defaultDBPath     = "urlinfo.db"
	defaultTimeout    = 30 * time.Second
	defaultLogLevel   = "info"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL   string
	DBPath       string
	Timeout      time.Duration
	LogLevel     string
	LogFile      string
	InlineImages bool
}

// fileConfig mirrors Config in the optional YAML file. Pointers tell unset from zero.
type fileConfig struct {
	APIBaseURL   *string `yaml:"api_base_url"`
	DBPath       *string `yaml:"db_path"`
	Timeout      *string `yaml:"timeout"`
	LogLevel     *string `yaml:"log_level"`
	LogFile      *string `yaml:"log_file"`
	InlineImages *bool   `yaml:"inline_images"`
}

func Defaults() Config {
	return Config{
		APIBaseURL:   defaultAPIBaseURL,
		DBPath:       defaultDBPath,
		Timeout:      defaultTimeout,
		LogLevel:     defaultLogLevel,
		InlineImages: true,
	}
}

// LoadFromEnv builds the config from defaults, then the YAML file named by
// URLINFO_CONFIG (if any), then URLINFO_* environment variables.
func LoadFromEnv() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("URLINFO_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("URLINFO_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("URLINFO_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("URLINFO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("URLINFO_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("URLINFO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("URLINFO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("URLINFO_INLINE_IMAGE_PREVIEW"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("URLINFO_INLINE_IMAGE_PREVIEW: %w", err)
		}
		cfg.InlineImages = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.APIBaseURL != nil {
		c.APIBaseURL = *fc.APIBaseURL
	}
	if fc.DBPath != nil {
		c.DBPath = *fc.DBPath
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("config file timeout: %w", err)
		}
		c.Timeout = d
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.LogFile != nil {
		c.LogFile = *fc.LogFile
	}
	if fc.InlineImages != nil {
		c.InlineImages = *fc.InlineImages
	}
	return nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if strings.HasSuffix(c.APIBaseURL, "/") {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("APIBaseURL must be an http(s) URL: %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("Timeout must be positive: %s", c.Timeout)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// NewLogger builds a text slog logger at the configured level writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("LogLevel must be debug, info, warn or error: %s", s)
	}
	return level, nil
}
