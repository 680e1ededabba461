// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Port                   string   `yaml:"port"`
	DBPath                 string   `yaml:"db_path"`
	UpstreamURL            string   `yaml:"upstream_url"`
	UpstreamTimeoutSeconds int      `yaml:"upstream_timeout_seconds"`
	MaxUploadMB            int      `yaml:"max_upload_mb"`
	RecentLimit            int      `yaml:"recent_limit"`
	FrequentLimit          int      `yaml:"frequent_limit"`
	AllowedOrigins         []string `yaml:"allowed_origins"`
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables override file values, file values override defaults.
// The file path comes from CONFIG_FILE and falls back to ./config.yaml.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   "8080",
		DBPath:                 "./data/helper.db",
		UpstreamTimeoutSeconds: 30,
		MaxUploadMB:            10,
		RecentLimit:            10,
		FrequentLimit:          5,
		AllowedOrigins:         []string{"*"},
	}

	if err := cfg.applyFile(os.Getenv("CONFIG_FILE")); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = "./config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.UpstreamURL = getEnv("UPSTREAM_URL", c.UpstreamURL)
	c.UpstreamTimeoutSeconds = getEnvInt("UPSTREAM_TIMEOUT_SECONDS", c.UpstreamTimeoutSeconds)
	c.MaxUploadMB = getEnvInt("MAX_UPLOAD_MB", c.MaxUploadMB)
	c.RecentLimit = getEnvInt("RECENT_LIMIT", c.RecentLimit)
	c.FrequentLimit = getEnvInt("FREQUENT_LIMIT", c.FrequentLimit)

	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		c.AllowedOrigins = c.AllowedOrigins[:0]
		for _, p := range strings.Split(origins, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, p)
			}
		}
	}
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.UpstreamURL == "" {
		return fmt.Errorf("UPSTREAM_URL cannot be empty")
	}
	if c.UpstreamTimeoutSeconds <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be > 0")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be > 0")
	}
	if c.RecentLimit <= 0 {
		return fmt.Errorf("RECENT_LIMIT must be > 0")
	}
	if c.FrequentLimit <= 0 {
		return fmt.Errorf("FREQUENT_LIMIT must be > 0")
	}
	return nil
}

// UpstreamTimeout returns the upstream request timeout as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// MaxUploadBytes returns the multipart form memory/size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
