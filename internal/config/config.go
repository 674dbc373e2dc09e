package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when CONFIG_FILE is not set. A missing default file
// is not an error.
const DefaultFile = "configs/config.yaml"

type Config struct {
	// Telegram
	TelegramToken string `yaml:"telegram_token"`

	// Database
	PostgresDSN   string `yaml:"postgres_dsn"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Catalog
	CatalogPath           string        `yaml:"catalog_path"`
	SavedJobsPath         string        `yaml:"saved_jobs_path"`
	CatalogReloadInterval time.Duration `yaml:"catalog_reload_interval"`

	// Bot settings
	JobsPerPage        int `yaml:"jobs_per_page"`
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		RedisAddr:             "localhost:6379",
		CatalogPath:           "data/jobpostings.json",
		SavedJobsPath:         "data/savedJobs.json",
		CatalogReloadInterval: 10 * time.Minute,
		JobsPerPage:           5,
		RateLimitPerMinute:    30,
		LogLevel:              "info",
	}
}

// Load builds the config from defaults, then the YAML file, then
// environment variables. Call Validate before starting the bot.
func Load() (*Config, error) {
	cfg := defaults()

	path, explicit := os.LookupEnv("CONFIG_FILE")
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.TelegramToken, "TELEGRAM_TOKEN")
	setString(&c.PostgresDSN, "POSTGRES_DSN")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.CatalogPath, "CATALOG_PATH")
	setString(&c.SavedJobsPath, "SAVED_JOBS_PATH")
	setString(&c.LogLevel, "LOG_LEVEL")

	if err := setInt(&c.RedisDB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&c.JobsPerPage, "JOBS_PER_PAGE"); err != nil {
		return err
	}
	if err := setInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE"); err != nil {
		return err
	}

	if interval := os.Getenv("CATALOG_RELOAD_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("invalid CATALOG_RELOAD_INTERVAL: %w", err)
		}
		c.CatalogReloadInterval = d
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate checks the settings the bot needs to run.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("telegram token is empty")
	}

	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.CatalogPath == "" {
		return fmt.Errorf("catalog path is empty")
	}

	if c.CatalogReloadInterval < time.Minute {
		return fmt.Errorf("catalog reload interval too small: %v", c.CatalogReloadInterval)
	}

	if c.JobsPerPage < 1 || c.JobsPerPage > 20 {
		return fmt.Errorf("jobs per page must be between 1 and 20")
	}

	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("rate limit per minute must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
