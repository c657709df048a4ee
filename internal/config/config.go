// Package config loads server settings from config.yaml, .env and the environment,
// in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	DBPath   string `yaml:"db_path"`

	JWTSecret      string `yaml:"jwt_secret"`
	JWTExpiresDays int    `yaml:"jwt_expires_days"`
	CookieName     string `yaml:"cookie_name"`
	ClientOrigin   string `yaml:"client_origin"`
	Production     bool   `yaml:"production"`

	DailySalt        string `yaml:"daily_salt"`
	WordsAnswersFile string `yaml:"words_answers_file"`

	SessionTTL      time.Duration `yaml:"session_ttl"`
	JanitorSchedule string        `yaml:"janitor_schedule"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:            "5175",
		LogLevel:        "info",
		DBPath:          "./data/app.db",
		JWTSecret:       "dev_secret_change_me",
		JWTExpiresDays:  14,
		CookieName:      "wordle_token",
		ClientOrigin:    "http://localhost:5173",
		DailySalt:       "local_dev_salt",
		SessionTTL:      2 * time.Hour,
		JanitorSchedule: "*/5 * * * *",
		RequestTimeout:  10 * time.Second,
	}
}

// Load builds the configuration.
//
//  1. Defaults.
//  2. YAML file at CONFIG_PATH (default config.yaml), if it exists.
//  3. .env in the working directory, if it exists (never overrides real env vars).
//  4. Environment variables.
func Load() (Config, error) {
	cfg := Default()

	path := "config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	_ = godotenv.Load()

	envOverride(&cfg.Port, "PORT")
	envOverride(&cfg.LogLevel, "LOG_LEVEL")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.JWTSecret, "JWT_SECRET")
	envOverride(&cfg.CookieName, "COOKIE_NAME")
	envOverride(&cfg.ClientOrigin, "CLIENT_ORIGIN")
	envOverride(&cfg.DailySalt, "DAILY_SALT")
	envOverride(&cfg.WordsAnswersFile, "WORDS_ANSWERS_FILE")
	envOverride(&cfg.JanitorSchedule, "JANITOR_SCHEDULE")
	if err := envOverrideInt(&cfg.JWTExpiresDays, "JWT_EXPIRES_DAYS"); err != nil {
		return cfg, err
	}
	if err := envOverrideDuration(&cfg.SessionTTL, "SESSION_TTL"); err != nil {
		return cfg, err
	}
	if err := envOverrideDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT"); err != nil {
		return cfg, err
	}
	if v := os.Getenv("NODE_ENV"); v != "" {
		cfg.Production = v == "production"
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Port == "":
		return fmt.Errorf("config: port is required")
	case c.JWTExpiresDays <= 0:
		return fmt.Errorf("config: jwt_expires_days must be positive, got %d", c.JWTExpiresDays)
	case c.SessionTTL <= 0:
		return fmt.Errorf("config: session_ttl must be positive, got %s", c.SessionTTL)
	case c.Production && c.JWTSecret == Default().JWTSecret:
		return fmt.Errorf("config: jwt_secret must be set in production")
	}
	return nil
}

func envOverride(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = n
	return nil
}

func envOverrideDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = d
	return nil
}
