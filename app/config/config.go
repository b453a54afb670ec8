// Package config loads runtime settings for the blog server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"blog/app/models"
)

// Config keeps runtime settings for the blog server.
type Config struct {
	Addr              string        `yaml:"addr"`
	DatabaseURL       string        `yaml:"database_url"`
	SessionPath       string        `yaml:"session_path"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	SessionGCSchedule string        `yaml:"session_gc_schedule"`
	CookieName        string        `yaml:"cookie_name"`
	CookieSecure      bool          `yaml:"cookie_secure"`
	StaticDir         string        `yaml:"static_dir"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	Categories        []string      `yaml:"categories"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Addr:              ":8080",
		DatabaseURL:       "data/blog.db",
		SessionPath:       "data/sessions",
		SessionTTL:        24 * time.Hour,
		SessionGCSchedule: "@every 10m",
		CookieName:        "blog_session",
		StaticDir:         "static",
		LogLevel:          "info",
		LogFormat:         "text",
		Categories:        append([]string(nil), models.DefaultCategories...),
	}
}

// Load builds a Config from defaults, an optional YAML file, a .env file and the environment,
// in that order of precedence (later wins).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr is required")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("database url is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.CookieName == "" {
		return errors.New("cookie name is required")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Addr, "BLOG_ADDR")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.SessionGCSchedule, "BLOG_SESSION_GC")
	setString(&cfg.CookieName, "BLOG_COOKIE_NAME")
	setString(&cfg.StaticDir, "BLOG_STATIC_DIR")
	setString(&cfg.LogLevel, "BLOG_LOG_LEVEL")
	setString(&cfg.LogFormat, "BLOG_LOG_FORMAT")

	// An explicitly empty BLOG_SESSION_PATH selects the in-memory session store.
	if v, ok := os.LookupEnv("BLOG_SESSION_PATH"); ok {
		cfg.SessionPath = strings.TrimSpace(v)
	}

	if raw := strings.TrimSpace(os.Getenv("BLOG_SESSION_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("BLOG_SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}
	if raw := strings.TrimSpace(os.Getenv("BLOG_COOKIE_SECURE")); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("BLOG_COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = secure
	}
	if raw := strings.TrimSpace(os.Getenv("BLOG_CATEGORIES")); raw != "" {
		var names []string
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		cfg.Categories = names
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
