// Package config loads runtime settings from .env, an optional YAML file and
// the process environment, in that order of precedence (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	minSecretKeyLength = 32
	defaultPort        = "8080"
	configPathEnv      = "WELLNEST_CONFIG"
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses a placeholder value")
	ErrSecretKeyTooShort = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Log       LogConfig       `yaml:"log"`
	Stats     StatsConfig     `yaml:"stats"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	Timezone        string `yaml:"timezone"`
	SecretKey       string `yaml:"secret_key"`
	DefaultLanguage string `yaml:"default_language"`
	CookieSecure    bool   `yaml:"cookie_secure"`
	// CORSOrigins is a comma-separated allow list; empty disables CORS.
	CORSOrigins     string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
}

// RedisConfig enables the stats cache and the change relay when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	StatsTTL time.Duration `yaml:"stats_ttl"`
}

type SentimentConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StatsConfig struct {
	PredictFromAverage bool `yaml:"predict_from_average"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            defaultPort,
			Timezone:        "UTC",
			DefaultLanguage: "en",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join("data", "wellnest.db"),
		},
		Redis: RedisConfig{
			StatsTTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads .env (if present), the YAML file named by WELLNEST_CONFIG (if
// set) and then applies environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv(configPathEnv)); path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// Validate checks the settings every command needs. Server-only settings are
// checked by ValidateServer.
func (config *Config) Validate() error {
	switch config.Database.Driver {
	case "sqlite":
		if strings.TrimSpace(config.Database.Path) == "" {
			return errors.New("database path is required for sqlite")
		}
	case "postgres":
		if strings.TrimSpace(config.Database.URL) == "" {
			return errors.New("DATABASE_URL is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", config.Database.Driver)
	}

	if config.Redis.StatsTTL <= 0 {
		return errors.New("stats cache ttl must be positive")
	}
	return nil
}

func (config *Config) ValidateServer() error {
	secret, err := ValidateSecretKey(config.Server.SecretKey)
	if err != nil {
		return err
	}
	config.Server.SecretKey = secret

	port, err := ValidatePort(config.Server.Port)
	if err != nil {
		return err
	}
	config.Server.Port = port
	return nil
}

func (config *Config) RedisEnabled() bool {
	return strings.TrimSpace(config.Redis.Addr) != ""
}

func (config *Config) SentimentEnabled() bool {
	return strings.TrimSpace(config.Sentiment.URL) != ""
}

func (config *Config) applyEnv() error {
	overrideString(&config.Server.Port, "PORT")
	overrideString(&config.Server.Timezone, "TZ")
	overrideString(&config.Server.SecretKey, "SECRET_KEY")
	overrideString(&config.Server.DefaultLanguage, "DEFAULT_LANGUAGE")
	overrideString(&config.Server.CORSOrigins, "CORS_ORIGINS")
	overrideString(&config.Database.Driver, "DB_DRIVER")
	overrideString(&config.Database.Path, "DB_PATH")
	overrideString(&config.Database.URL, "DATABASE_URL")
	overrideString(&config.Redis.Addr, "REDIS_ADDR")
	overrideString(&config.Redis.Password, "REDIS_PASSWORD")
	overrideString(&config.Sentiment.URL, "SENTIMENT_URL")
	overrideString(&config.Sentiment.Token, "SENTIMENT_TOKEN")
	overrideString(&config.Log.Level, "LOG_LEVEL")
	overrideString(&config.Log.Format, "LOG_FORMAT")

	config.Database.Driver = strings.ToLower(strings.TrimSpace(config.Database.Driver))

	if err := overrideBool(&config.Server.CookieSecure, "COOKIE_SECURE"); err != nil {
		return err
	}
	if err := overrideBool(&config.Stats.PredictFromAverage, "PREDICT_FROM_AVERAGE"); err != nil {
		return err
	}
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
		}
		config.Redis.DB = value
	}
	if raw := strings.TrimSpace(os.Getenv("STATS_CACHE_TTL")); raw != "" {
		value, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid STATS_CACHE_TTL %q: %w", raw, err)
		}
		config.Redis.StatsTTL = value
	}
	return nil
}

func ValidateSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyInsecure
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func ValidatePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return defaultPort, nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return port, nil
}

// LoadLocation falls back to UTC for unknown zone names.
func LoadLocation(name string) (*time.Location, bool) {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return time.UTC, false
	}
	return location, true
}

func overrideString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func overrideBool(target *bool, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	*target = value
	return nil
}
