package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath   = "CONFIG_PATH"
	EnvDBConnection = "DB_CONNECTION"
	EnvJWTSecret    = "JWT_SECRET"
	EnvJWTExpiry    = "JWT_EXPIRY"
	EnvPort         = "PORT"
	EnvOMDBAPIKey   = "OMDB_API_KEY"
	EnvRedisURL     = "REDIS_URL"
)

// AppConfig holds resolved application configuration values.
type AppConfig struct {
	ConfigPath string
}

// LoadFromEnv loads app config from environment variables.
func LoadFromEnv() (AppConfig, error) {
	return AppConfig{ConfigPath: ResolveConfigPath(os.Getenv(EnvConfigPath))}, nil
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// ErrMissingDatabaseDSN indicates no database DSN is present in the config file.
var ErrMissingDatabaseDSN = errors.New("missing database dsn (set `database-dsn` or `database.dsn` in config file)")

// JWTConfig holds JWT secret and expiry settings.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// LoadDatabaseDSN reads the database DSN from the YAML config file.
func LoadDatabaseDSN(configPath string) (string, error) {
	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		return dsn, nil
	}

	// fileConfig maps the YAML fields needed for DSN resolution.
	type fileConfig struct {
		DatabaseDSN string `yaml:"database-dsn"`
		Database    struct {
			DSN string `yaml:"dsn"`
		} `yaml:"database"`
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read config file: %w", err)
	}

	var cfg fileConfig
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return "", fmt.Errorf("parse config file: %w", errUnmarshal)
	}

	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		return dsn, nil
	}
	if dsn := strings.TrimSpace(cfg.Database.DSN); dsn != "" {
		return dsn, nil
	}
	return "", ErrMissingDatabaseDSN
}

// defaultJWTExpiry is used when the config omits or invalidates JWT expiry.
const defaultJWTExpiry = 30 * 24 * time.Hour

// LoadJWTConfig loads JWT settings from the YAML config file.
func LoadJWTConfig(configPath string) (JWTConfig, error) {
	// fileConfig maps the YAML fields needed for JWT settings.
	type fileConfig struct {
		JWT JWTConfig `yaml:"jwt"`
	}

	result := JWTConfig{Expiry: defaultJWTExpiry}

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.JWT
		}
	}

	if secret := strings.TrimSpace(os.Getenv(EnvJWTSecret)); secret != "" {
		result.Secret = secret
	}
	if expiryRaw := strings.TrimSpace(os.Getenv(EnvJWTExpiry)); expiryRaw != "" {
		if expiry, errParse := time.ParseDuration(expiryRaw); errParse == nil && expiry > 0 {
			result.Expiry = expiry
		}
	}

	if result.Expiry <= 0 {
		result.Expiry = defaultJWTExpiry
	}
	return result, nil
}

// defaultPort is the listen port used when neither config nor env sets one.
const defaultPort = 8080

// LoadServerPort loads the HTTP listen port from the YAML config file.
func LoadServerPort(configPath string) (int, error) {
	// fileConfig maps the YAML fields needed for the server section.
	type fileConfig struct {
		Server struct {
			Port int `yaml:"port"`
		} `yaml:"server"`
	}

	port := defaultPort

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil && cfg.Server.Port > 0 {
			port = cfg.Server.Port
		}
	}

	if raw := strings.TrimSpace(os.Getenv(EnvPort)); raw != "" {
		var parsed int
		if _, errScan := fmt.Sscanf(raw, "%d", &parsed); errScan == nil && parsed > 0 {
			port = parsed
		}
	}
	return port, nil
}

// defaultOMDBAPIKey enables the built-in demo catalogue when no real key is set.
const defaultOMDBAPIKey = "demo"

// OMDBConfig holds settings for the OMDb metadata client.
type OMDBConfig struct {
	APIKey  string `yaml:"api-key"`
	BaseURL string `yaml:"base-url"`
}

// LoadOMDBConfig loads OMDb client settings from the YAML config file.
func LoadOMDBConfig(configPath string) (OMDBConfig, error) {
	// fileConfig maps the YAML fields needed for the omdb section.
	type fileConfig struct {
		OMDB OMDBConfig `yaml:"omdb"`
	}

	var result OMDBConfig

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.OMDB
		}
	}

	if key := strings.TrimSpace(os.Getenv(EnvOMDBAPIKey)); key != "" {
		result.APIKey = key
	}
	if strings.TrimSpace(result.APIKey) == "" {
		result.APIKey = defaultOMDBAPIKey
	}
	return result, nil
}

// RateLimitConfig holds rate limiter backend settings.
type RateLimitConfig struct {
	RedisURL string `yaml:"redis-url"`
}

// LoadRateLimitConfig loads rate limiter settings from the YAML config file.
func LoadRateLimitConfig(configPath string) (RateLimitConfig, error) {
	// fileConfig maps the YAML fields needed for the rate-limit section.
	type fileConfig struct {
		RateLimit RateLimitConfig `yaml:"rate-limit"`
	}

	var result RateLimitConfig

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.RateLimit
		}
	}

	if url := strings.TrimSpace(os.Getenv(EnvRedisURL)); url != "" {
		result.RedisURL = url
	}
	return result, nil
}
