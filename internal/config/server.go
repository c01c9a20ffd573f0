package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig defines the HTTP service settings.
type ServerConfig struct {
	ListenAddr     string        `yaml:"listen_addr"`
	LogLevel       string        `yaml:"log_level"`
	RedisURL       string        `yaml:"redis_url"` // empty selects the in-process cache
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	CacheSize      int           `yaml:"cache_size"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps"`
	RateLimitBurst int           `yaml:"rate_limit_burst"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	TablesFile     string        `yaml:"tables_file"` // optional configuration whose tables override the defaults
}

// LoadServerConfig loads service config from env, then an optional YAML
// file named by HKMORTGAGE_CONFIG. A malformed numeric or duration variable
// is an error rather than a silent fallback.
func LoadServerConfig() (ServerConfig, error) {
	cfg := ServerConfig{
		ListenAddr: getenvDefault("HKMORTGAGE_LISTEN_ADDR", ":8080"),
		LogLevel:   getenvDefault("HKMORTGAGE_LOG_LEVEL", "info"),
		RedisURL:   os.Getenv("HKMORTGAGE_REDIS_URL"),
		TablesFile: os.Getenv("HKMORTGAGE_TABLES_FILE"),
	}

	var err error
	if cfg.CacheTTL, err = getenvDurationDefault("HKMORTGAGE_CACHE_TTL", 15*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.CacheSize, err = getenvIntDefault("HKMORTGAGE_CACHE_SIZE", 256); err != nil {
		return cfg, err
	}
	if cfg.RateLimitRPS, err = getenvFloatDefault("HKMORTGAGE_RATE_LIMIT_RPS", 5); err != nil {
		return cfg, err
	}
	if cfg.RateLimitBurst, err = getenvIntDefault("HKMORTGAGE_RATE_LIMIT_BURST", 10); err != nil {
		return cfg, err
	}
	if cfg.RequestTimeout, err = getenvDurationDefault("HKMORTGAGE_REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return cfg, err
	}

	if path := os.Getenv("HKMORTGAGE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if cfg.ListenAddr == "" {
		return cfg, errors.New("server: listen address required")
	}
	if cfg.CacheSize <= 0 {
		return cfg, errors.New("server: cache size must be positive")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return cfg, errors.New("server: rate limit must be positive")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvFloatDefault(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback, fmt.Errorf("server: invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getenvIntDefault(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("server: invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getenvDurationDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("server: invalid %s: %w", key, err)
	}
	return parsed, nil
}
