package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DataSource selects where the portfolio pipeline reads initiatives from
type DataSource string

const (
	DataSourceLocal DataSource = "local"
	DataSourceLive  DataSource = "live"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	App        AppConfig
	Smartsheet SmartsheetConfig
	Cache      CacheConfig
	Redis      RedisConfig
	OTEL       OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	StaticDir      string
	AllowedOrigins []string
}

// AppConfig holds pipeline configuration
type AppConfig struct {
	Env             string
	LogLevel        string
	DataSource      DataSource
	LocalDataPath   string
	SheetConfigPath string
}

// SmartsheetConfig holds upstream API configuration. Token never leaves the server.
type SmartsheetConfig struct {
	APIToken    string
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
}

// CacheConfig holds freshness-layer configuration
type CacheConfig struct {
	Backend          string
	FreshnessSeconds int
	StaleSeconds     int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Key      string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables, after applying the optional .env file.
// Variables already present in the environment are never overridden by the file.
func Load() (*Config, error) {
	dotenvPath := getEnv("DOTENV_PATH", ".env")
	if _, err := os.Stat(dotenvPath); err == nil {
		if err := godotenv.Load(dotenvPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			StaticDir:      getEnv("STATIC_DIR", ""),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		App: AppConfig{
			Env:             getEnv("APP_ENV", "development"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			DataSource:      DataSource(strings.ToLower(getEnv("DATA_SOURCE", string(DataSourceLocal)))),
			LocalDataPath:   getEnv("LOCAL_DATA_PATH", "data/use_cases.json"),
			SheetConfigPath: getEnv("SHEET_CONFIG_PATH", "data/smartsheet_config.json"),
		},
		Smartsheet: SmartsheetConfig{
			APIToken:    strings.TrimSpace(os.Getenv("SMARTSHEET_API_TOKEN")),
			BaseURL:     getEnv("SMARTSHEET_BASE_URL", "https://api.smartsheet.com"),
			Timeout:     time.Duration(getEnvAsInt("SMARTSHEET_TIMEOUT_SECONDS", 15)) * time.Second,
			MaxAttempts: getEnvAsInt("SMARTSHEET_MAX_ATTEMPTS", 1),
		},
		Cache: CacheConfig{
			Backend:          strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
			FreshnessSeconds: getEnvAsInt("CACHE_FRESHNESS_SECONDS", 60),
			StaleSeconds:     getEnvAsInt("CACHE_STALE_SECONDS", 300),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Key:      getEnv("REDIS_CACHE_KEY", "portfolioboard:sheet:payload"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "ai-portfolio-board"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.App.DataSource {
	case DataSourceLocal, DataSourceLive:
	default:
		return fmt.Errorf("invalid DATA_SOURCE %q (must be local or live)", c.App.DataSource)
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q (must be memory or redis)", c.Cache.Backend)
	}
	if c.Cache.FreshnessSeconds <= 0 {
		return fmt.Errorf("CACHE_FRESHNESS_SECONDS must be positive, got %d", c.Cache.FreshnessSeconds)
	}
	if c.Cache.StaleSeconds < 0 {
		return fmt.Errorf("CACHE_STALE_SECONDS must not be negative, got %d", c.Cache.StaleSeconds)
	}
	if c.Smartsheet.MaxAttempts < 1 {
		return fmt.Errorf("SMARTSHEET_MAX_ATTEMPTS must be at least 1, got %d", c.Smartsheet.MaxAttempts)
	}
	return nil
}

// HasToken reports whether live Smartsheet requests can be made
func (c *SmartsheetConfig) HasToken() bool {
	return c.APIToken != ""
}

// FreshnessWindow returns the cache freshness window
func (c *CacheConfig) FreshnessWindow() time.Duration {
	return time.Duration(c.FreshnessSeconds) * time.Second
}

// CacheControl returns the Cache-Control directive advertised by the proxy endpoint
func (c *CacheConfig) CacheControl() string {
	return fmt.Sprintf("s-maxage=%d, stale-while-revalidate=%d", c.FreshnessSeconds, c.StaleSeconds)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
