package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read through this package and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External services
	LLM    LLMConfig
	Trends TrendsConfig

	// Pipeline
	Pipeline PipelineConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// LLMConfig holds the chat-completion API configuration
type LLMConfig struct {
	BaseURL       string
	APIKey        string
	Model         string
	FallbackModel string // empty disables the fallback chain
	MaxTokens     int
	Temperature   float64
	Timeout       time.Duration
}

// TrendsConfig holds trend-source configuration
type TrendsConfig struct {
	BaseURL     string // primary trends API
	FallbackURL string // secondary trending page (HTML)
	Geo         string
	Timeframe   string
	RatePerMin  int // request budget against the primary source
	CacheTTL    time.Duration
}

// PipelineConfig holds pipeline tunables
type PipelineConfig struct {
	MinNicheScore    float64
	MaxDesignsPerRun int
	SeedKeywords     []string
	OutputDir        string
}

// SchedulerConfig holds cron schedules for the pipeline jobs
type SchedulerConfig struct {
	Enabled    bool
	DailySpec  string // cron expression with seconds field
	WeeklySpec string
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8097"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		LLM: LLMConfig{
			BaseURL:       getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:        getEnv("LLM_API_KEY", ""),
			Model:         getEnv("LLM_MODEL", "gpt-4o"),
			FallbackModel: getEnv("LLM_FALLBACK_MODEL", "gpt-4o-mini"),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 4000),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", "90s"),
		},

		Trends: TrendsConfig{
			BaseURL:     getEnv("TRENDS_BASE_URL", "https://trends.google.com/trends/api"),
			FallbackURL: getEnv("TRENDS_FALLBACK_URL", "https://trends.google.com/trending"),
			Geo:         getEnv("TRENDS_GEO", "US"),
			Timeframe:   getEnv("TRENDS_TIMEFRAME", "today 1-m"),
			RatePerMin:  getEnvAsInt("TRENDS_RATE_PER_MIN", 30),
			CacheTTL:    getEnvAsDuration("TRENDS_CACHE_TTL", "1h"),
		},

		Pipeline: PipelineConfig{
			MinNicheScore:    getEnvAsFloat("MIN_NICHE_SCORE", 6.5),
			MaxDesignsPerRun: getEnvAsInt("MAX_DESIGNS_PER_RUN", 10),
			SeedKeywords: getEnvAsSlice("SEED_KEYWORDS", []string{
				"funny shirt", "trending tee", "graphic t-shirt", "gift idea shirt",
			}),
			OutputDir: getEnv("OUTPUT_DIR", "./outputs"),
		},

		Scheduler: SchedulerConfig{
			Enabled:    getEnvAsBool("SCHEDULER_ENABLED", true),
			DailySpec:  getEnv("SCHEDULE_DAILY", "0 0 9 * * *"),   // 9 AM daily
			WeeklySpec: getEnv("SCHEDULE_WEEKLY", "0 0 10 * * 1"), // 10 AM Monday
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Pipeline.MinNicheScore < 0 || c.Pipeline.MinNicheScore > 10 {
		return fmt.Errorf("MIN_NICHE_SCORE must be within [0,10], got %v", c.Pipeline.MinNicheScore)
	}

	if c.Pipeline.MaxDesignsPerRun < 1 {
		return fmt.Errorf("MAX_DESIGNS_PER_RUN must be at least 1")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	if len(values) == 0 {
		return defaultValue
	}

	return values
}
