package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Upload   UploadConfig
	Session  SessionConfig
	Database DatabaseConfig
	History  HistoryConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type UploadConfig struct {
	MaxFileSize int64
}

type SessionConfig struct {
	CookieName    string
	IdleTimeout   time.Duration
	SweepInterval time.Duration
	MaxWorkspaces int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type HistoryConfig struct {
	Enabled bool
	Limit   int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", ""),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 5*1024*1024),
		},
		Session: SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE", "ats_session"),
			IdleTimeout:   getEnvAsDuration("SESSION_IDLE_TIMEOUT", "30m"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "1m"),
			MaxWorkspaces: getEnvAsInt("SESSION_MAX_WORKSPACES", 10000),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ats_checker"),
		},
		History: HistoryConfig{
			Enabled: getEnvAsBool("HISTORY_ENABLED", false),
			Limit:   getEnvAsInt("HISTORY_LIMIT", 20),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "pretty"),
		},
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Upload.MaxFileSize)
	}
	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
