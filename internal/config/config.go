package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Slot backends
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	SlotBackend string
	Database    DatabaseConfig
	Redis       RedisConfig
	Portal      PortalConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PortalConfig holds session timing and retention settings
type PortalConfig struct {
	RenderDelay    time.Duration
	ReplyDelay     time.Duration
	NoticeDuration time.Duration
	RememberDays   int
	AutoResume     bool
	SessionIdle    time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var err error
	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		SlotBackend: getEnv("SLOT_BACKEND", BackendPostgres),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "campusportal"),
			User:     getEnv("DB_USER", "campusportal"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Portal.RenderDelay, err = getEnvDuration("RENDER_DELAY", 300*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Portal.ReplyDelay, err = getEnvDuration("REPLY_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.Portal.NoticeDuration, err = getEnvDuration("NOTICE_DURATION", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.Portal.RememberDays, err = getEnvInt("REMEMBER_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.Portal.AutoResume, err = getEnvBool("AUTO_RESUME", false); err != nil {
		return nil, err
	}
	if cfg.Portal.SessionIdle, err = getEnvDuration("SESSION_IDLE", 24*time.Hour); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	switch cfg.SlotBackend {
	case BackendPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	case BackendRedis:
	default:
		return nil, fmt.Errorf("SLOT_BACKEND must be %q or %q, got %q", BackendPostgres, BackendRedis, cfg.SlotBackend)
	}
	if cfg.Portal.RememberDays <= 0 {
		return nil, fmt.Errorf("REMEMBER_DAYS must be positive")
	}
	if cfg.Portal.SessionIdle <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE must be positive")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// RememberTTL returns how long a remembered identity is kept
func (c *Config) RememberTTL() time.Duration {
	return time.Duration(c.Portal.RememberDays) * 24 * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}
	return d, nil
}
