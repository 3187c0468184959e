package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for both binaries
type Config struct {
	Env      string
	LogLevel string

	HTTP     HTTPConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Slack    SlackConfig
	Dispatch DispatchConfig
}

type HTTPConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StorageConfig struct {
	// Backend selects the store implementation: sqlite, postgres or memory
	Backend string

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (p PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

type KafkaConfig struct {
	// Brokers is empty when alert publishing is disabled
	Brokers     []string
	AlertsTopic string
	GroupID     string
}

// Enabled reports whether a broker list was configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type RedisConfig struct {
	// Addr is empty when no cooldown store is available
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

type SlackConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

type DispatchConfig struct {
	QueueSize   int
	Workers     int
	CooldownTTL time.Duration
}

// Load reads configuration from the environment, consulting a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Env:      getEnv("ENV", "production"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Addr:         getEnv("HTTP_ADDR", ":3000"),
			ReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			Backend:    getEnv("STORAGE_BACKEND", "sqlite"),
			SQLitePath: getEnv("SQLITE_PATH", "data/brewmetrics.db"),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "brew_user"),
			Password: getEnv("DB_PASSWORD", "brew_pass"),
			DBName:   getEnv("DB_NAME", "brewmetrics"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			AlertsTopic: getEnv("KAFKA_TOPIC_ALERTS", "brewmetrics.alerts"),
			GroupID:     getEnv("KAFKA_GROUP_ID", "brewmetrics-notifier"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "brewmetrics@example.com"),
			To:       getEnv("SMTP_TO", "barista@example.com"),
		},
		Slack: SlackConfig{
			WebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
			Timeout:    getEnvAsDuration("SLACK_TIMEOUT", 10*time.Second),
		},
		Dispatch: DispatchConfig{
			QueueSize:   getEnvAsInt("DISPATCH_QUEUE_SIZE", 256),
			Workers:     getEnvAsInt("DISPATCH_WORKERS", 4),
			CooldownTTL: getEnvAsDuration("ALERT_COOLDOWN_TTL", 15*time.Minute),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Dispatch.QueueSize <= 0 {
		return fmt.Errorf("dispatch queue size must be positive, got %d", c.Dispatch.QueueSize)
	}
	if c.Dispatch.Workers <= 0 {
		return fmt.Errorf("dispatch workers must be positive, got %d", c.Dispatch.Workers)
	}

	return nil
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
