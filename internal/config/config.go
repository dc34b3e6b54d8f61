package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the roster service.
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Session SessionConfig
	Import  ImportConfig
}

type AppConfig struct {
	Env          string
	Port         string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

const (
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type StorageConfig struct {
	Driver     string
	SQLitePath string
	Postgres   PostgresConfig
	MaxRetries int
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig is optional; an empty Addr keeps sessions in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig is optional; an empty Broker disables lifecycle events. With
// Outbox set, events are queued in process and written by a background worker.
type KafkaConfig struct {
	Broker         string
	GroupID        string
	Outbox         bool
	OutboxCapacity int
	PollInterval   time.Duration
}

type SessionConfig struct {
	Passcode   string
	Secret     string
	TTL        time.Duration
	CookieName string
}

type ImportConfig struct {
	MaxBytes int64
}

var passcodePattern = regexp.MustCompile(`^\d{6}$`)

// Load reads .env (when present) and the process environment, applying defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getEnvAsDuration("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	maxRetries, err := getEnvAsInt("DB_MAX_RETRIES", 5)
	if err != nil {
		return nil, err
	}
	maxBytes, err := getEnvAsInt("IMPORT_MAX_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	outbox, err := getEnvAsBool("KAFKA_OUTBOX", true)
	if err != nil {
		return nil, err
	}
	outboxCapacity, err := getEnvAsInt("KAFKA_OUTBOX_CAPACITY", 10000)
	if err != nil {
		return nil, err
	}
	pollInterval, err := getEnvAsDuration("KAFKA_POLL_INTERVAL", 3*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:          getEnv("APP_ENV", "development"),
			Port:         getEnv("PORT", "3000"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverSQLite)),
			SQLitePath: getEnv("SQLITE_PATH", "data/roster.db"),
			Postgres: PostgresConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "postgres"),
				Password: os.Getenv("DB_PASSWORD"),
				Name:     getEnv("DB_NAME", "roster"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
			MaxRetries: maxRetries,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Broker:         os.Getenv("KAFKA_BROKER"),
			GroupID:        getEnv("KAFKA_GROUP_ID", "go-roster-audit"),
			Outbox:         outbox,
			OutboxCapacity: outboxCapacity,
			PollInterval:   pollInterval,
		},
		Session: SessionConfig{
			Passcode:   getEnv("ROSTER_PASSCODE", "123456"),
			Secret:     getEnv("SESSION_SECRET", "change-me-roster-session-secret"),
			TTL:        sessionTTL,
			CookieName: getEnv("SESSION_COOKIE", "roster_session"),
		},
		Import: ImportConfig{
			MaxBytes: int64(maxBytes),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverSQLite, StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: expected sqlite, postgres or memory", c.Storage.Driver)
	}
	if !passcodePattern.MatchString(c.Session.Passcode) {
		return fmt.Errorf("invalid ROSTER_PASSCODE: must be exactly 6 digits")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Import.MaxBytes <= 0 {
		return fmt.Errorf("IMPORT_MAX_BYTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
