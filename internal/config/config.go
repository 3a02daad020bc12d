package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	PublicBaseURL  string // prefix of the page links encoded in share codes
	AllowedOrigins []string
}

// Supported values of DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

type DatabaseConfig struct {
	Driver       string
	DSN          string // takes precedence over the discrete fields below
	Host         string
	Port         string
	Username     string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	AutoMigrate  bool
	LogQueries   bool
}

type KafkaConfig struct {
	Brokers     []string
	TopicPrefix string
	Enabled     bool
}

type LogConfig struct {
	Dir     string // empty disables the JSON log file
	Service string
	Level   string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", ":5000"),
			ReadTimeout:    time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
			WriteTimeout:   time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
			IdleTimeout:    time.Duration(getEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
			PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:5000"), "/"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			DSN:          os.Getenv("DB_DSN"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Username:     getEnv("DB_USERNAME", "spotlight"),
			Password:     getEnv("DB_PASSWORD", "spotlight"),
			Database:     getEnv("DB_NAME", "spotlight"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
			AutoMigrate:  getEnvBool("AUTO_MIGRATE", true),
			LogQueries:   getEnvBool("DB_LOG_QUERIES", false),
		},
		Kafka: KafkaConfig{
			Brokers:     getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			TopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", "spotlight"),
			Enabled:     getEnvBool("KAFKA_ENABLED", false),
		},
		Log: LogConfig{
			Dir:     getEnv("LOG_DIR", "logs"),
			Service: getEnv("LOG_SERVICE", "spotlight"),
			Level:   getEnv("LOG_LEVEL", "info"),
		},
	}
}

// ConnString returns the driver-specific data source name.
func (c DatabaseConfig) ConnString() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	switch c.Driver {
	case DriverPostgres:
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			c.Username, c.Password, c.Host, c.Port, c.Database), nil
	case DriverMySQL:
		// parseTime for DATETIME scanning, multiStatements for migration files.
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
			c.Username, c.Password, c.Host, c.Port, c.Database), nil
	case DriverSQLite:
		return fmt.Sprintf("file:%s.db?cache=shared", c.Database), nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
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
