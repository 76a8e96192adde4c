package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// EnvDevelopment is the APP_ENV value that relaxes startup checks.
const EnvDevelopment = "development"

// developmentJWTSecret is only ever used when APP_ENV=development.
const developmentJWTSecret = "development-only-secret"

// ErrMissingJWTSecret is returned by Validate when no signing key is configured outside development.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set outside development")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv         string
	ServerPort     string
	LogLevel       string
	MySQLDSN       string
	DB             PoolConfig
	RequestTimeout time.Duration
	JWTSecret      string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	Mail           MailConfig
	ResetDB        bool
	SwaggerHost    string
}

// PoolConfig bounds the shared database connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// MailConfig configures the newsletter welcome mail. An empty APIKey disables sending.
type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

// Load reads an optional .env file and builds Config from environment with sensible defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:     getEnv("APP_ENV", "production"),
		ServerPort: getEnv("PORT", "3001"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		MySQLDSN:   getEnv("MYSQL_DSN", buildDSN()),
		DB: PoolConfig{
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		Mail: MailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			FromEmail:      getEnv("NEWSLETTER_FROM_EMAIL", "newsletter@godpill.local"),
			FromName:       getEnv("NEWSLETTER_FROM_NAME", "God Pill"),
		},
		ResetDB:     getEnvBool("RESET_DB", false),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Validate checks settings that must fail startup. In development a missing
// JWT secret is replaced by a fixed development key; the returned bool reports that.
func (c *Config) Validate() (usedDevSecret bool, err error) {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return false, ErrMissingJWTSecret
		}
		c.JWTSecret = developmentJWTSecret
		usedDevSecret = true
	}
	if c.DB.MaxOpenConns <= 0 {
		return usedDevSecret, fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DB.MaxOpenConns)
	}
	if c.RequestTimeout <= 0 {
		return usedDevSecret, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return usedDevSecret, nil
}

func buildDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = getEnv("DB_USER", "root")
	cfg.Passwd = os.Getenv("DB_PASSWORD")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "3306"))
	cfg.DBName = getEnv("DB_NAME", "godpill")
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
