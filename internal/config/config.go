package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed to constructors.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Mail     MailConfig
	Export   ExportConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	Env             string
	AllowedOrigins  string
	BodyLimit       int
	APIRateLimit    int
	APIRateWindow   time.Duration
	AuthRateLimit   int
	AuthRateWindow  time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled   bool
	Host      string
	Port      string
	Password  string
	DB        int
	ReportTTL time.Duration
	UserTTL   time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type MailConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	FrontendURL string
}

// Enabled reports whether SMTP delivery is configured.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Username != ""
}

type ExportConfig struct {
	TempDir string
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found", "error", err)
	}
}

// Load reads the environment into a Config.
func Load() *Config {
	LoadEnv()

	return &Config{
		Server: ServerConfig{
			Port:            GetEnv("PORT", "5000"),
			Env:             GetEnv("ENV", "development"),
			AllowedOrigins:  GetEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
			BodyLimit:       GetIntEnv("BODY_LIMIT_MB", 10) * 1024 * 1024,
			APIRateLimit:    GetIntEnv("API_RATE_LIMIT", 100),
			APIRateWindow:   GetDurationEnv("API_RATE_WINDOW", 15*time.Minute),
			AuthRateLimit:   GetIntEnv("AUTH_RATE_LIMIT", 5),
			AuthRateWindow:  GetDurationEnv("AUTH_RATE_WINDOW", time.Minute),
			ShutdownTimeout: GetDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "emi_verify"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 20),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:   GetBoolEnv("REDIS_ENABLED", true),
			Host:      GetEnv("REDIS_HOST", "localhost"),
			Port:      GetEnv("REDIS_PORT", "6379"),
			Password:  GetEnv("REDIS_PASSWORD", ""),
			DB:        GetIntEnv("REDIS_DB", 0),
			ReportTTL: GetDurationEnv("REPORT_CACHE_TTL", 5*time.Minute),
			UserTTL:   GetDurationEnv("USER_CACHE_TTL", 15*time.Minute),
		},
		JWT: JWTConfig{
			AccessSecret:  GetEnv("JWT_SECRET", "emi-verify-dev-secret"),
			RefreshSecret: GetEnv("JWT_REFRESH_SECRET", "emi-verify-dev-refresh-secret"),
			Issuer:        GetEnv("JWT_ISSUER", "emi-verify-api"),
			AccessTTL:     GetDurationEnv("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTTL:    GetDurationEnv("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		Mail: MailConfig{
			Host:        GetEnv("SMTP_HOST", ""),
			Port:        GetIntEnv("SMTP_PORT", 587),
			Username:    GetEnv("SMTP_USER", ""),
			Password:    GetEnv("SMTP_PASS", ""),
			From:        GetEnv("SMTP_FROM", "EMI Verify <no-reply@emiverify.local>"),
			FrontendURL: strings.TrimRight(GetEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		},
		Export: ExportConfig{
			TempDir: GetEnv("EXPORT_TMP_DIR", os.TempDir()),
		},
		Log: LogConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "text"),
		},
	}
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable (e.g. "15m") or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
