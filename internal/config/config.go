package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Session/auth configuration
	Auth AuthConfig

	// Redis backs session revocation when configured
	Redis RedisConfig

	// Outbound mail
	SMTP SMTPConfig

	// Article image uploads
	Upload UploadConfig

	// Generated OpenAPI artifact
	Docs DocsConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	BaseURL         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AuthConfig holds session token settings
type AuthConfig struct {
	Secret       string
	SessionTTL   time.Duration
	CookieName   string
	CookieSecure bool
	Issuer       string
}

// RedisConfig holds the optional redis connection. Empty Addr means in-memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SMTPConfig holds mail transport settings. Empty Host disables delivery.
type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	AdminNotify string
	Timeout     time.Duration
}

// UploadConfig holds image upload settings
type UploadConfig struct {
	Dir       string
	MaxSize   int64 // in bytes
	PublicURL string
}

// DocsConfig points at the OpenAPI artifact produced by `cms docs generate`
type DocsConfig struct {
	Path string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

const minSecretLength = 32

// Load reads configuration from environment variables and, when CONFIG_FILE
// is set, from that file. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := fromViper(v)

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "blog_cms")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MAX_LIFETIME", 5*time.Minute)

	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("SESSION_COOKIE_NAME", "session_token")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("AUTH_ISSUER", "blog-cms-api")

	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_TIMEOUT", 10*time.Second)

	v.SetDefault("UPLOAD_DIR", "./data/uploads")
	v.SetDefault("UPLOAD_MAX_SIZE", 5*1024*1024) // 5MB
	v.SetDefault("UPLOAD_PUBLIC_URL", "/uploads")

	v.SetDefault("DOCS_PATH", "./docs/swagger.yaml")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			BaseURL:         strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:          v.GetString("DATABASE_URL"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxLifetime:  v.GetDuration("DB_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			Secret:       v.GetString("AUTH_SECRET"),
			SessionTTL:   v.GetDuration("SESSION_TTL"),
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
			Issuer:       v.GetString("AUTH_ISSUER"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		SMTP: SMTPConfig{
			Host:        v.GetString("SMTP_HOST"),
			Port:        v.GetInt("SMTP_PORT"),
			User:        v.GetString("SMTP_USER"),
			Password:    v.GetString("SMTP_PASSWORD"),
			From:        v.GetString("SMTP_FROM"),
			AdminNotify: v.GetString("ADMIN_NOTIFY_EMAIL"),
			Timeout:     v.GetDuration("SMTP_TIMEOUT"),
		},
		Upload: UploadConfig{
			Dir:       v.GetString("UPLOAD_DIR"),
			MaxSize:   v.GetInt64("UPLOAD_MAX_SIZE"),
			PublicURL: strings.TrimRight(v.GetString("UPLOAD_PUBLIC_URL"), "/"),
		},
		Docs: DocsConfig{
			Path: v.GetString("DOCS_PATH"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return errors.New("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return errors.New("DB_NAME is required")
		}
	}
	if len(c.Auth.Secret) < minSecretLength {
		return fmt.Errorf("AUTH_SECRET must be at least %d characters", minSecretLength)
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// MailEnabled reports whether an SMTP transport is configured
func (c *SMTPConfig) MailEnabled() bool {
	return c.Host != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
