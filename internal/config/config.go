package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Session   SessionConfig
	Reporting ReportingConfig
	SMS       SMSConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	Seed      SeedConfig
	LogLevel  string
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	AppName     string
	CORSOrigins string
}

// DatabaseConfig holds either a full DSN in URL or the discrete connection parts.
type DatabaseConfig struct {
	URL      string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	TimeZone string
}

// DSN returns URL when set, otherwise a key/value DSN built from the parts.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.TimeZone)
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// SessionConfig controls server-side inactivity logout.
type SessionConfig struct {
	IdleTimeout time.Duration
}

// ReportingConfig holds scheduler and report window settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// Location resolves Timezone, falling back to UTC.
func (r ReportingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SMSConfig configures the outbound SMS gateway. Empty values disable SMS.
type SMSConfig struct {
	APIURL string
	APIKey string
}

func (s SMSConfig) Enabled() bool { return s.APIURL != "" && s.APIKey != "" }

// MongoDBConfig configures the report archive. An empty URI disables it.
type MongoDBConfig struct {
	URI    string
	DBName string
}

func (m MongoDBConfig) Enabled() bool { return m.URI != "" }

// SheetsConfig configures the report export. Empty values disable it.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

func (s SheetsConfig) Enabled() bool { return s.CredentialsPath != "" && s.SpreadsheetID != "" }

// SeedConfig is the admin account created on first start.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env is fine when the environment is set directly.
		_ = godotenv.Load()
	}

	jwtTTL, err := durationFromEnv("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	idle, err := durationFromEnv("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("PORT", "3000"),
			AppName:     getenvWithDefault("APP_NAME", "Back-Office API"),
			CORSOrigins: getenvWithDefault("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getenvWithDefault("DB_HOST", "localhost"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getenvWithDefault("DB_PORT", "5432"),
			TimeZone: getenvWithDefault("DB_TIMEZONE", "UTC"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    jwtTTL,
			Issuer: getenvWithDefault("JWT_ISSUER", "go-backoffice"),
		},
		Session: SessionConfig{
			IdleTimeout: idle,
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Accra"),
		},
		SMS: SMSConfig{
			APIURL: os.Getenv("SMS_API_URL"),
			APIKey: os.Getenv("SMS_API_KEY"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "backoffice"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "DailyReports!A:H"),
		},
		Seed: SeedConfig{
			AdminEmail:    getenvWithDefault("ADMIN_EMAIL", "admin@example.com"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}

	if c.Database.URL == "" && (c.Database.User == "" || c.Database.Name == "") {
		return errors.New("DATABASE_URL or DB_USER and DB_NAME must be provided")
	}

	if len(c.JWT.Secret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.Session.IdleTimeout <= 0 {
		return errors.New("SESSION_IDLE_TIMEOUT must be positive")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}

	if (c.SMS.APIURL == "") != (c.SMS.APIKey == "") {
		return errors.New("SMS_API_URL and SMS_API_KEY must be set together")
	}
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_ID must be set together")
	}

	return nil
}

// AllowedOrigins returns CORSOrigins normalized for the fiber cors middleware.
func (s ServerConfig) AllowedOrigins() string {
	parts := strings.Split(s.CORSOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// durationFromEnv accepts Go durations ("30m") or a plain number of minutes.
func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	if minutes, err := strconv.Atoi(raw); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
