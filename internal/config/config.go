package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Catalog   CatalogConfig
	Telemetry TelemetryConfig
	Sheets    SheetsConfig
	MongoDB   MongoDBConfig
	Schedule  ScheduleConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port               string
	StaticDir          string
	CORSAllowedOrigins []string
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string
}

// CatalogConfig points at an ingredient/standards directory overriding the
// bundled data.
type CatalogConfig struct {
	Dir string
}

// TelemetryConfig controls the best-effort calculation log.
type TelemetryConfig struct {
	Endpoint  string
	Timeout   time.Duration
	QueueSize int
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the Sheets sink should be wired.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// MongoDBConfig holds settings for the MongoDB calculation archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether the MongoDB sink should be wired.
func (c MongoDBConfig) Enabled() bool {
	return c.URI != ""
}

// ScheduleConfig holds cron expressions for background jobs.
type ScheduleConfig struct {
	CatalogReload string
	UsageReport   string
	Timezone      string
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
		// Missing .env files are fine when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	timeout, err := getenvDuration("TELEMETRY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	queueSize, err := getenvInt("TELEMETRY_QUEUE_SIZE", 64)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getenvWithDefault("APP_PORT", "8080"),
			StaticDir:          os.Getenv("STATIC_DIR"),
			CORSAllowedOrigins: splitList(getenvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			Dir: os.Getenv("CATALOG_DIR"),
		},
		Telemetry: TelemetryConfig{
			Endpoint:  os.Getenv("TELEMETRY_ENDPOINT"),
			Timeout:   timeout,
			QueueSize: queueSize,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "inumeshi"),
		},
		Schedule: ScheduleConfig{
			CatalogReload: getenvWithDefault("CATALOG_RELOAD_SCHEDULE", "0 * * * *"),
			UsageReport:   getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * 5"),
			Timezone:      getenvWithDefault("TIMEZONE", "Asia/Tokyo"),
		},
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
		return errors.New("APP_PORT must be provided")
	}

	if c.Telemetry.Timeout <= 0 {
		return errors.New("TELEMETRY_TIMEOUT must be positive")
	}
	if c.Telemetry.QueueSize <= 0 {
		return errors.New("TELEMETRY_QUEUE_SIZE must be positive")
	}

	switch {
	case c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "":
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided with GOOGLE_SHEETS_CREDENTIALS_PATH")
	case c.Sheets.CredentialsPath == "" && c.Sheets.SpreadsheetID != "":
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided with GOOGLE_SHEET_DATABASE_ID")
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if c.Schedule.CatalogReload == "" {
		return errors.New("CATALOG_RELOAD_SCHEDULE must be provided")
	}
	if c.Schedule.UsageReport == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Schedule.Timezone, err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
