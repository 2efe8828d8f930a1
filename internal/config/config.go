package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Supabase SupabaseConfig
	MongoDB  MongoDBConfig
	Sheets   SheetsConfig
	Jobs     JobsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// SupabaseConfig contains credentials for the hosted database's REST API.
type SupabaseConfig struct {
	URL     string
	AnonKey string
	// Timeout bounds a single load before the stores fall back to demo data.
	Timeout time.Duration
}

// MongoDBConfig holds settings for the analytics snapshot archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration for the optional meal-log export.
// Both fields empty means the feature is disabled.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the Sheets export feature is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// JobsConfig holds scheduler-related settings.
type JobsConfig struct {
	SnapshotCron string
	RefreshCron  string
	Timezone     string
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
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeout, err := parseDurationEnv("SUPABASE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Supabase: SupabaseConfig{
			URL:     os.Getenv("SUPABASE_URL"),
			AnonKey: os.Getenv("SUPABASE_ANON_KEY"),
			Timeout: timeout,
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "nourishnote"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		},
		Jobs: JobsConfig{
			SnapshotCron: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 21 * * 0"),
			RefreshCron:  getenvWithDefault("REFRESH_CRON_SCHEDULE", "*/15 * * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
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

	switch {
	case c.Supabase.URL == "":
		return errors.New("SUPABASE_URL must be provided")
	case c.Supabase.AnonKey == "":
		return errors.New("SUPABASE_ANON_KEY must be provided")
	case c.Supabase.Timeout <= 0:
		return errors.New("SUPABASE_TIMEOUT must be positive")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must not be empty")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	// Sheets export is optional but half a configuration is a mistake.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("SHEETS_CREDENTIALS_PATH and SHEETS_SPREADSHEET_ID must be set together")
	}

	if c.Jobs.SnapshotCron == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}
	if c.Jobs.RefreshCron == "" {
		return errors.New("REFRESH_CRON_SCHEDULE must be provided")
	}
	if c.Jobs.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
