// Package config loads journal settings from HEALTHJOURNAL_ environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "HEALTHJOURNAL"

const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

const (
	LogFormatAuto    = "auto"
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config holds the settings for one journal invocation.
// Example: HEALTHJOURNAL_DATA_DIR=/srv/journal HEALTHJOURNAL_STORAGE_DRIVER=sqlite
type Config struct {
	DataDir          string `envconfig:"DATA_DIR" default:"data"`
	MedicationsFile  string `envconfig:"MEDICATIONS_FILE" default:"medications.csv"`
	DailyRecordsFile string `envconfig:"DAILY_RECORDS_FILE" default:"daily_records.csv"`
	SQLiteFile       string `envconfig:"SQLITE_FILE" default:"healthjournal.db"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"csv"`
	Language      string `envconfig:"LANGUAGE" default:"en"`
	TimeZone      string `envconfig:"TZ" default:"Local"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"auto"`
}

// New creates a Config by parsing HEALTHJOURNAL_ environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewForTesting returns a CSV-backed config rooted at dataDir.
func NewForTesting(dataDir string) *Config {
	return &Config{
		DataDir:          dataDir,
		MedicationsFile:  "medications.csv",
		DailyRecordsFile: "daily_records.csv",
		SQLiteFile:       "healthjournal.db",
		StorageDriver:    DriverCSV,
		Language:         "en",
		TimeZone:         "UTC",
		LogLevel:         "warn",
		LogFormat:        LogFormatJSON,
	}
}

// ResolveDefaults normalizes casing and rejects unsupported drivers,
// log levels and log formats.
func (c *Config) ResolveDefaults() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	if c.StorageDriver == "" {
		c.StorageDriver = DriverCSV
	}
	switch c.StorageDriver {
	case DriverCSV, DriverSQLite:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", c.StorageDriver)
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = LogFormatAuto
	}
	switch c.LogFormat {
	case LogFormatAuto, LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("unsupported LOG_FORMAT: %s", c.LogFormat)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL: %s", c.LogLevel)
	}

	c.DataDir = fallback(c.DataDir, "data")
	c.MedicationsFile = fallback(c.MedicationsFile, "medications.csv")
	c.DailyRecordsFile = fallback(c.DailyRecordsFile, "daily_records.csv")
	c.SQLiteFile = fallback(c.SQLiteFile, "healthjournal.db")
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	return nil
}

func (c *Config) MedicationsPath() string {
	return c.resolvePath(c.MedicationsFile)
}

func (c *Config) DailyRecordsPath() string {
	return c.resolvePath(c.DailyRecordsFile)
}

func (c *Config) SQLitePath() string {
	return c.resolvePath(c.SQLiteFile)
}

// Location falls back to UTC when TZ does not name a known zone.
func (c *Config) Location() *time.Location {
	name := strings.TrimSpace(c.TimeZone)
	if name == "" || name == "Local" {
		return time.Local
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

// Today is the current calendar date in the configured zone.
func (c *Config) Today() civil.Date {
	return civil.DateOf(time.Now().In(c.Location()))
}

// resolvePath keeps absolute file settings and places relative ones under DataDir.
func (c *Config) resolvePath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.DataDir, file)
}

func fallback(value string, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
