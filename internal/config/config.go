// =============================================================================
// Asientos XML - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Values are resolved in
// this order, later sources winning:
//   1. Built-in defaults (see applyDefaults)
//   2. config.yaml, or the file given with --config
//   3. A .env file in the working directory
//   4. Environment variables prefixed with ASIENTOS_, e.g.
//      ASIENTOS_DATABASE_DSN=./other.db
//
// A missing config.yaml is not an error; a missing file named explicitly is.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "ASIENTOS"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the whole application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Files    FilesConfig    `mapstructure:"files" yaml:"files"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// DatabaseConfig selects the datastore and names its two collections.
type DatabaseConfig struct {
	// Driver is one of "sqlite", "postgres" or "memory".
	// Default: "sqlite"
	Driver string `mapstructure:"driver" yaml:"driver"`

	// DSN is the SQLite file path or the PostgreSQL connection URL.
	// Default: "./data/unapec.db"
	DSN string `mapstructure:"dsn" yaml:"dsn"`

	// LedgerTable is the collection read by the export.
	// Default: "asientos"
	LedgerTable string `mapstructure:"ledger_table" yaml:"ledger_table"`

	// StagingTable is the collection written by the import.
	// Default: "asientos_input"
	StagingTable string `mapstructure:"staging_table" yaml:"staging_table"`

	// LogMode enables SQL statement logging for the sqlite driver.
	LogMode bool `mapstructure:"log_mode" yaml:"log_mode"`
}

// FilesConfig holds the paths of the files the application writes or reads.
type FilesConfig struct {
	// XMLPath is the interchange file written by export and read by import.
	// Default: "asientos.xml"
	XMLPath string `mapstructure:"xml_path" yaml:"xml_path"`

	// XLSXReport, when set, makes export also write a workbook copy.
	XLSXReport string `mapstructure:"xlsx_report" yaml:"xlsx_report"`

	// ErrorLogDir, when set, receives a text log for every failed import.
	ErrorLogDir string `mapstructure:"error_log_dir" yaml:"error_log_dir"`
}

// LogConfig controls application logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `mapstructure:"level" yaml:"level"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration. An empty path searches for config.yaml in the
// working directory.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	applyDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &c, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			DSN:          "./data/unapec.db",
			LedgerTable:  "asientos",
			StagingTable: "asientos_input",
		},
		Files: FilesConfig{
			XMLPath: "asientos.xml",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// applyDefaults registers every key so that environment overrides are seen
// by Unmarshal even when no config file exists.
func applyDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.ledger_table", d.Database.LedgerTable)
	v.SetDefault("database.staging_table", d.Database.StagingTable)
	v.SetDefault("database.log_mode", d.Database.LogMode)
	v.SetDefault("files.xml_path", d.Files.XMLPath)
	v.SetDefault("files.xlsx_report", d.Files.XLSXReport)
	v.SetDefault("files.error_log_dir", d.Files.ErrorLogDir)
	v.SetDefault("log.level", d.Log.Level)
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("database.driver %q is not one of %s, %s, %s",
			c.Database.Driver, DriverSQLite, DriverPostgres, DriverMemory)
	}

	if c.Database.Driver != DriverMemory && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for driver %q", c.Database.Driver)
	}

	if c.Database.LedgerTable == "" || c.Database.StagingTable == "" {
		return fmt.Errorf("database.ledger_table and database.staging_table are required")
	}
	if c.Database.LedgerTable == c.Database.StagingTable {
		return fmt.Errorf("database.ledger_table and database.staging_table must differ (both %q)", c.Database.LedgerTable)
	}

	if c.Files.XMLPath == "" {
		return fmt.Errorf("files.xml_path is required")
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}
