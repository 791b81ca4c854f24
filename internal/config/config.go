package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for the portal
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Boundary    BoundaryConfig    `toml:"boundary"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Validation  ValidationConfig  `toml:"validation"`
	Display     DisplayConfig     `toml:"display"`
	Logging     LoggingConfig     `toml:"logging"`
	Application ApplicationConfig `toml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" env:"PORTAL_DB_DIR"`
	Filename       string        `toml:"filename" env:"PORTAL_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"PORTAL_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"PORTAL_DB_DIR_PERMISSIONS"`
}

// BoundaryConfig holds settings for calls that leave the process
type BoundaryConfig struct {
	Timeout        time.Duration `toml:"timeout" env:"PORTAL_BOUNDARY_TIMEOUT"`
	UploadDir      string        `toml:"upload_dir" env:"PORTAL_UPLOAD_DIR"`
	MaxUploadBytes int64         `toml:"max_upload_bytes" env:"PORTAL_UPLOAD_MAX_BYTES"`
}

// MetricsConfig holds derived-metrics configuration
type MetricsConfig struct {
	DeadlineWindowDays int `toml:"deadline_window_days" env:"PORTAL_DEADLINE_WINDOW_DAYS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength    int `toml:"title_max_length" env:"PORTAL_VALIDATION_TITLE_MAX"`
	PasswordMinLength int `toml:"password_min_length" env:"PORTAL_VALIDATION_PASSWORD_MIN"`
}

// DisplayConfig holds terminal output configuration
type DisplayConfig struct {
	NoColor bool `toml:"no_color" env:"PORTAL_NO_COLOR"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level    string `toml:"level" env:"PORTAL_LOG_LEVEL"`
	Encoding string `toml:"encoding" env:"PORTAL_LOG_ENCODING"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"PORTAL_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"PORTAL_APP_VERBOSE"`
}

// DefaultDir returns ~/.portal, the home of the database, uploads and config file
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".portal")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	baseDir := DefaultDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            baseDir,
			Filename:       "portal.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Boundary: BoundaryConfig{
			Timeout:        10 * time.Second,
			UploadDir:      filepath.Join(baseDir, "uploads"),
			MaxUploadBytes: 5 * 1024 * 1024,
		},
		Metrics: MetricsConfig{
			DeadlineWindowDays: 7,
		},
		Validation: ValidationConfig{
			TitleMaxLength:    255,
			PasswordMinLength: 6,
		},
		Display: DisplayConfig{
			NoColor: false,
		},
		Logging: LoggingConfig{
			Level:    "warn",
			Encoding: "console",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetBoundaryTimeout returns the bound applied to every boundary call
func (c *Config) GetBoundaryTimeout() time.Duration {
	return c.Boundary.Timeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("PORTAL_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("PORTAL_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("PORTAL_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("PORTAL_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Boundary configuration
	if timeout := os.Getenv("PORTAL_BOUNDARY_TIMEOUT"); timeout != "" {
		c.Boundary.Timeout = ParseDurationWithFallback(timeout, c.Boundary.Timeout)
	}
	if dir := os.Getenv("PORTAL_UPLOAD_DIR"); dir != "" {
		c.Boundary.UploadDir = dir
	}
	if size := os.Getenv("PORTAL_UPLOAD_MAX_BYTES"); size != "" {
		c.Boundary.MaxUploadBytes = int64(ParseIntWithFallback(size, int(c.Boundary.MaxUploadBytes)))
	}

	// Metrics configuration
	if days := os.Getenv("PORTAL_DEADLINE_WINDOW_DAYS"); days != "" {
		c.Metrics.DeadlineWindowDays = ParseIntWithFallback(days, c.Metrics.DeadlineWindowDays)
	}

	// Validation configuration
	if maxLen := os.Getenv("PORTAL_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if minLen := os.Getenv("PORTAL_VALIDATION_PASSWORD_MIN"); minLen != "" {
		c.Validation.PasswordMinLength = ParseIntWithFallback(minLen, c.Validation.PasswordMinLength)
	}

	// Display configuration
	if noColor := os.Getenv("PORTAL_NO_COLOR"); noColor != "" {
		c.Display.NoColor = ParseBoolWithFallback(noColor, c.Display.NoColor)
	}

	// Logging configuration
	if level := os.Getenv("PORTAL_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if encoding := os.Getenv("PORTAL_LOG_ENCODING"); encoding != "" {
		c.Logging.Encoding = encoding
	}

	// Application configuration
	if timeout := os.Getenv("PORTAL_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("PORTAL_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate boundary configuration
	if c.Boundary.Timeout <= 0 {
		return &ConfigError{Field: "boundary.timeout", Message: "boundary timeout must be positive"}
	}
	if c.Boundary.UploadDir == "" {
		return &ConfigError{Field: "boundary.upload_dir", Message: "upload directory cannot be empty"}
	}
	if c.Boundary.MaxUploadBytes <= 0 {
		return &ConfigError{Field: "boundary.max_upload_bytes", Message: "max upload size must be positive"}
	}

	// Validate metrics configuration
	if c.Metrics.DeadlineWindowDays < 0 {
		return &ConfigError{Field: "metrics.deadline_window_days", Message: "deadline window cannot be negative"}
	}

	// Validate validation configuration
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.PasswordMinLength < 1 {
		return &ConfigError{Field: "validation.password_min_length", Message: "password minimum length must be at least 1"}
	}

	// Validate logging configuration
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return &ConfigError{Field: "logging.encoding", Message: "encoding must be json or console"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
