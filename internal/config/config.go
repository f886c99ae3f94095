package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the to-do application
type Config struct {
	Database   DatabaseConfig   `toml:"database"`
	Server     ServerConfig     `toml:"server"`
	Client     ClientConfig     `toml:"client"`
	Validation ValidationConfig `toml:"validation"`
	Display    DisplayConfig    `toml:"display"`
	Logging    LoggingConfig    `toml:"logging"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" env:"TODO_DB_DIR"`
	Filename       string        `toml:"filename" env:"TODO_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"TODO_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"TODO_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP API server configuration
type ServerConfig struct {
	Host         string        `toml:"host" env:"TODO_SERVER_HOST"`
	Port         int           `toml:"port" env:"TODO_SERVER_PORT"`
	StaticDir    string        `toml:"static_dir" env:"TODO_SERVER_STATIC_DIR"`
	ReadTimeout  time.Duration `toml:"read_timeout" env:"TODO_SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" env:"TODO_SERVER_WRITE_TIMEOUT"`
}

// ClientConfig holds API client and reconnect configuration
type ClientConfig struct {
	BaseURL              string        `toml:"base_url" env:"TODO_CLIENT_BASE_URL"`
	MaxReconnectAttempts int           `toml:"max_reconnect_attempts" env:"TODO_CLIENT_MAX_RECONNECT_ATTEMPTS"`
	ReconnectDelay       time.Duration `toml:"reconnect_delay" env:"TODO_CLIENT_RECONNECT_DELAY"`
	ProbeInterval        time.Duration `toml:"probe_interval" env:"TODO_CLIENT_PROBE_INTERVAL"`
	RequestTimeout       time.Duration `toml:"request_timeout" env:"TODO_CLIENT_REQUEST_TIMEOUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskTextMaxLength    int `toml:"task_text_max_length" env:"TODO_VALIDATION_TASK_TEXT_MAX"`
	SubtaskTextMaxLength int `toml:"subtask_text_max_length" env:"TODO_VALIDATION_SUBTASK_TEXT_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Locale     string `toml:"locale" env:"TODO_DISPLAY_LOCALE"`
	ChartWidth int    `toml:"chart_width" env:"TODO_DISPLAY_CHART_WIDTH"`
	DateFormat string `toml:"date_format" env:"TODO_DISPLAY_DATE_FORMAT"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `toml:"level" env:"TODO_LOG_LEVEL"`
	Format    string `toml:"format" env:"TODO_LOG_FORMAT"`
	Timestamp bool   `toml:"timestamp" env:"TODO_LOG_TIMESTAMP"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".todo")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tarefas.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Host:         "localhost",
			Port:         3000,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Client: ClientConfig{
			BaseURL:              "http://localhost:3000",
			MaxReconnectAttempts: 3,
			ReconnectDelay:       2 * time.Second,
			ProbeInterval:        30 * time.Second,
			RequestTimeout:       10 * time.Second,
		},
		Validation: ValidationConfig{
			TaskTextMaxLength:    500,
			SubtaskTextMaxLength: 300,
		},
		Display: DisplayConfig{
			Locale:     "pt-BR",
			ChartWidth: 40,
			DateFormat: "02/01/2006",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetListenAddress returns the host:port the API server binds to
func (c *Config) GetListenAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TODO_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TODO_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TODO_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("TODO_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Server configuration
	if host := os.Getenv("TODO_SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("TODO_SERVER_PORT"); port != "" {
		c.Server.Port = ParseIntWithFallback(port, c.Server.Port)
	}
	if dir := os.Getenv("TODO_SERVER_STATIC_DIR"); dir != "" {
		c.Server.StaticDir = dir
	}
	if timeout := os.Getenv("TODO_SERVER_READ_TIMEOUT"); timeout != "" {
		c.Server.ReadTimeout = ParseDurationWithFallback(timeout, c.Server.ReadTimeout)
	}
	if timeout := os.Getenv("TODO_SERVER_WRITE_TIMEOUT"); timeout != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(timeout, c.Server.WriteTimeout)
	}

	// Client configuration
	if baseURL := os.Getenv("TODO_CLIENT_BASE_URL"); baseURL != "" {
		c.Client.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if attempts := os.Getenv("TODO_CLIENT_MAX_RECONNECT_ATTEMPTS"); attempts != "" {
		c.Client.MaxReconnectAttempts = ParseIntWithFallback(attempts, c.Client.MaxReconnectAttempts)
	}
	if delay := os.Getenv("TODO_CLIENT_RECONNECT_DELAY"); delay != "" {
		c.Client.ReconnectDelay = ParseDurationWithFallback(delay, c.Client.ReconnectDelay)
	}
	if interval := os.Getenv("TODO_CLIENT_PROBE_INTERVAL"); interval != "" {
		c.Client.ProbeInterval = ParseDurationWithFallback(interval, c.Client.ProbeInterval)
	}
	if timeout := os.Getenv("TODO_CLIENT_REQUEST_TIMEOUT"); timeout != "" {
		c.Client.RequestTimeout = ParseDurationWithFallback(timeout, c.Client.RequestTimeout)
	}

	// Validation configuration
	if maxLen := os.Getenv("TODO_VALIDATION_TASK_TEXT_MAX"); maxLen != "" {
		c.Validation.TaskTextMaxLength = ParseIntWithFallback(maxLen, c.Validation.TaskTextMaxLength)
	}
	if maxLen := os.Getenv("TODO_VALIDATION_SUBTASK_TEXT_MAX"); maxLen != "" {
		c.Validation.SubtaskTextMaxLength = ParseIntWithFallback(maxLen, c.Validation.SubtaskTextMaxLength)
	}

	// Display configuration
	if locale := os.Getenv("TODO_DISPLAY_LOCALE"); locale != "" {
		c.Display.Locale = locale
	}
	if width := os.Getenv("TODO_DISPLAY_CHART_WIDTH"); width != "" {
		c.Display.ChartWidth = ParseIntWithFallback(width, c.Display.ChartWidth)
	}
	if format := os.Getenv("TODO_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}

	// Logging configuration
	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("TODO_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if ts := os.Getenv("TODO_LOG_TIMESTAMP"); ts != "" {
		c.Logging.Timestamp = ParseBoolWithFallback(ts, c.Logging.Timestamp)
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

	// Validate server configuration
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 0 and 65535"}
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.timeouts", Message: "server timeouts must be positive"}
	}

	// Validate client configuration
	if c.Client.BaseURL == "" {
		return &ConfigError{Field: "client.base_url", Message: "base URL cannot be empty"}
	}
	if c.Client.MaxReconnectAttempts < 1 {
		return &ConfigError{Field: "client.max_reconnect_attempts", Message: "at least one reconnect attempt is required"}
	}
	if c.Client.ReconnectDelay < 0 {
		return &ConfigError{Field: "client.reconnect_delay", Message: "reconnect delay cannot be negative"}
	}
	if c.Client.ProbeInterval <= 0 {
		return &ConfigError{Field: "client.probe_interval", Message: "probe interval must be positive"}
	}
	if c.Client.RequestTimeout <= 0 {
		return &ConfigError{Field: "client.request_timeout", Message: "request timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.TaskTextMaxLength < 1 {
		return &ConfigError{Field: "validation.task_text_max_length", Message: "task text maximum length must be at least 1"}
	}
	if c.Validation.SubtaskTextMaxLength < 1 {
		return &ConfigError{Field: "validation.subtask_text_max_length", Message: "subtask text maximum length must be at least 1"}
	}

	// Validate display configuration
	if c.Display.Locale == "" {
		return &ConfigError{Field: "display.locale", Message: "locale cannot be empty"}
	}
	if c.Display.ChartWidth < 10 {
		return &ConfigError{Field: "display.chart_width", Message: "chart width must be at least 10"}
	}
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}

	// Validate logging configuration
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "level must be one of debug, info, warn, error"}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json", "logfmt":
	default:
		return &ConfigError{Field: "logging.format", Message: "format must be one of text, json, logfmt"}
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
