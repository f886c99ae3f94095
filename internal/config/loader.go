package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"todo-list/internal/logging"
)

const (
	// DefaultConfigFile is read from the working directory when TODO_CONFIG is unset
	DefaultConfigFile = "todo.toml"
	// DefaultEnvFile is loaded into the process environment when present
	DefaultEnvFile = ".env"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	envFile    string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: DefaultEnvFile,
	}
}

// WithConfigFile sets an explicit TOML file; a missing explicit file is an error
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvFile sets the dotenv file to read; empty disables it
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file
// 3. Load the .env file into the environment (existing variables win)
// 4. Override with environment variables
// 5. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Config file
	if err := l.loadConfigFile(); err != nil {
		return nil, err
	}

	// Step 3: .env file
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", l.envFile, err)
		}
	}

	// Step 4: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 5: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}
	logging.Debugln("database:", l.config.GetDatabasePath(), "api:", l.config.Client.BaseURL)

	return l.config, nil
}

// loadConfigFile decodes the TOML file over the defaults. The default file
// is optional; an explicitly named one must exist.
func (l *Loader) loadConfigFile() error {
	path := l.configFile
	explicit := path != ""
	if !explicit {
		if env := os.Getenv("TODO_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = DefaultConfigFile
		}
	}

	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, l.config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	logging.Debugf("loaded config file %s\n", path)
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	// Load base configuration
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Apply command line overrides
	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	// Server overrides
	ServerHost *string
	ServerPort *int
	StaticDir  *string

	// Client overrides
	BaseURL              *string
	MaxReconnectAttempts *int
	ReconnectDelay       *time.Duration
	ProbeInterval        *time.Duration

	// Validation overrides
	TaskTextMaxLength    *int
	SubtaskTextMaxLength *int

	// Display overrides
	Locale     *string
	ChartWidth *int

	// Logging overrides
	LogLevel  *string
	LogFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}

	// Server overrides
	if overrides.ServerHost != nil {
		config.Server.Host = *overrides.ServerHost
	}
	if overrides.ServerPort != nil {
		config.Server.Port = *overrides.ServerPort
	}
	if overrides.StaticDir != nil {
		config.Server.StaticDir = *overrides.StaticDir
	}

	// Client overrides
	if overrides.BaseURL != nil {
		config.Client.BaseURL = *overrides.BaseURL
	}
	if overrides.MaxReconnectAttempts != nil {
		config.Client.MaxReconnectAttempts = *overrides.MaxReconnectAttempts
	}
	if overrides.ReconnectDelay != nil {
		config.Client.ReconnectDelay = *overrides.ReconnectDelay
	}
	if overrides.ProbeInterval != nil {
		config.Client.ProbeInterval = *overrides.ProbeInterval
	}

	// Validation overrides
	if overrides.TaskTextMaxLength != nil {
		config.Validation.TaskTextMaxLength = *overrides.TaskTextMaxLength
	}
	if overrides.SubtaskTextMaxLength != nil {
		config.Validation.SubtaskTextMaxLength = *overrides.SubtaskTextMaxLength
	}

	// Display overrides
	if overrides.Locale != nil {
		config.Display.Locale = *overrides.Locale
	}
	if overrides.ChartWidth != nil {
		config.Display.ChartWidth = *overrides.ChartWidth
	}

	// Logging overrides
	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Logging.Format = *overrides.LogFormat
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
