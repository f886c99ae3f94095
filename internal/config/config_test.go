package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "tarefas.db", cfg.Database.Filename)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Client.MaxReconnectAttempts)
	assert.Equal(t, 2*time.Second, cfg.Client.ReconnectDelay)
	assert.Equal(t, 30*time.Second, cfg.Client.ProbeInterval)
	assert.Equal(t, 500, cfg.Validation.TaskTextMaxLength)
	assert.Equal(t, 300, cfg.Validation.SubtaskTextMaxLength)
	assert.Equal(t, "pt-BR", cfg.Display.Locale)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Paths(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = "/data"
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080

	assert.Equal(t, "/data/tarefas.db", cfg.GetDatabasePath())
	assert.Equal(t, "0.0.0.0:8080", cfg.GetListenAddress())
	assert.Equal(t, 10*time.Second, cfg.GetQueryTimeout())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("TODO_DB_DIR", "/tmp/todo")
	t.Setenv("TODO_SERVER_PORT", "4000")
	t.Setenv("TODO_CLIENT_BASE_URL", "http://example.test:4000/")
	t.Setenv("TODO_CLIENT_RECONNECT_DELAY", "500ms")
	t.Setenv("TODO_CLIENT_MAX_RECONNECT_ATTEMPTS", "not-a-number")
	t.Setenv("TODO_VALIDATION_TASK_TEXT_MAX", "120")
	t.Setenv("TODO_DISPLAY_LOCALE", "en-US")
	t.Setenv("TODO_LOG_FORMAT", "json")
	t.Setenv("TODO_LOG_TIMESTAMP", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/todo", cfg.Database.Dir)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "http://example.test:4000", cfg.Client.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Client.ReconnectDelay)
	assert.Equal(t, 3, cfg.Client.MaxReconnectAttempts, "unparsable values keep the previous setting")
	assert.Equal(t, 120, cfg.Validation.TaskTextMaxLength)
	assert.Equal(t, "en-US", cfg.Display.Locale)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Timestamp)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty database dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"empty filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"no reconnect attempts", func(c *Config) { c.Client.MaxReconnectAttempts = 0 }, "client.max_reconnect_attempts"},
		{"negative reconnect delay", func(c *Config) { c.Client.ReconnectDelay = -time.Second }, "client.reconnect_delay"},
		{"zero probe interval", func(c *Config) { c.Client.ProbeInterval = 0 }, "client.probe_interval"},
		{"zero task text max", func(c *Config) { c.Validation.TaskTextMaxLength = 0 }, "validation.task_text_max_length"},
		{"narrow chart", func(c *Config) { c.Display.ChartWidth = 5 }, "display.chart_width"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			configErr, ok := err.(*ConfigError)
			require.True(t, ok)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "server.port", Message: "bad"}
	assert.Equal(t, "server.port: bad", err.Error())
}
