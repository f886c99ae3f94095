package cli

import (
	"io"
	"os"
	"time"

	"todo-list/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	app    *App
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, out, errOut io.Writer) *RootCommand {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	root := &RootCommand{
		loader: loader,
		out:    out,
		errOut: errOut,
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A to-do list with subtasks, served over HTTP",
		Long: `todo manages a to-do list of tasks and subtasks.

"todo serve" runs the HTTP API backed by SQLite. Every other command is a
client of that API: it checks the server, retries the connection up to the
configured number of attempts and then applies the change.

EXAMPLES:
  todo serve                                 # Start the API on localhost:3000
  todo add "Buy milk" --category personal    # Create a task
  todo add "Report" --due 2025-07-10         # Create a task with a due date
  todo list --filter active --sort date      # Show open tasks, earliest due first
  todo complete 3                            # Toggle task 3
  todo sub add 3 "2% milk"                   # Add a subtask to task 3
  todo sub complete 3 7                      # Toggle subtask 7 of task 3
  todo db                                    # Show the database schema

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env file > todo.toml > defaults

    TODO_CONFIG                      Path of the TOML config file (default: ./todo.toml)
    TODO_DB_DIR                      Database directory (default: ~/.todo)
    TODO_DB_FILENAME                 Database filename (default: tarefas.db)
    TODO_SERVER_HOST / _PORT         Listen address (default: localhost:3000)
    TODO_SERVER_STATIC_DIR           Directory served at / (default: none)
    TODO_CLIENT_BASE_URL             API used by client commands (default: http://localhost:3000)
    TODO_CLIENT_MAX_RECONNECT_ATTEMPTS  Reconnect attempts (default: 3)
    TODO_CLIENT_RECONNECT_DELAY      Delay between attempts (default: 2s)
    TODO_DISPLAY_LOCALE              Locale for sorting text (default: pt-BR)
    TODO_LOG_LEVEL / TODO_LOG_FORMAT Logging (default: info, text)
    TODO_LOG_TIMESTAMP               Prefix log lines with a timestamp
    TODO_DEBUG                       Force debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loader.LoadWithOverrides(overridesFromFlags(cmd.Flags()))
			if err != nil {
				return err
			}
			root.app = NewApp(cfg, root.out, root.errOut)
			return nil
		},
	}
	root.cmd.SetOut(out)
	root.cmd.SetErr(errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// App returns the application built for the last run, or nil before one
func (r *RootCommand) App() *App {
	return r.app
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TODO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TODO_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TODO_DB_QUERY_TIMEOUT)")

	// Server configuration
	flags.String("host", "", "Listen host (overrides TODO_SERVER_HOST)")
	flags.Int("port", 0, "Listen port (overrides TODO_SERVER_PORT)")
	flags.String("static-dir", "", "Directory served at / (overrides TODO_SERVER_STATIC_DIR)")

	// Client configuration
	flags.String("base-url", "", "API base URL (overrides TODO_CLIENT_BASE_URL)")
	flags.Int("reconnect-attempts", 0, "Reconnect attempts (overrides TODO_CLIENT_MAX_RECONNECT_ATTEMPTS)")
	flags.Duration("reconnect-delay", 0, "Delay between reconnect attempts (overrides TODO_CLIENT_RECONNECT_DELAY)")
	flags.Duration("probe-interval", 0, "Background probe interval (overrides TODO_CLIENT_PROBE_INTERVAL)")

	// Validation configuration
	flags.Int("task-text-max", 0, "Maximum task text length (overrides TODO_VALIDATION_TASK_TEXT_MAX)")
	flags.Int("subtask-text-max", 0, "Maximum subtask text length (overrides TODO_VALIDATION_SUBTASK_TEXT_MAX)")

	// Display configuration
	flags.String("locale", "", "Locale used to sort text (overrides TODO_DISPLAY_LOCALE)")
	flags.Int("chart-width", 0, "Width of the completion chart (overrides TODO_DISPLAY_CHART_WIDTH)")

	// Logging configuration
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides TODO_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text, json, logfmt (overrides TODO_LOG_FORMAT)")
}

// overridesFromFlags collects the flags set on the command line. Only
// changed flags override, so an explicit zero still wins over the config.
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	o := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	num := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	o.DBDir = str("db-dir")
	o.DBFilename = str("db-filename")
	o.DBQueryTimeout = dur("db-query-timeout")
	o.ServerHost = str("host")
	o.ServerPort = num("port")
	o.StaticDir = str("static-dir")
	o.BaseURL = str("base-url")
	o.MaxReconnectAttempts = num("reconnect-attempts")
	o.ReconnectDelay = dur("reconnect-delay")
	o.ProbeInterval = dur("probe-interval")
	o.TaskTextMaxLength = num("task-text-max")
	o.SubtaskTextMaxLength = num("subtask-text-max")
	o.Locale = str("locale")
	o.ChartWidth = num("chart-width")
	o.LogLevel = str("log-level")
	o.LogFormat = str("log-format")

	return o
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.serveCommand(),
		r.statusCommand(),
		r.dbCommand(),
		r.listCommand(),
		r.addCommand(),
		r.completeCommand(),
		r.editCommand(),
		r.removeCommand(),
		r.subtaskCommand(),
	)
}
