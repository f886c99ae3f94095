package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"todo-list/internal/client"
	"todo-list/internal/config"
	"todo-list/internal/logging"
	"todo-list/internal/repository/sqlite"

	"github.com/charmbracelet/log"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds what the commands of one run share
type App struct {
	config   *config.Config
	logger   *log.Logger
	renderer *Renderer
	errors   *ErrorHandler
	clock    client.Clock
	out      io.Writer
	errOut   io.Writer
}

// NewApp creates the application for a loaded configuration
func NewApp(cfg *config.Config, out, errOut io.Writer) *App {
	return &App{
		config: cfg,
		logger: logging.New(errOut, logging.Options{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			Prefix:    "todo",
			Timestamp: cfg.Logging.Timestamp,
		}),
		renderer: NewRenderer(out, cfg.Display.ChartWidth, cfg.Display.DateFormat),
		errors:   NewErrorHandler(),
		clock:    client.RealClock(),
		out:      out,
		errOut:   errOut,
	}
}

// Config returns the configuration of this run
func (a *App) Config() *config.Config {
	return a.config
}

// openRepository opens the configured SQLite database
func (a *App) openRepository() (sqlite.Repository, error) {
	return config.CreateRepository(a.config)
}

// notifier prints failed client actions on the error stream
func (a *App) notifier() client.Notifier {
	errRenderer := NewRenderer(a.errOut, a.config.Display.ChartWidth, a.config.Display.DateFormat)
	return client.NotifierFunc(func(err error) {
		errRenderer.RenderError(a.errors.Message(err))
	})
}

// startController connects to the API and loads the task list. Failures
// have already been shown to the user when it returns.
func (a *App) startController(ctx context.Context) (*client.SyncController, error) {
	api := client.NewAPIClientFromConfig(a.config)
	ctrl := client.NewSyncController(api, a.config, a.clock, a.notifier(), a.logger)
	if err := ctrl.Start(ctx); err != nil {
		return nil, reported(err)
	}
	return ctrl, nil
}

// parseID parses a numeric id argument
func parseID(name, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %q", name, arg)
	}
	return id, nil
}
