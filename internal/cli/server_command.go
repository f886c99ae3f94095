package cli

import (
	"context"
	"fmt"
	"time"

	"todo-list/internal/api"
	"todo-list/internal/client"
	"todo-list/internal/services"

	"github.com/spf13/cobra"
)

// ServeCommand runs the HTTP API until its context is cancelled
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute opens the database and serves the API
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	cfg := c.app.config
	repo, err := c.app.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	logger := c.app.logger
	container := services.NewServiceContainer(repo, cfg, logger, timeNow)
	handler := api.NewHandler(container, nil, logger, timeNow)

	logger.Info("database ready", "path", cfg.GetDatabasePath())
	return api.NewServer(cfg, handler, logger).Run(ctx)
}

// StatusCommand probes the API
type StatusCommand struct {
	app *App
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app}
}

// Execute reports whether the server answers its status endpoint
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	apiClient := client.NewAPIClientFromConfig(c.app.config)
	status, err := apiClient.Status(ctx)
	if err != nil {
		c.app.renderer.RenderError(fmt.Sprintf("server offline at %s: %s", apiClient.BaseURL(), c.app.errors.Message(err)))
		return reported(err)
	}
	c.app.renderer.RenderMessage("Server %s at %s (server time %s)", status.Status, apiClient.BaseURL(), status.Timestamp.Local().Format(time.RFC3339))
	return nil
}

// DBCommand prints the schema of the configured database
type DBCommand struct {
	app *App
}

// NewDBCommand creates a new db command handler
func NewDBCommand(app *App) *DBCommand {
	return &DBCommand{app: app}
}

// Execute opens the database, applying migrations, and describes its tables
func (c *DBCommand) Execute(ctx context.Context, args []string) error {
	repo, err := c.app.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(ctx, c.app.config.GetQueryTimeout())
	defer cancel()

	tables, err := repo.DescribeSchema(ctx)
	if err != nil {
		return err
	}
	status, err := repo.SchemaStatus(ctx)
	if err != nil {
		return err
	}
	c.app.renderer.RenderSchema(c.app.config.GetDatabasePath(), status, tables)
	return nil
}

func (r *RootCommand) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Run the HTTP API over the SQLite database until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.app).Execute(cmd.Context(), args)
		},
	}
}

func (r *RootCommand) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the server is online",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewStatusCommand(r.app).Execute(cmd.Context(), args)
		},
	}
}

func (r *RootCommand) dbCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "db",
		Short: "Show the database schema",
		Long:  "Open the configured database, apply pending migrations and list its tables and columns.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDBCommand(r.app).Execute(cmd.Context(), args)
		},
	}
}
