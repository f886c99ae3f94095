package cli

import (
	"context"
	"strings"
	"time"

	"todo-list/internal/domain"
	"todo-list/internal/validation"

	"github.com/spf13/cobra"
)

// AddCommand handles the add command
type AddCommand struct {
	app      *App
	due      string
	category string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, due, category string) *AddCommand {
	return &AddCommand{app: app, due: due, category: category}
}

// Execute creates a task from the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	dueDate, err := parseDue(c.due)
	if err != nil {
		return err
	}

	ctrl, err := c.app.startController(ctx)
	if err != nil {
		return err
	}

	task, err := ctrl.AddTask(ctx, strings.Join(args, " "), dueDate, domain.ParseCategory(c.category))
	if err != nil {
		return reported(err)
	}
	c.app.renderer.RenderTask("Task added", *task, timeNow())
	return nil
}

// parseDue parses a --due value with the server's date rules
func parseDue(s string) (*time.Time, error) {
	return validation.NewTaskValidator().ParseDueDate(s)
}

func (r *RootCommand) addCommand() *cobra.Command {
	var due, category string
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a task",
		Long:  "Add a task. Due dates accept YYYY-MM-DD or RFC 3339 timestamps.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewAddCommand(r.app, due, category).Execute(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category: "+domain.CategoryNames()+" (or any other name)")
	return cmd
}
