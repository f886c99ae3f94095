package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// CompleteCommand toggles a task between open and completed
type CompleteCommand struct {
	app *App
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app}
}

// Execute toggles the task named by args[0]
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("task", args[0])
	if err != nil {
		return err
	}

	ctrl, err := c.app.startController(ctx)
	if err != nil {
		return err
	}
	if err := ctrl.ToggleTask(ctx, id); err != nil {
		return reported(err)
	}

	task, _ := ctrl.Task(id)
	c.app.renderer.RenderTask(completionVerb(task.Completed)+" task", task, timeNow())
	return nil
}

func completionVerb(completed bool) string {
	if completed {
		return "Completed"
	}
	return "Reopened"
}

func (r *RootCommand) completeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "complete [task id]",
		Aliases: []string{"toggle", "done"},
		Short:   "Toggle a task between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewCompleteCommand(r.app).Execute(cmd.Context(), args)
		},
	}
}
