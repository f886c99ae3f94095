package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// DeleteCommand removes a task and its subtasks
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute removes the task named by args[0]
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("task", args[0])
	if err != nil {
		return err
	}

	ctrl, err := c.app.startController(ctx)
	if err != nil {
		return err
	}

	task, _ := ctrl.Task(id)
	if err := ctrl.RemoveTask(ctx, id); err != nil {
		return reported(err)
	}
	c.app.renderer.RenderMessage("Deleted task %d: %s", id, task.Text)
	return nil
}

func (r *RootCommand) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [task id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task and its subtasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDeleteCommand(r.app).Execute(cmd.Context(), args)
		},
	}
}
