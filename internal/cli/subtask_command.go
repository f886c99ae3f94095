package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// SubtaskCommand handles the sub add|complete|edit|rm commands
type SubtaskCommand struct {
	app *App
}

// NewSubtaskCommand creates a new subtask command handler
func NewSubtaskCommand(app *App) *SubtaskCommand {
	return &SubtaskCommand{app: app}
}

// Add creates a subtask: args are the task id followed by the text
func (c *SubtaskCommand) Add(ctx context.Context, args []string) error {
	taskID, err := parseID("task", args[0])
	if err != nil {
		return err
	}

	ctrl, err := c.app.startController(ctx)
	if err != nil {
		return err
	}
	if _, err := ctrl.AddSubtask(ctx, taskID, strings.Join(args[1:], " ")); err != nil {
		return reported(err)
	}

	task, _ := ctrl.Task(taskID)
	c.app.renderer.RenderTask("Subtask added", task, timeNow())
	return nil
}

// Complete toggles a subtask: args are the task id and the subtask id
func (c *SubtaskCommand) Complete(ctx context.Context, args []string) error {
	taskID, subtaskID, err := parseSubtaskArgs(args)
	if err != nil {
		return err
	}

	ctrl, err := c.app.startController(ctx)
	if err != nil {
		return err
	}
	if err := ctrl.ToggleSubtask(ctx, taskID, subtaskID); err != nil {
		return reported(err)
	}

	task, _ := ctrl.Task(taskID)
	c.app.renderer.RenderTask("Subtask toggled", task, timeNow())
	return nil
}

// Edit replaces a subtask's text: args are the two ids followed by the text
func (c *SubtaskCommand) Edit(ctx context.Context, args []string) error {
	taskID, subtaskID, err := parseSubtaskArgs(args)
	if err != nil {
		return err
	}

	ctrl, err := c.app.startController(ctx)
	if err != nil {
		return err
	}
	if err := ctrl.EditSubtask(ctx, taskID, subtaskID, strings.Join(args[2:], " ")); err != nil {
		return reported(err)
	}

	task, _ := ctrl.Task(taskID)
	c.app.renderer.RenderTask("Subtask updated", task, timeNow())
	return nil
}

// Remove deletes a subtask: args are the task id and the subtask id
func (c *SubtaskCommand) Remove(ctx context.Context, args []string) error {
	taskID, subtaskID, err := parseSubtaskArgs(args)
	if err != nil {
		return err
	}

	ctrl, err := c.app.startController(ctx)
	if err != nil {
		return err
	}
	if err := ctrl.RemoveSubtask(ctx, taskID, subtaskID); err != nil {
		return reported(err)
	}

	task, _ := ctrl.Task(taskID)
	c.app.renderer.RenderTask("Subtask deleted", task, timeNow())
	return nil
}

func parseSubtaskArgs(args []string) (int64, int64, error) {
	taskID, err := parseID("task", args[0])
	if err != nil {
		return 0, 0, err
	}
	subtaskID, err := parseID("subtask", args[1])
	if err != nil {
		return 0, 0, err
	}
	return taskID, subtaskID, nil
}

func (r *RootCommand) subtaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sub",
		Aliases: []string{"subtask"},
		Short:   "Manage subtasks",
		Long: `Manage the subtasks of a task.

A task with subtasks is completed exactly when all of its subtasks are.
Deleting the last subtask reopens the task.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add [task id] [text]",
			Short: "Add a subtask",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return NewSubtaskCommand(r.app).Add(cmd.Context(), args)
			},
		},
		&cobra.Command{
			Use:     "complete [task id] [subtask id]",
			Aliases: []string{"toggle", "done"},
			Short:   "Toggle a subtask between open and completed",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return NewSubtaskCommand(r.app).Complete(cmd.Context(), args)
			},
		},
		&cobra.Command{
			Use:   "edit [task id] [subtask id] [new text]",
			Short: "Edit a subtask's text",
			Args:  cobra.MinimumNArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return NewSubtaskCommand(r.app).Edit(cmd.Context(), args)
			},
		},
		&cobra.Command{
			Use:     "rm [task id] [subtask id]",
			Aliases: []string{"delete"},
			Short:   "Delete a subtask",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return NewSubtaskCommand(r.app).Remove(cmd.Context(), args)
			},
		},
	)
	return cmd
}
