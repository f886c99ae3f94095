package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todo-list/internal/domain"

	"github.com/spf13/cobra"
)

// EditCommand changes a task's text, due date or category
type EditCommand struct {
	app      *App
	due      *string
	clearDue bool
	category *string
}

// NewEditCommand creates a new edit command handler. nil due and category
// leave those fields unchanged.
func NewEditCommand(app *App, due *string, clearDue bool, category *string) *EditCommand {
	return &EditCommand{app: app, due: due, clearDue: clearDue, category: category}
}

// Execute edits the task named by args[0]; remaining args are the new text
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("task", args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")

	patch := domain.TaskPatch{}
	switch {
	case c.clearDue:
		patch.DueDate = domain.Some[*time.Time](nil)
	case c.due != nil:
		due, err := parseDue(*c.due)
		if err != nil {
			return err
		}
		patch.DueDate = domain.Some(due)
	}
	if c.category != nil {
		patch.Category = domain.Some(domain.ParseCategory(*c.category))
	}
	if len(args) == 1 && patch.IsEmpty() {
		return fmt.Errorf("nothing to change: give new text, --due, --clear-due or --category")
	}

	ctrl, err := c.app.startController(ctx)
	if err != nil {
		return err
	}

	if len(args) > 1 {
		if err := ctrl.EditTask(ctx, id, text); err != nil {
			return reported(err)
		}
	}
	if !patch.IsEmpty() {
		if err := ctrl.UpdateTask(ctx, id, patch); err != nil {
			return reported(err)
		}
	}

	task, _ := ctrl.Task(id)
	c.app.renderer.RenderTask("Task updated", task, timeNow())
	return nil
}

func (r *RootCommand) editCommand() *cobra.Command {
	var due, category string
	var clearDue bool
	cmd := &cobra.Command{
		Use:   "edit [task id] [new text]",
		Short: "Edit a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var duePtr, categoryPtr *string
			if cmd.Flags().Changed("due") {
				duePtr = &due
			}
			if cmd.Flags().Changed("category") {
				categoryPtr = &category
			}
			return NewEditCommand(r.app, duePtr, clearDue, categoryPtr).Execute(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVarP(&due, "due", "d", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category ("+domain.CategoryNames()+"); empty clears it")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	return cmd
}
