package cli

import (
	"context"

	"todo-list/internal/client"
	"todo-list/internal/view"

	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	app    *App
	filter string
	sort   string
	watch  bool
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, filter, sort string, watch bool) *ListCommand {
	return &ListCommand{app: app, filter: filter, sort: sort, watch: watch}
}

// Execute loads the tasks and renders the filtered, sorted view
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	filter, err := view.ParseFilter(c.filter)
	if err != nil {
		return err
	}
	sortMode, err := view.ParseSortMode(c.sort)
	if err != nil {
		return err
	}

	ctrl, err := c.app.startController(ctx)
	if err != nil {
		return err
	}
	ctrl.SetFilter(filter)
	ctrl.SetSort(sortMode)

	c.app.renderer.RenderView(ctrl.View(), timeNow())
	if !c.watch {
		return nil
	}
	return c.watchView(ctx, ctrl)
}

// watchView re-renders the list every interval until ctx is done. RunProber
// restores the connection after the server goes away; until then the last
// known tasks are shown.
func (c *ListCommand) watchView(ctx context.Context, ctrl *client.SyncController) error {
	interval := c.app.config.Client.ProbeInterval
	proberDone := make(chan struct{})
	go func() {
		defer close(proberDone)
		ctrl.RunProber(ctx)
	}()
	defer func() { <-proberDone }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.app.clock.After(interval):
		}
		online := ctrl.Refresh(ctx)
		if ctx.Err() != nil {
			return nil
		}
		c.app.renderer.RenderRefresh(online, interval, timeNow())
		c.app.renderer.RenderView(ctrl.View(), timeNow())
	}
}

func (r *RootCommand) listCommand() *cobra.Command {
	var filter, sort string
	var watch bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks with their subtasks, a summary line and a completion chart.

Filters: all, active, completed, personal, work, studies.
Sort modes: date (undated tasks last), text (locale-aware), status (open first).
Without --sort tasks keep the order the server returned them in.
With --watch the list is refreshed every --probe-interval until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewListCommand(r.app, filter, sort, watch).Execute(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Filter tasks")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "Sort tasks by date, text or status")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep refreshing the list until interrupted")
	return cmd
}
