package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"todo-list/internal/domain"
	"todo-list/internal/repository/sqlite"
	"todo-list/internal/repository/sqlite/migrations"
	"todo-list/internal/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Renderer draws view models and command results on a terminal
type Renderer struct {
	out        io.Writer
	chartWidth int
	dateFormat string

	header    lipgloss.Style
	done      lipgloss.Style
	overdue   lipgloss.Style
	muted     lipgloss.Style
	category  lipgloss.Style
	barDone   lipgloss.Style
	barOpen   lipgloss.Style
	errorText lipgloss.Style
}

// NewRenderer creates a renderer whose styles adapt to the capabilities of out
func NewRenderer(out io.Writer, chartWidth int, dateFormat string) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out:        out,
		chartWidth: chartWidth,
		dateFormat: dateFormat,
		header:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		done:       r.NewStyle().Foreground(lipgloss.Color("42")).Strikethrough(true),
		overdue:    r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		muted:      r.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		category:   r.NewStyle().Foreground(lipgloss.Color("69")),
		barDone:    r.NewStyle().Foreground(lipgloss.Color("42")),
		barOpen:    r.NewStyle().Foreground(lipgloss.Color("196")),
		errorText:  r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// RenderView prints the filtered list, the summary line and the chart
func (r *Renderer) RenderView(vm view.ViewModel, now time.Time) {
	title := "Tasks"
	if vm.Options.Filter != "" && vm.Options.Filter != view.FilterAll {
		title += " (" + string(vm.Options.Filter) + ")"
	}
	if vm.Options.Sort != view.SortNone {
		title += " sorted by " + string(vm.Options.Sort)
	}
	fmt.Fprintln(r.out, r.header.Render(title))

	if len(vm.Items) == 0 {
		fmt.Fprintln(r.out, r.muted.Render("  no tasks found"))
	}
	for _, item := range vm.Items {
		r.renderItem(item, now)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.summaryLine(vm.Summary))
	fmt.Fprintln(r.out, r.chart(vm.Chart, vm.Summary))
}

// renderItem prints a task line followed by its subtasks
func (r *Renderer) renderItem(item view.Item, now time.Time) {
	fmt.Fprintln(r.out, r.taskLine(item, now))
	for _, s := range item.Task.Subtasks {
		fmt.Fprintln(r.out, r.subtaskLine(s))
	}
}

func (r *Renderer) taskLine(item view.Item, now time.Time) string {
	task := item.Task
	mark := "[ ]"
	text := task.Text
	if task.Completed {
		mark = "[x]"
		text = r.done.Render(text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %4d  %s", mark, task.ID, text)
	if task.Category != domain.CategoryNone {
		b.WriteString("  " + r.category.Render("#"+task.Category.String()))
	}
	if task.DueDate != nil {
		due := fmt.Sprintf("due %s (%s)", task.DueDate.UTC().Format(r.dateFormat), humanize.RelTime(*task.DueDate, now, "ago", "from now"))
		if item.Overdue {
			due = r.overdue.Render("overdue, " + due)
		} else {
			due = r.muted.Render(due)
		}
		b.WriteString("  " + due)
	}
	return b.String()
}

func (r *Renderer) subtaskLine(s domain.Subtask) string {
	mark := "[ ]"
	text := s.Text
	if s.Completed {
		mark = "[x]"
		text = r.done.Render(text)
	}
	return fmt.Sprintf("        %s %4d  %s", mark, s.ID, text)
}

func (r *Renderer) summaryLine(s view.Summary) string {
	return fmt.Sprintf("Total: %d | Completed: %d | Pending: %d", s.Total, s.Completed, s.Pending)
}

// chart draws one bar per state scaled to the chart width
func (r *Renderer) chart(c view.Chart, s view.Summary) string {
	if c.Empty {
		return r.muted.Render("no tasks yet")
	}
	bar := func(ratio float64) string {
		n := int(ratio*float64(r.chartWidth) + 0.5)
		return strings.Repeat("█", n) + strings.Repeat("░", r.chartWidth-n)
	}
	return fmt.Sprintf("%s %3.0f%% completed (%d)\n%s %3.0f%% pending (%d)",
		r.barDone.Render(bar(c.Completed)), c.Completed*100, s.Completed,
		r.barOpen.Render(bar(c.Pending)), c.Pending*100, s.Pending)
}

// RenderTask prints a single task and its subtasks after it was created or changed
func (r *Renderer) RenderTask(prefix string, task domain.Task, now time.Time) {
	fmt.Fprintln(r.out, r.header.Render(prefix))
	r.renderItem(view.Item{Task: task, Overdue: task.IsOverdue(now)}, now)
}

// RenderRefresh separates the views printed by list --watch
func (r *Renderer) RenderRefresh(online bool, interval time.Duration, now time.Time) {
	fmt.Fprintln(r.out)
	if !online {
		fmt.Fprintln(r.out, r.overdue.Render(fmt.Sprintf("── server offline at %s, showing last known tasks", now.Format("15:04:05"))))
		return
	}
	fmt.Fprintln(r.out, r.muted.Render(fmt.Sprintf("── refreshed %s, next in %s", now.Format("15:04:05"), interval)))
}

// RenderMessage prints a one-line confirmation
func (r *Renderer) RenderMessage(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// RenderError prints a failure the way the user sees notifications
func (r *Renderer) RenderError(message string) {
	fmt.Fprintln(r.out, r.errorText.Render("✗ "+message))
}

// RenderSchema prints the tables and columns found in the database
func (r *Renderer) RenderSchema(path string, status migrations.Status, tables []sqlite.TableInfo) {
	fmt.Fprintln(r.out, r.header.Render("Database "+path))
	version := fmt.Sprintf("  schema version %d of %d", status.Current, status.Latest)
	if len(status.Dirty) > 0 {
		version += r.overdue.Render(fmt.Sprintf(" (failed: %v)", status.Dirty))
	}
	fmt.Fprintln(r.out, version)
	for _, table := range tables {
		if len(table.Columns) == 0 {
			fmt.Fprintf(r.out, "  %s: %s\n", table.Name, r.overdue.Render("missing"))
			continue
		}
		fmt.Fprintf(r.out, "  %s\n", table.Name)
		for _, col := range table.Columns {
			var flags []string
			if col.PrimaryKey {
				flags = append(flags, "primary key")
			}
			if col.NotNull {
				flags = append(flags, "not null")
			}
			line := fmt.Sprintf("    %-16s %-10s", col.Name, col.Type)
			if len(flags) > 0 {
				line += " " + r.muted.Render(strings.Join(flags, ", "))
			}
			fmt.Fprintln(r.out, strings.TrimRight(line, " "))
		}
	}
}
