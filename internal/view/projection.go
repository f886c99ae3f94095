package view

import (
	"cmp"
	"slices"
	"time"

	"todo-list/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Item is one row of the rendered list
type Item struct {
	Task    domain.Task
	Overdue bool
}

// Summary counts tasks across the whole list, ignoring the filter
type Summary struct {
	Total     int
	Completed int
	Pending   int
}

// Chart holds the completed/pending ratios drawn as bars
type Chart struct {
	Empty     bool
	Completed float64
	Pending   float64
}

// ViewModel is everything a renderer needs to draw the list
type ViewModel struct {
	Options Options
	Items   []Item
	Summary Summary
	Chart   Chart
}

// Projector turns the task mirror into a ViewModel
type Projector struct {
	tag language.Tag
}

// NewProjector creates a projector sorting text by the rules of locale.
// An unparsable locale falls back to the root collation order.
func NewProjector(locale string) *Projector {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &Projector{tag: tag}
}

// Project filters and sorts tasks without touching the input slice
func (p *Projector) Project(tasks []domain.Task, opts Options, now time.Time) ViewModel {
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if opts.Filter.Match(task) {
			filtered = append(filtered, task)
		}
	}

	p.sort(filtered, opts.Sort)

	items := make([]Item, len(filtered))
	for i, task := range filtered {
		items[i] = Item{Task: task, Overdue: task.IsOverdue(now)}
	}

	summary := Summarize(tasks)
	return ViewModel{
		Options: opts,
		Items:   items,
		Summary: summary,
		Chart:   NewChart(summary),
	}
}

func (p *Projector) sort(tasks []domain.Task, mode SortMode) {
	switch mode {
	case SortDate:
		slices.SortStableFunc(tasks, compareDueDate)
	case SortText:
		// Collators keep internal buffers, so each sort gets its own.
		collator := collate.New(p.tag)
		slices.SortStableFunc(tasks, func(a, b domain.Task) int {
			return collator.CompareString(a.Text, b.Text)
		})
	case SortStatus:
		slices.SortStableFunc(tasks, func(a, b domain.Task) int {
			return cmp.Compare(boolRank(a.Completed), boolRank(b.Completed))
		})
	}
}

// compareDueDate orders by due date ascending with undated tasks last
func compareDueDate(a, b domain.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	default:
		return a.DueDate.Compare(*b.DueDate)
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Summarize counts completed and pending tasks
func Summarize(tasks []domain.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

// NewChart derives bar ratios from a summary
func NewChart(s Summary) Chart {
	if s.Total == 0 {
		return Chart{Empty: true}
	}
	total := float64(s.Total)
	return Chart{
		Completed: float64(s.Completed) / total,
		Pending:   float64(s.Pending) / total,
	}
}
