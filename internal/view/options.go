package view

import (
	"fmt"
	"strings"

	"todo-list/internal/domain"
)

// Filter selects which tasks are shown
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterPersonal  Filter = "personal"
	FilterWork      Filter = "work"
	FilterStudies   Filter = "studies"
)

// Filters lists every filter in menu order
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted, FilterPersonal, FilterWork, FilterStudies}

var filterAliases = map[string]Filter{
	"":          FilterAll,
	"todas":     FilterAll,
	"ativas":    FilterActive,
	"completas": FilterCompleted,
	"pessoal":   FilterPersonal,
	"trabalho":  FilterWork,
	"estudos":   FilterStudies,
}

// ParseFilter parses a filter name. The Portuguese names used by the
// browser client are accepted as aliases.
func ParseFilter(s string) (Filter, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := filterAliases[name]; ok {
		return f, nil
	}
	for _, f := range Filters {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Match reports whether task passes the filter
func (f Filter) Match(task domain.Task) bool {
	switch f {
	case FilterActive:
		return !task.Completed
	case FilterCompleted:
		return task.Completed
	case FilterPersonal:
		return domain.ParseCategory(string(task.Category)) == domain.CategoryPersonal
	case FilterWork:
		return domain.ParseCategory(string(task.Category)) == domain.CategoryWork
	case FilterStudies:
		return domain.ParseCategory(string(task.Category)) == domain.CategoryStudies
	default:
		return true
	}
}

// SortMode orders the filtered view
type SortMode string

const (
	SortNone   SortMode = ""
	SortDate   SortMode = "date"
	SortText   SortMode = "text"
	SortStatus SortMode = "status"
)

// ParseSortMode parses a sort mode; "" and "none" keep fetch order
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "date", "data":
		return SortDate, nil
	case "text", "texto":
		return SortText, nil
	case "status":
		return SortStatus, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// Options combines the active filter and sort
type Options struct {
	Filter Filter
	Sort   SortMode
}
