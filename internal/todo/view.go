package todo

import (
	"fmt"
	"sort"
	"strings"
)

// Filter selects which tasks are displayed.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters lists the filter modes in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterPending}

// ParseFilter parses a filter name. An empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted, "done":
		return FilterCompleted, nil
	case FilterPending, "todo":
		return FilterPending, nil
	default:
		return "", fmt.Errorf("invalid filter %q, must be one of: all, completed, pending", s)
	}
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.IsDone
	case FilterPending:
		return !t.IsDone
	default:
		return true
	}
}

// Next returns the filter after f in display order, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label returns the button label for the filter.
func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterPending:
		return "Pending"
	default:
		return "All Tasks"
	}
}

// Visible returns the tasks passing f, pending before completed. Relative
// order within each group is preserved.
func Visible(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return !out[i].IsDone && out[j].IsDone
	})
	return out
}

// Counts summarises a task list.
type Counts struct {
	All       int
	Pending   int
	Completed int
}

// Count tallies tasks by status.
func Count(tasks []Task) Counts {
	c := Counts{All: len(tasks)}
	for _, t := range tasks {
		if t.IsDone {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}
