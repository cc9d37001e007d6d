// Package view derives the visible subset of the task collection from
// filter criteria. It is pure and holds no state: every call recomputes from
// its inputs.
package view

import (
	"strings"

	"taskflow/internal/service"
)

// All is the wildcard filter value matching every task.
const All = "all"

// Filter holds the three filter criteria. Zero values for Status and
// Priority are treated as the wildcard.
type Filter struct {
	// Search matches case-insensitively against title or description.
	// Empty matches everything.
	Search string

	// Status is a service.Status value or the wildcard "all".
	Status string

	// Priority is a service.Priority value or the wildcard "all".
	Priority string
}

// Matches reports whether a single task satisfies all three criteria.
func (f Filter) Matches(t service.Task) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			return false
		}
	}
	if f.Status != "" && f.Status != All && f.Status != string(t.Status) {
		return false
	}
	if f.Priority != "" && f.Priority != All && f.Priority != string(t.Priority) {
		return false
	}
	return true
}

// Project returns the tasks matching the filter, preserving the relative
// order of the input collection.
func Project(tasks []service.Task, f Filter) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
