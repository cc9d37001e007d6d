// Package service defines the backend-agnostic types and interface for the
// TaskFlow remote API.
package service

import (
	"fmt"
	"strings"
)

// Priority is a task priority level.
type Priority string

// Task priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists all valid priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is a task progress state.
type Status string

// Task statuses.
const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists all valid statuses in display order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// User identifies an authenticated account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task represents a single task item. The ID is assigned by the server at
// creation time and never reused.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
}

// TaskDraft is the client-side payload for creating a task or replacing an
// existing one. The update contract takes a complete snapshot, not a partial
// patch, so a draft always carries every field.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
}

// Validate checks the draft before any network call is issued.
// Title and description must be non-empty after trimming; priority and
// status must belong to their enumerated sets.
func (d TaskDraft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if !d.Priority.Valid() {
		return &ValidationError{Fields: []string{"priority"}, Reason: fmt.Sprintf("invalid priority: %s", d.Priority)}
	}
	if !d.Status.Valid() {
		return &ValidationError{Fields: []string{"status"}, Reason: fmt.Sprintf("invalid status: %s", d.Status)}
	}
	return nil
}

// ValidationError reports locally detected missing or invalid fields.
// It is raised before the network layer is reached.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("required: %s", strings.Join(e.Fields, ", "))
}

// Stats is the server-computed aggregate snapshot over a user's tasks.
// It is fetched, never derived from the local collection.
type Stats struct {
	TotalTasks      int              `json:"total_tasks"`
	TasksByStatus   map[Status]int   `json:"tasks_by_status"`
	TasksByPriority map[Priority]int `json:"tasks_by_priority"`
	CompletionRate  float64          `json:"completion_rate"`
}

// Credentials is the payload returned by a successful login.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
