// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"taskflow/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized mimics a 401-class failure from the fake backend.
var ErrUnauthorized = errors.New("token is invalid")

// FakeAPI is an in-memory implementation of service.API for testing.
// Server-assigned task IDs are minted with uuid.
type FakeAPI struct {
	mu    sync.RWMutex
	user  service.User
	token string
	tasks []service.Task

	// Error injection for testing
	RegisterErr        error
	LoginErr           error
	ProfileErr         error
	UpdateProfileErr   error
	RequestResetErr    error
	CompleteResetErr   error
	ListTasksErr       error
	CreateTaskErr      error
	UpdateTaskErr      error
	DeleteTaskErr      error
	TaskStatsErr       error
	ResetMessage       string
	CompleteMessage    string

	// Call counters for assertions on refresh behavior.
	TaskStatsCalls int

	// StatsHook, when set, runs before each TaskStats response is built.
	// Lets tests interleave mutations with in-flight stats fetches.
	StatsHook func(call int)
}

// NewFakeAPI creates a FakeAPI with a registered default user.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{
		user:            service.User{ID: "u1", Name: "Test User", Email: "test@example.com"},
		token:           "fake-token",
		ResetMessage:    "Password reset link sent to your email",
		CompleteMessage: "Password updated successfully!",
	}
}

// AddTask seeds a task and returns its minted ID.
func (f *FakeAPI) AddTask(title, description string, priority service.Priority, status service.Status) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      status,
	})
	return id
}

// SetTasks replaces the seeded collection.
func (f *FakeAPI) SetTasks(tasks []service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]service.Task(nil), tasks...)
}

// TasksSnapshot returns a copy of the backend's current collection.
func (f *FakeAPI) TasksSnapshot() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// SetToken implements the gateway credential surface so sessions can drive
// the fake like the real client.
func (f *FakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

// ClearToken implements the gateway credential surface.
func (f *FakeAPI) ClearToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
}

// Register implements service.API.
func (f *FakeAPI) Register(ctx context.Context, name, email, password string) error {
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	return nil
}

// Login implements service.API.
func (f *FakeAPI) Login(ctx context.Context, email, password string) (service.Credentials, error) {
	if f.LoginErr != nil {
		return service.Credentials{}, f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return service.Credentials{Token: "fake-token", User: f.user}, nil
}

// Profile implements service.API.
func (f *FakeAPI) Profile(ctx context.Context) (service.User, error) {
	if f.ProfileErr != nil {
		return service.User{}, f.ProfileErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.token == "" {
		return service.User{}, ErrUnauthorized
	}
	return f.user, nil
}

// UpdateProfile implements service.API.
func (f *FakeAPI) UpdateProfile(ctx context.Context, name string) (service.User, error) {
	if f.UpdateProfileErr != nil {
		return service.User{}, f.UpdateProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user.Name = name
	return f.user, nil
}

// RequestPasswordReset implements service.API.
func (f *FakeAPI) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if f.RequestResetErr != nil {
		return "", f.RequestResetErr
	}
	return f.ResetMessage, nil
}

// CompletePasswordReset implements service.API.
func (f *FakeAPI) CompletePasswordReset(ctx context.Context, resetToken, newPassword string) (string, error) {
	if f.CompleteResetErr != nil {
		return "", f.CompleteResetErr
	}
	return f.CompleteMessage, nil
}

// ListTasks implements service.API.
func (f *FakeAPI) ListTasks(ctx context.Context) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.TasksSnapshot(), nil
}

// CreateTask implements service.API.
func (f *FakeAPI) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Status:      draft.Status,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.API. Replace semantics: the stored task
// becomes exactly the draft.
func (f *FakeAPI) UpdateTask(ctx context.Context, id string, draft service.TaskDraft) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = service.Task{
				ID:          id,
				Title:       draft.Title,
				Description: draft.Description,
				Priority:    draft.Priority,
				Status:      draft.Status,
			}
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.API.
func (f *FakeAPI) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// TaskStats implements service.API, computing the snapshot over the fake's
// current collection the way the real server would.
func (f *FakeAPI) TaskStats(ctx context.Context) (service.Stats, error) {
	if f.TaskStatsErr != nil {
		return service.Stats{}, f.TaskStatsErr
	}

	f.mu.Lock()
	f.TaskStatsCalls++
	call := f.TaskStatsCalls
	hook := f.StatsHook
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	stats := service.Stats{
		TotalTasks:      len(f.tasks),
		TasksByStatus:   make(map[service.Status]int),
		TasksByPriority: make(map[service.Priority]int),
	}
	for _, s := range service.Statuses {
		stats.TasksByStatus[s] = 0
	}
	for _, p := range service.Priorities {
		stats.TasksByPriority[p] = 0
	}
	for _, t := range f.tasks {
		stats.TasksByStatus[t.Status]++
		stats.TasksByPriority[t.Priority]++
	}
	if stats.TotalTasks > 0 {
		stats.CompletionRate = 100 * float64(stats.TasksByStatus[service.StatusCompleted]) / float64(stats.TotalTasks)
	}
	return stats, nil
}

// MatchesTitle reports whether any stored task has the given title.
// Convenience for command tests.
func (f *FakeAPI) MatchesTitle(title string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if strings.EqualFold(t.Title, title) {
			return true
		}
	}
	return false
}
