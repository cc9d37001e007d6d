package service

import "context"

// API defines the remote TaskFlow contract. All HTTP calls go through this
// interface; the session manager and the task store never build requests
// themselves. Implemented by the api package and faked in testutil.
type API interface {
	// Register creates an account. It does not authenticate the caller.
	Register(ctx context.Context, name, email, password string) error

	// Login exchanges credentials for a bearer token and the user profile.
	Login(ctx context.Context, email, password string) (Credentials, error)

	// Profile fetches the authenticated user's profile.
	// Used for session restore at startup.
	Profile(ctx context.Context) (User, error)

	// UpdateProfile replaces mutable profile fields and returns the
	// updated user.
	UpdateProfile(ctx context.Context, name string) (User, error)

	// RequestPasswordReset asks for an out-of-band reset link.
	// Returns the server's confirmation message.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// CompletePasswordReset sets a new password keyed by a one-time reset
	// token. Returns the server's confirmation message.
	CompletePasswordReset(ctx context.Context, resetToken, newPassword string) (string, error)

	// ListTasks returns the full task collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns it with its assigned ID.
	CreateTask(ctx context.Context, draft TaskDraft) (Task, error)

	// UpdateTask replaces the task with the given ID with a complete
	// snapshot (replace, not merge) and returns the stored result.
	UpdateTask(ctx context.Context, id string, draft TaskDraft) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id string) error

	// TaskStats fetches the server-computed aggregate snapshot.
	TaskStats(ctx context.Context) (Stats, error)
}
