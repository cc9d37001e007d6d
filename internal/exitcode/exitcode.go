// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid input, not found).
	UserError = 1

	// AuthError indicates an auth/credential error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
