// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, ambiguous, invalid input).
	UserError = 1

	// AuthError indicates a Google login or credentials error.
	AuthError = 2

	// StorageError indicates the local store could not be read or written.
	StorageError = 3

	// RemoteError indicates a Google Tasks API or network error during export.
	RemoteError = 4
)
