package domain

import "errors"

// Sentinel errors shared by all report flows. Callers classify failures
// with errors.Is; the wrapped message carries the detail.
var (
	// ErrInvalidInput marks a bad parameter caught before any network call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a repository or user the API does not know.
	ErrNotFound = errors.New("not found")
	// ErrNetwork marks a transport or timeout failure talking to the API.
	ErrNetwork = errors.New("network failure")
	// ErrCorruptState marks a traffic history file that exists but cannot
	// be parsed. The run aborts rather than silently resetting the file.
	ErrCorruptState = errors.New("corrupt state")
)
