package chat

import "errors"

var (
	// ErrClientNotConfigured is returned when no API key was available to
	// build a completion client.
	ErrClientNotConfigured = errors.New("OpenAI client not initialized, check your API key")

	// ErrProvider wraps any failure of the completion call, timeouts included.
	ErrProvider = errors.New("provider error")

	ErrNotFound = errors.New("file not found")
	ErrIO       = errors.New("i/o error")
)
