package assist

import "errors"

var (
	// ErrMissingCredential is returned when no API key is configured.
	// The turn is aborted before any network call is made.
	ErrMissingCredential = errors.New("no API key configured")

	// ErrEditorNotFound is returned when the host page has no editable
	// region to write code into. No mutation is performed.
	ErrEditorNotFound = errors.New("editor surface not found")

	// ErrTurnInFlight is returned when a submission arrives while the
	// session is still awaiting a response. The submission is rejected,
	// not queued.
	ErrTurnInFlight = errors.New("a turn is already awaiting a response")
)
