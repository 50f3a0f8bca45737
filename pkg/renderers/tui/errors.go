package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNotSubmitted is returned when the user declines the final
	// confirmation. The controller keeps the collected data.
	ErrNotSubmitted = errors.New("tui: task not submitted")
	// ErrInvalidSelection is returned when a driver reports an index outside
	// the offered options.
	ErrInvalidSelection = errors.New("tui: invalid selection")
)
