package input

import "errors"

// Errors returned by Pipeline.
var (
	// ErrTermAttrSet is returned when raw mode could not be applied, or
	// the captured attributes could not be restored on stop.
	ErrTermAttrSet = errors.New("input: failed to set terminal attributes")

	// ErrAlreadyListening is returned by Listen if the pipeline is
	// already running.
	ErrAlreadyListening = errors.New("input: already listening")

	// ErrNotListening is returned by Join if Listen was never called.
	ErrNotListening = errors.New("input: not listening")
)
